package crew

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"jetsetgo/pkg/llm"
)

// delegateWork lets an agent hand a sub-question to a coworker. The coworker answers with its
// own tools but cannot delegate further.
type delegateWork struct {
	coworkers []*Agent
	log       *zap.Logger

	mu    sync.Mutex
	usage llm.Usage
}

// Usage is the token usage of every coworker run so far, including failed ones.
func (d *delegateWork) Usage() llm.Usage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.usage
}

func (d *delegateWork) Spec() llm.ToolSpec {
	roles := make([]string, 0, len(d.coworkers))
	for _, a := range d.coworkers {
		roles = append(roles, a.Role)
	}
	return llm.ToolSpec{
		Name: "delegate_work",
		Description: "Delegate a specific question or piece of work to a coworker. Available coworkers: " +
			strings.Join(roles, ", ") + ". Give them all the context they need, they know nothing about your task.",
		Params: []llm.ToolParam{
			{Name: "coworker", Description: "Role of the coworker to ask", Required: true},
			{Name: "task", Description: "The work or question to delegate", Required: true},
			{Name: "context", Description: "Everything the coworker needs to know to do the work"},
		},
	}
}

func (d *delegateWork) Call(ctx context.Context, args map[string]string) (string, error) {
	target := strings.ToLower(strings.TrimSpace(args["coworker"]))
	for _, a := range d.coworkers {
		if strings.ToLower(a.Role) != target {
			continue
		}
		prompt := args["task"]
		if c := strings.TrimSpace(args["context"]); c != "" {
			prompt += "\n\nThis is the context you're working with:\n" + c
		}
		answer, usage, err := a.Execute(ctx, prompt, d.log)
		d.mu.Lock()
		d.usage = d.usage.Add(usage)
		d.mu.Unlock()
		return answer, err
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCoworker, args["coworker"])
}

// Package tools provides the capabilities agents may call while working on a task.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"jetsetgo/pkg/llm"
)

// Tool is a capability an agent can invoke through function calling.
type Tool interface {
	Spec() llm.ToolSpec
	Call(ctx context.Context, args map[string]string) (string, error)
}

// Registry resolves tools by name.
type Registry struct {
	tools map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

func (r *Registry) Register(t Tool) {
	r.tools[t.Spec().Name] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

func (r *Registry) Len() int { return len(r.tools) }

// Specs lists tool specs sorted by name so prompts stay stable between calls.
func (r *Registry) Specs() []llm.ToolSpec {
	specs := make([]llm.ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, t.Spec())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Invoke decodes the JSON arguments of a tool call, checks required params and runs the tool.
func (r *Registry) Invoke(ctx context.Context, call llm.ToolCall) (string, error) {
	t, ok := r.Get(call.Name)
	if !ok {
		return "", fmt.Errorf("unknown tool %q", call.Name)
	}

	args, err := DecodeArgs(call.Arguments)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", call.Name, err)
	}
	for _, p := range t.Spec().Params {
		if p.Required && strings.TrimSpace(args[p.Name]) == "" {
			return "", fmt.Errorf("tool %s: missing required argument %q", call.Name, p.Name)
		}
	}

	return t.Call(ctx, args)
}

// DecodeArgs turns a JSON object into string arguments. Non-string values are kept in their
// JSON form.
func DecodeArgs(raw string) (map[string]string, error) {
	args := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	for k, v := range decoded {
		switch val := v.(type) {
		case string:
			args[k] = val
		case nil:
		default:
			b, _ := json.Marshal(val)
			args[k] = string(b)
		}
	}
	return args, nil
}

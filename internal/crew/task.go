package crew

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"jetsetgo/pkg/llm"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Task is a templated instruction executed by one agent. Description and ExpectedOutput may
// reference inputs as {name}.
type Task struct {
	Name           string
	Description    string
	ExpectedOutput string
	Agent          *Agent
}

// Placeholders returns the sorted, de-duplicated input names the task templates reference.
func (t *Task) Placeholders() []string {
	seen := map[string]bool{}
	for _, tpl := range []string{t.Description, t.ExpectedOutput} {
		for _, m := range placeholderPattern.FindAllStringSubmatch(tpl, -1) {
			seen[m[1]] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Interpolate substitutes {name} placeholders from inputs. Every placeholder must have an
// input; unresolved names are reported together in one ErrMissingInput.
func Interpolate(template string, inputs map[string]string) (string, error) {
	var missing []string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := inputs[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	return out, nil
}

type preparedTask struct {
	task           *Task
	description    string
	expectedOutput string
}

func (t *Task) prepare(inputs map[string]string) (preparedTask, error) {
	description, err := Interpolate(t.Description, inputs)
	if err != nil {
		return preparedTask{}, fmt.Errorf("task %s: %w", t.Name, err)
	}
	expected, err := Interpolate(t.ExpectedOutput, inputs)
	if err != nil {
		return preparedTask{}, fmt.Errorf("task %s: %w", t.Name, err)
	}
	return preparedTask{task: t, description: description, expectedOutput: expected}, nil
}

func (p preparedTask) prompt(prior []TaskOutput) string {
	var b strings.Builder
	b.WriteString(p.description)
	if p.expectedOutput != "" {
		b.WriteString("\n\nThis is the expected criteria for your final answer: ")
		b.WriteString(p.expectedOutput)
		b.WriteString("\nYou MUST return the actual complete content as the final answer, not a summary.")
	}
	if len(prior) > 0 {
		b.WriteString("\n\nThis is the context you're working with:\n")
		for i, out := range prior {
			if i > 0 {
				b.WriteString("\n\n----------\n\n")
			}
			b.WriteString(out.Raw)
		}
	}
	return b.String()
}

// TaskOutput is the result of one task.
type TaskOutput struct {
	Name     string        `json:"name"`
	Agent    string        `json:"agent"`
	Raw      string        `json:"raw"`
	Usage    llm.Usage     `json:"usage"`
	Duration time.Duration `json:"duration"`
}

// CrewOutput is the typed result of a kickoff.
type CrewOutput struct {
	Raw         string       `json:"raw"`
	TasksOutput []TaskOutput `json:"tasks_output"`
	Usage       llm.Usage    `json:"usage"`
}

// Text normalizes the output to plain text: the final raw answer, or the last non-empty task
// output when the final answer is blank.
func (o *CrewOutput) Text() string {
	if o == nil {
		return ""
	}
	if s := strings.TrimSpace(o.Raw); s != "" {
		return s
	}
	for i := len(o.TasksOutput) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(o.TasksOutput[i].Raw); s != "" {
			return s
		}
	}
	return ""
}

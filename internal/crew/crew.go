// Package crew runs a fixed, ordered set of tasks across role-playing LLM agents. Each task's
// output is handed to the following tasks as context.
package crew

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"jetsetgo/pkg/tools"
)

const tracerName = "jetsetgo/crew"

type Crew struct {
	agents []*Agent
	tasks  []*Task
	log    *zap.Logger
	tracer trace.Tracer
}

type Option func(*Crew)

func WithLogger(log *zap.Logger) Option {
	return func(c *Crew) {
		if log != nil {
			c.log = log
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Crew) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// New validates the crew configuration. The agents list is the pool of coworkers available
// for delegation; every task agent must be backed by an LLM provider.
func New(agents []*Agent, tasks []*Task, opts ...Option) (*Crew, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	for _, t := range tasks {
		if t.Agent == nil {
			return nil, fmt.Errorf("task %s: %w", t.Name, ErrNoAgent)
		}
		if t.Agent.LLM == nil {
			return nil, fmt.Errorf("task %s: agent %s: %w", t.Name, t.Agent.Role, ErrNoLLM)
		}
	}

	c := &Crew{
		agents: agents,
		tasks:  tasks,
		log:    zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name identifies the model backend of the first task.
func (c *Crew) Name() string {
	return c.tasks[0].Agent.LLM.Name()
}

// Placeholders lists every input name referenced by the crew's task templates.
func (c *Crew) Placeholders() []string {
	seen := map[string]bool{}
	var names []string
	for _, t := range c.tasks {
		for _, p := range t.Placeholders() {
			if !seen[p] {
				seen[p] = true
				names = append(names, p)
			}
		}
	}
	return names
}

// Kickoff runs the tasks in order. All templates are bound before the first LLM call, so an
// input mismatch fails fast without spending any tokens.
func (c *Crew) Kickoff(ctx context.Context, inputs map[string]string) (*CrewOutput, error) {
	ctx, span := c.tracer.Start(ctx, "crew.kickoff", trace.WithAttributes(
		attribute.Int("crew.tasks", len(c.tasks)),
	))
	defer span.End()

	prepared := make([]preparedTask, 0, len(c.tasks))
	for _, t := range c.tasks {
		p, err := t.prepare(inputs)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		prepared = append(prepared, p)
	}

	out := &CrewOutput{TasksOutput: make([]TaskOutput, 0, len(prepared))}
	for _, p := range prepared {
		taskOut, err := c.runTask(ctx, p, out.TasksOutput)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out.TasksOutput = append(out.TasksOutput, taskOut)
		out.Usage = out.Usage.Add(taskOut.Usage)
	}
	out.Raw = out.TasksOutput[len(out.TasksOutput)-1].Raw

	span.SetAttributes(attribute.Int("llm.total_tokens", out.Usage.TotalTokens))
	return out, nil
}

func (c *Crew) runTask(ctx context.Context, p preparedTask, prior []TaskOutput) (TaskOutput, error) {
	agent := p.task.Agent
	ctx, span := c.tracer.Start(ctx, "crew.task", trace.WithAttributes(
		attribute.String("crew.task", p.task.Name),
		attribute.String("crew.agent", agent.Role),
	))
	defer span.End()

	var extra []tools.Tool
	var delegate *delegateWork
	if agent.AllowDelegation {
		if coworkers := c.coworkersOf(agent); len(coworkers) > 0 {
			delegate = &delegateWork{coworkers: coworkers, log: c.log}
			extra = append(extra, delegate)
		}
	}

	start := time.Now()
	c.log.Info("task started", zap.String("task", p.task.Name), zap.String("agent", agent.Role))

	raw, usage, err := agent.Execute(ctx, p.prompt(prior), c.log, extra...)
	if delegate != nil {
		usage = usage.Add(delegate.Usage())
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return TaskOutput{}, fmt.Errorf("task %s: %w", p.task.Name, err)
	}

	elapsed := time.Since(start)
	c.log.Info("task completed",
		zap.String("task", p.task.Name),
		zap.String("agent", agent.Role),
		zap.Duration("duration", elapsed),
		zap.Int("tokens", usage.TotalTokens))

	return TaskOutput{
		Name:     p.task.Name,
		Agent:    agent.Role,
		Raw:      raw,
		Usage:    usage,
		Duration: elapsed,
	}, nil
}

func (c *Crew) coworkersOf(agent *Agent) []*Agent {
	var coworkers []*Agent
	for _, a := range c.agents {
		if a != agent && a.LLM != nil {
			coworkers = append(coworkers, a)
		}
	}
	return coworkers
}

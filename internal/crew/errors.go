package crew

import "errors"

var (
	ErrMissingInput    = errors.New("missing input for task placeholder")
	ErrNoTasks         = errors.New("crew has no tasks")
	ErrNoAgent         = errors.New("task has no agent")
	ErrNoLLM           = errors.New("agent has no llm provider")
	ErrMaxIterations   = errors.New("agent reached max iterations without a final answer")
	ErrEmptyResponse   = errors.New("agent returned an empty answer")
	ErrUnknownCoworker = errors.New("unknown coworker")
)

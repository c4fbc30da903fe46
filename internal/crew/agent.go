package crew

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"jetsetgo/pkg/llm"
	"jetsetgo/pkg/tools"
)

const DefaultMaxIterations = 5

// Agent is a role-playing persona bound to an LLM and a tool set. Agents are configured once
// at startup and are safe for concurrent use as long as their provider and tools are.
type Agent struct {
	Role            string
	Goal            string
	Backstory       string
	AllowDelegation bool
	Tools           []tools.Tool
	LLM             llm.Provider
	Temperature     float64
	MaxIterations   int
}

func (a *Agent) systemPrompt() string {
	return fmt.Sprintf("You are %s. %s\nYour personal goal is: %s", a.Role, a.Backstory, a.Goal)
}

func (a *Agent) maxIterations() int {
	if a.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return a.MaxIterations
}

// Execute runs the agent on a prompt until it produces a final answer. Tool calls requested
// by the model are executed and fed back; failing tools are reported to the model rather than
// aborting the run. The last iteration is sent without tools to force an answer.
func (a *Agent) Execute(ctx context.Context, prompt string, log *zap.Logger, extra ...tools.Tool) (string, llm.Usage, error) {
	var usage llm.Usage
	if a.LLM == nil {
		return "", usage, fmt.Errorf("agent %s: %w", a.Role, ErrNoLLM)
	}
	if log == nil {
		log = zap.NewNop()
	}

	registry := tools.NewRegistry(append(append([]tools.Tool{}, a.Tools...), extra...)...)
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: a.systemPrompt()},
		{Role: llm.RoleUser, Content: prompt},
	}

	maxIter := a.maxIterations()
	for i := 0; i < maxIter; i++ {
		final := i == maxIter-1
		req := llm.ChatRequest{Messages: messages, Temperature: a.Temperature}
		if registry.Len() > 0 && !final {
			req.Tools = registry.Specs()
		}
		if final && i > 0 {
			req.Messages = append(req.Messages, llm.Message{
				Role:    llm.RoleUser,
				Content: "You have no more tool calls available. Give your best complete final answer now.",
			})
		}

		resp, err := a.LLM.Chat(ctx, req)
		if err != nil {
			return "", usage, fmt.Errorf("agent %s: %w", a.Role, err)
		}
		usage = usage.Add(resp.Usage)

		if len(resp.ToolCalls) == 0 {
			answer := strings.TrimSpace(resp.Content)
			if answer == "" {
				return "", usage, fmt.Errorf("agent %s: %w", a.Role, ErrEmptyResponse)
			}
			return answer, usage, nil
		}
		if final {
			break
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			result, err := registry.Invoke(ctx, call)
			if err != nil {
				log.Warn("tool call failed",
					zap.String("agent", a.Role), zap.String("tool", call.Name), zap.Error(err))
				result = "Error: " + err.Error()
			} else {
				log.Debug("tool call", zap.String("agent", a.Role), zap.String("tool", call.Name))
			}
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
				Name:       call.Name,
			})
		}
	}

	return "", usage, fmt.Errorf("agent %s: %w", a.Role, ErrMaxIterations)
}

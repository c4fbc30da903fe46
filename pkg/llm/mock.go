package llm

import (
	"context"
	"errors"
	"sync"
)

// MockProvider is a testing implementation of Provider.
type MockProvider struct {
	Response string
	Err      error
	ChatFunc func(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &ChatResponse{
		Content: m.Response,
		Usage:   Usage{PromptTokens: 10, CompletionTokens: 10, TotalTokens: 20},
	}, nil
}

// ScriptedProvider replays a fixed sequence of responses and records every request it saw.
type ScriptedProvider struct {
	mu        sync.Mutex
	Responses []*ChatResponse
	Requests  []ChatRequest
}

func NewScriptedProvider(responses ...*ChatResponse) *ScriptedProvider {
	return &ScriptedProvider{Responses: responses}
}

func (s *ScriptedProvider) Name() string { return "scripted" }

func (s *ScriptedProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests = append(s.Requests, req)
	if len(s.Responses) == 0 {
		return nil, errors.New("scripted provider: no more responses available")
	}
	resp := s.Responses[0]
	s.Responses = s.Responses[1:]
	return resp, nil
}

func (s *ScriptedProvider) Calls() []ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatRequest(nil), s.Requests...)
}

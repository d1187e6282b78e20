package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a testing implementation of Provider.
type MockProvider struct {
	Response string
	Err      error
	ChatFunc func(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

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

// ScriptedProvider returns a pre-defined sequence of responses, one per Chat
// call. Responses may carry tool calls, which makes it suitable for driving
// multi-turn tool-calling transcripts in tests.
type ScriptedProvider struct {
	mu        sync.Mutex
	Responses []ChatResponse
	Err       error

	// CallCount tracks how many times Chat has been called.
	CallCount int
	// Requests records every request received, in order.
	Requests []ChatRequest
}

// NewScripted creates a ScriptedProvider from a response sequence.
func NewScripted(responses ...ChatResponse) *ScriptedProvider {
	return &ScriptedProvider{Responses: responses}
}

// Chat pops the next scripted response or returns the configured error.
func (s *ScriptedProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CallCount++
	s.Requests = append(s.Requests, req)

	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Responses) == 0 {
		return nil, fmt.Errorf("scripted provider: no more responses available (call %d)", s.CallCount)
	}

	resp := s.Responses[0]
	s.Responses = s.Responses[1:]
	if resp.Usage == (Usage{}) {
		resp.Usage = Usage{PromptTokens: 10, CompletionTokens: 10, TotalTokens: 20}
	}
	return &resp, nil
}

// AnswerResponse builds a direct-answer scripted response.
func AnswerResponse(content string) ChatResponse {
	return ChatResponse{Content: content}
}

// ToolCallResponse builds a scripted response requesting the given calls.
func ToolCallResponse(calls ...ToolCall) ChatResponse {
	return ChatResponse{ToolCalls: calls}
}

// Call builds a tool call with a correlation id and JSON argument string.
func Call(id, name, arguments string) ToolCall {
	return ToolCall{
		ID:   id,
		Type: ToolTypeFunction,
		Function: FunctionCall{
			Name:      name,
			Arguments: arguments,
		},
	}
}

var (
	_ Provider = (*MockProvider)(nil)
	_ Provider = (*ScriptedProvider)(nil)
)

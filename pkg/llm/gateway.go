// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package llm defines the minimal contract the engine relies on to talk to a
// function-calling language model: ordered messages in, one assistant message
// out, which either answers directly or requests one or more tool calls.
package llm

import "context"

// Role identifies the sender of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolType is the kind of tool exposed to the model.
type ToolType string

const (
	ToolTypeFunction ToolType = "function"
)

// FunctionDef describes a callable function to the model.
type FunctionDef struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  interface{} `json:"parameters"` // JSON Schema object
}

// Tool is one entry of the tool menu sent with a request.
type Tool struct {
	Type     ToolType    `json:"type"`
	Function FunctionDef `json:"function"`
}

// FunctionCall carries the model's chosen function name and its raw
// JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall is a model-issued invocation request. ID is the correlation
// identifier the matching tool-result message must echo back.
type ToolCall struct {
	ID       string       `json:"id,omitempty"`
	Type     ToolType     `json:"type"`
	Function FunctionCall `json:"function"`
}

// Message is a single turn of the conversation. Assistant messages may carry
// tool calls; tool messages answer exactly one of them via ToolCallID.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ChatRequest is one round trip to the model.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Tools       []Tool    `json:"tools,omitempty"`
	ToolChoice  string    `json:"tool_choice,omitempty"` // "auto" when tools are present
	Temperature float64   `json:"temperature,omitempty"`
}

// ChatResponse is the assistant turn produced by one round trip.
type ChatResponse struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Usage     Usage      `json:"usage"`
}

// Usage tracks token consumption reported by the backend.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Provider is the gateway to a language model backend. A non-nil error is a
// hard failure: the engine aborts the current run rather than retrying.
// Retry policy, if any, belongs to the implementation.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

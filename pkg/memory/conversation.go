// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

// Package memory provides conversation history persistence. The engine core
// never persists history itself; callers load prior messages from a store,
// thread them into a run, and append the run's new messages afterwards.
package memory

import (
	"context"
	"time"
)

// ConversationMessage is a single persisted message of a conversation.
type ConversationMessage struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Role       string    `json:"role"` // system, user, assistant, tool
	Content    string    `json:"content"`
	ToolCallID string    `json:"tool_call_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session is one named conversation.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationStore stores and retrieves ordered conversation history.
// Implementations must be safe for concurrent callers; history is
// append-only per session.
type ConversationStore interface {
	// CreateSession creates a session. An empty id lets the store pick one.
	CreateSession(ctx context.Context, id, title string) (*Session, error)

	// GetSession returns the session or an errors.CodeNotFound error.
	GetSession(ctx context.Context, id string) (*Session, error)

	// ListSessions returns sessions ordered by most recent activity.
	ListSessions(ctx context.Context) ([]Session, error)

	// AppendMessage adds a message to a session's history.
	AppendMessage(ctx context.Context, sessionID string, msg ConversationMessage) error

	// GetMessages retrieves all messages for a session, oldest first.
	GetMessages(ctx context.Context, sessionID string) ([]ConversationMessage, error)

	// GetRecentMessages retrieves the last N messages for a session.
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]ConversationMessage, error)

	// DeleteSession removes a session and its messages.
	DeleteSession(ctx context.Context, sessionID string) error
}

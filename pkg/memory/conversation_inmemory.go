// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/praxislabs/praxis/pkg/errors"
)

// InMemoryConversation implements ConversationStore with in-memory storage.
// Suitable for development and testing; data is lost on restart.
type InMemoryConversation struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	messages map[string][]ConversationMessage
}

// NewInMemoryConversation creates a new in-memory conversation store.
func NewInMemoryConversation() *InMemoryConversation {
	return &InMemoryConversation{
		sessions: make(map[string]*Session),
		messages: make(map[string][]ConversationMessage),
	}
}

// CreateSession creates a session.
func (m *InMemoryConversation) CreateSession(_ context.Context, id, title string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New(errors.CodeInvalidInput, "session already exists", nil).
			WithContext("session", id)
	}

	now := time.Now()
	s := &Session{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}
	m.sessions[id] = s

	out := *s
	return &out, nil
}

// GetSession returns the session by id.
func (m *InMemoryConversation) GetSession(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "session not found", nil).
			WithContext("session", id)
	}
	out := *s
	return &out, nil
}

// ListSessions returns sessions ordered by most recent activity.
func (m *InMemoryConversation) ListSessions(_ context.Context) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// AppendMessage adds a message to a session's history.
func (m *InMemoryConversation) AppendMessage(_ context.Context, sessionID string, msg ConversationMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SessionID == "" {
		msg.SessionID = sessionID
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	m.messages[sessionID] = append(m.messages[sessionID], msg)
	if s, ok := m.sessions[sessionID]; ok {
		s.UpdatedAt = time.Now()
	}
	return nil
}

// GetMessages retrieves all messages for a session.
func (m *InMemoryConversation) GetMessages(_ context.Context, sessionID string) ([]ConversationMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ConversationMessage, len(m.messages[sessionID]))
	copy(out, m.messages[sessionID])
	return out, nil
}

// GetRecentMessages retrieves the last N messages for a session.
func (m *InMemoryConversation) GetRecentMessages(_ context.Context, sessionID string, limit int) ([]ConversationMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.messages[sessionID]
	if limit <= 0 || len(all) <= limit {
		out := make([]ConversationMessage, len(all))
		copy(out, all)
		return out, nil
	}

	out := make([]ConversationMessage, limit)
	copy(out, all[len(all)-limit:])
	return out, nil
}

// DeleteSession removes a session and its messages.
func (m *InMemoryConversation) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	delete(m.messages, sessionID)
	return nil
}

var _ ConversationStore = (*InMemoryConversation)(nil)

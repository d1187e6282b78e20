// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/praxislabs/praxis/pkg/errors"
)

// SQLiteConversation persists conversation history in SQLite.
type SQLiteConversation struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures schema.
func OpenSQLite(path string) (*SQLiteConversation, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New(errors.CodeMemoryError, "failed to open sqlite database", err).
			WithContext("path", path)
	}
	return NewSQLiteConversation(db)
}

// NewSQLiteConversation wraps an existing database handle and ensures schema.
func NewSQLiteConversation(db *sql.DB) (*SQLiteConversation, error) {
	if db == nil {
		return nil, errors.New(errors.CodeInvalidInput, "db is nil", nil)
	}
	if err := ensureConversationSchema(db); err != nil {
		return nil, errors.New(errors.CodeMemoryError, "failed to ensure schema", err)
	}
	return &SQLiteConversation{db: db}, nil
}

func ensureConversationSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS messages (
			id           TEXT PRIMARY KEY,
			session_id   TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			role         TEXT NOT NULL,
			content      TEXT NOT NULL DEFAULT '',
			tool_call_id TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at);
	`)
	return err
}

// Close closes the underlying database.
func (s *SQLiteConversation) Close() error {
	return s.db.Close()
}

// CreateSession creates a session.
func (s *SQLiteConversation) CreateSession(ctx context.Context, id, title string) (*Session, error) {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)
	`, id, title, now, now)
	if err != nil {
		return nil, errors.New(errors.CodeMemoryError, "failed to create session", err).
			WithContext("session", id)
	}

	return &Session{ID: id, Title: title, CreatedAt: now, UpdatedAt: now}, nil
}

// GetSession returns the session by id.
func (s *SQLiteConversation) GetSession(ctx context.Context, id string) (*Session, error) {
	var out Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, created_at, updated_at FROM sessions WHERE id = ?
	`, id).Scan(&out.ID, &out.Title, &out.CreatedAt, &out.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.CodeNotFound, "session not found", nil).
			WithContext("session", id)
	}
	if err != nil {
		return nil, errors.New(errors.CodeMemoryError, "failed to load session", err)
	}
	return &out, nil
}

// ListSessions returns sessions ordered by most recent activity.
func (s *SQLiteConversation) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at FROM sessions ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, errors.New(errors.CodeMemoryError, "failed to list sessions", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, errors.New(errors.CodeMemoryError, "failed to scan session", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// AppendMessage adds a message to a session's history.
func (s *SQLiteConversation) AppendMessage(ctx context.Context, sessionID string, msg ConversationMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New(errors.CodeMemoryError, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, role, content, tool_call_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, sessionID, msg.Role, msg.Content, msg.ToolCallID, msg.CreatedAt)
	if err != nil {
		return errors.New(errors.CodeMemoryError, "failed to append message", err).
			WithContext("session", sessionID)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE sessions SET updated_at = ? WHERE id = ?
	`, time.Now().UTC(), sessionID); err != nil {
		return errors.New(errors.CodeMemoryError, "failed to touch session", err)
	}

	return tx.Commit()
}

// GetMessages retrieves all messages for a session, oldest first.
func (s *SQLiteConversation) GetMessages(ctx context.Context, sessionID string) ([]ConversationMessage, error) {
	return s.queryMessages(ctx, `
		SELECT id, session_id, role, content, tool_call_id, created_at
		FROM messages WHERE session_id = ? ORDER BY created_at ASC, rowid ASC
	`, sessionID)
}

// GetRecentMessages retrieves the last N messages for a session.
func (s *SQLiteConversation) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]ConversationMessage, error) {
	if limit <= 0 {
		return s.GetMessages(ctx, sessionID)
	}
	msgs, err := s.queryMessages(ctx, `
		SELECT id, session_id, role, content, tool_call_id, created_at
		FROM messages WHERE session_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	// Reverse back to chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *SQLiteConversation) queryMessages(ctx context.Context, query string, args ...any) ([]ConversationMessage, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.New(errors.CodeMemoryError, "failed to load messages", err)
	}
	defer rows.Close()

	var out []ConversationMessage
	for rows.Next() {
		var msg ConversationMessage
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &msg.ToolCallID, &msg.CreatedAt); err != nil {
			return nil, errors.New(errors.CodeMemoryError, "failed to scan message", err)
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

// DeleteSession removes a session and its messages.
func (s *SQLiteConversation) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New(errors.CodeMemoryError, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID); err != nil {
		return errors.New(errors.CodeMemoryError, "failed to delete messages", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return errors.New(errors.CodeMemoryError, "failed to delete session", err)
	}
	return tx.Commit()
}

var _ ConversationStore = (*SQLiteConversation)(nil)

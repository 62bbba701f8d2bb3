package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// GetSession loads a session with its full message history.
func (s *SQLiteStorage) GetSession(ctx context.Context, id string) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var (
		session    model.Session
		contextRaw string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, context, created_at, updated_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(&session.ID, &contextRaw, &session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal([]byte(contextRaw), &session.Context); err != nil {
		return nil, fmt.Errorf("failed to decode session context: %w", err)
	}

	messages, err := s.loadMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Messages = messages

	return &session, nil
}

func (s *SQLiteStorage) loadMessages(ctx context.Context, sessionID string) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, bundle_ids, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.Message
	for rows.Next() {
		var (
			m         model.Message
			role      string
			bundleRaw string
		)
		if err := rows.Scan(&role, &m.Content, &bundleRaw, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Role = model.Role(role)
		if err := json.Unmarshal([]byte(bundleRaw), &m.BundleIDs); err != nil {
			return nil, fmt.Errorf("failed to decode bundle IDs: %w", err)
		}
		if len(m.BundleIDs) == 0 {
			m.BundleIDs = nil
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// SaveSession writes the session and replaces its message history.
// CreatedAt is filled in on first save and UpdatedAt on every save.
func (s *SQLiteStorage) SaveSession(ctx context.Context, session *model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	contextRaw, err := json.Marshal(session.Context)
	if err != nil {
		return fmt.Errorf("failed to encode session context: %w", err)
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, context, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			context = excluded.context,
			updated_at = excluded.updated_at
	`, session.ID, string(contextRaw), session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, session.ID); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (session_id, position, role, content, bundle_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, m := range session.Messages {
		bundleIDs := m.BundleIDs
		if bundleIDs == nil {
			bundleIDs = []string{}
		}
		bundleRaw, err := json.Marshal(bundleIDs)
		if err != nil {
			return fmt.Errorf("failed to encode bundle IDs: %w", err)
		}
		ts := m.Timestamp.UTC()
		if ts.IsZero() {
			ts = now
		}
		if _, err := stmt.ExecContext(ctx, session.ID, i, string(m.Role), m.Content, string(bundleRaw), ts); err != nil {
			return fmt.Errorf("failed to save message %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListSessions returns sessions, most recently updated first.
func (s *SQLiteStorage) ListSessions(ctx context.Context, filter service.SessionFilter) ([]model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id FROM sessions`
	var args []any
	if filter.Since != nil {
		query += ` WHERE updated_at >= ?`
		args = append(args, filter.Since.UTC())
	}
	query += ` ORDER BY updated_at DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	} else if filter.Offset > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	// The single connection must be released before loading each session.
	sessions := make([]model.Session, 0, len(ids))
	for _, id := range ids {
		session, err := s.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}

	return sessions, nil
}

// DeleteSession removes a session together with its messages and recommendations.
func (s *SQLiteStorage) DeleteSession(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{
		`DELETE FROM messages WHERE session_id = ?`,
		`DELETE FROM recommendations WHERE session_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete session data: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %s: %w", id, common.ErrNotFound)
	}

	return tx.Commit()
}

// RecordRecommendations appends bundles shown to a session.
// The session must already exist.
func (s *SQLiteStorage) RecordRecommendations(ctx context.Context, recs []model.Recommendation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecommendations(recs); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recommendations (session_id, bundle_id, rank, price, shown_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	checked := make(map[string]bool)
	for _, r := range recs {
		if checked[r.SessionID] {
			continue
		}
		var exists bool
		err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM sessions WHERE id = ?)`, r.SessionID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check session: %w", err)
		}
		if !exists {
			return fmt.Errorf("session %s: %w", r.SessionID, common.ErrNotFound)
		}
		checked[r.SessionID] = true
	}

	now := time.Now().UTC()
	for _, r := range recs {
		shownAt := r.ShownAt.UTC()
		if shownAt.IsZero() {
			shownAt = now
		}
		if _, err := stmt.ExecContext(ctx, r.SessionID, r.BundleID, r.Rank, r.Price, shownAt); err != nil {
			return fmt.Errorf("failed to record recommendation %s: %w", r.BundleID, err)
		}
	}

	return tx.Commit()
}

// GetRecommendations returns every bundle shown in a session, oldest first.
func (s *SQLiteStorage) GetRecommendations(ctx context.Context, sessionID string) ([]model.Recommendation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(sessionID, "sessionID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, bundle_id, rank, price, shown_at
		FROM recommendations
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []model.Recommendation
	for rows.Next() {
		var r model.Recommendation
		if err := rows.Scan(&r.SessionID, &r.BundleID, &r.Rank, &r.Price, &r.ShownAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, r)
	}

	return recs, rows.Err()
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

// PayloadRepository stores session-scoped values that are written once and read once.
type PayloadRepository struct {
	db *sql.DB
}

// NewPayloadRepository creates a new PayloadRepository with the given database connection
func NewPayloadRepository(db *sql.DB) *PayloadRepository {
	return &PayloadRepository{db: db}
}

// Put stores payload under (sessionID, key).
//
// A second write to the same key fails with [shared.ErrPayloadExists], even after it was read.
func (r *PayloadRepository) Put(sessionID, key string, payload []byte) error {
	record := models.StoredPayload{
		ID:        shared.GenerateID(),
		SessionID: sessionID,
		Key:       key,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM sessions WHERE id = ?)`, sessionID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", shared.ErrSessionNotFound, sessionID)
	}

	query := `
		INSERT INTO session_payloads (id, session_id, key, payload, created_at) VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, record.ID, record.SessionID, record.Key, string(record.Payload), record.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: %s/%s", shared.ErrPayloadExists, sessionID, key)
		}
		return fmt.Errorf("failed to insert payload: %w", err)
	}
	return nil
}

// Take returns the unread payload under (sessionID, key) and marks it read in the same transaction.
//
// Missing or already-read payloads return [shared.ErrPayloadNotFound].
func (r *PayloadRepository) Take(sessionID, key string) ([]byte, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		id      string
		payload string
	)
	query := `
		SELECT id, payload FROM session_payloads
		WHERE session_id = ? AND key = ? AND read_at IS NULL
	`
	if err := tx.QueryRow(query, sessionID, key).Scan(&id, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", shared.ErrPayloadNotFound, sessionID, key)
		}
		return nil, fmt.Errorf("failed to query payload: %w", err)
	}

	if _, err := tx.Exec(`UPDATE session_payloads SET read_at = ? WHERE id = ?`, time.Now(), id); err != nil {
		return nil, fmt.Errorf("failed to mark payload read: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payload read: %w", err)
	}
	return []byte(payload), nil
}

// Pending lists the keys of unread payloads for a session.
func (r *PayloadRepository) Pending(sessionID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT key FROM session_payloads WHERE session_id = ? AND read_at IS NULL ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payloads: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan payload key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return keys, nil
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tunetype/internal/models"
	"github.com/desertthunder/tunetype/internal/shared"
)

var _ models.Repository[*models.Session] = (*SessionRepository)(nil)

// SessionRepository implements models.Repository[*models.Session].
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session with a generated ID and sequence.
//
// A session that already carries an ID keeps it.
func (r *SessionRepository) Create(session *models.Session) error {
	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if session.ID() == "" {
		session.SetID(shared.GenerateID())
	}
	session.SetSequence(sequence)

	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sessions (id, sequence, created_at, updated_at, closed_at) VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, session.ID(), sequence, session.CreatedAt(), session.UpdatedAt(), session.ClosedAt()); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID.
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `
		SELECT id, sequence, created_at, updated_at, closed_at
		FROM sessions
		WHERE id = ?
	`

	session, err := scanSession(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	return session, err
}

// Update writes the session's closed_at and bumps updated_at.
func (r *SessionRepository) Update(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	session.SetUpdatedAt(now)

	result, err := r.db.Exec(`UPDATE sessions SET updated_at = ?, closed_at = ? WHERE id = ?`, now, session.ClosedAt(), session.ID())
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return requireAffected(result, session.ID())
}

// Close marks the session closed.
func (r *SessionRepository) Close(id string) error {
	now := time.Now()
	result, err := r.db.Exec(`UPDATE sessions SET updated_at = ?, closed_at = ? WHERE id = ? AND closed_at IS NULL`, now, now, id)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	return requireAffected(result, id)
}

// Delete removes a session and, by cascade, its payloads.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return requireAffected(result, id)
}

// List retrieves sessions ordered by sequence.
//
// Supported criteria: "open" (bool) limits the result to sessions that are (or are not) still open.
func (r *SessionRepository) List(criteria map[string]any) ([]*models.Session, error) {
	query := `
		SELECT id, sequence, created_at, updated_at, closed_at
		FROM sessions
		WHERE 1 = 1
	`

	if open, ok := criteria["open"].(bool); ok {
		if open {
			query += " AND closed_at IS NULL"
		} else {
			query += " AND closed_at IS NOT NULL"
		}
	}
	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		id        string
		sequence  int
		createdAt time.Time
		updatedAt time.Time
		closedAt  sql.NullTime
	)

	if err := row.Scan(&id, &sequence, &createdAt, &updatedAt, &closedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	session := models.NewSession(sequence)
	session.SetID(id)
	session.SetCreatedAt(createdAt)
	session.SetUpdatedAt(updatedAt)
	if closedAt.Valid {
		session.SetClosedAt(&closedAt.Time)
	}
	return session, nil
}

func requireAffected(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	return nil
}

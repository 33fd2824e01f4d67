package models

import (
	"errors"
	"time"
)

// Session is one interactive run; stored payloads are scoped to it.
type Session struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	closedAt  *time.Time
}

// NewSession creates an open session with the given sequence number.
func NewSession(sequence int) *Session {
	now := time.Now()
	return &Session{sequence: sequence, createdAt: now, updatedAt: now}
}

func (s *Session) ID() string               { return s.id }
func (s *Session) SetID(id string)          { s.id = id }
func (s *Session) Sequence() int            { return s.sequence }
func (s *Session) SetSequence(seq int)      { s.sequence = seq }
func (s *Session) CreatedAt() time.Time     { return s.createdAt }
func (s *Session) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *Session) UpdatedAt() time.Time     { return s.updatedAt }
func (s *Session) SetUpdatedAt(t time.Time) { s.updatedAt = t }
func (s *Session) ClosedAt() *time.Time     { return s.closedAt }
func (s *Session) SetClosedAt(t *time.Time) { s.closedAt = t }
func (s *Session) Closed() bool             { return s.closedAt != nil }

// Close marks the session closed at now.
func (s *Session) Close(now time.Time) {
	s.closedAt = &now
	s.updatedAt = now
}

func (s *Session) Validate() error {
	if s.id == "" {
		return errors.New("session id is required")
	}
	if s.createdAt.IsZero() {
		return errors.New("session created_at is required")
	}
	if s.closedAt != nil && s.closedAt.Before(s.createdAt) {
		return errors.New("session cannot close before it was created")
	}
	return nil
}

// StoredPayload is a value handed from one screen to another through the store.
type StoredPayload struct {
	ID        string
	SessionID string
	Key       string
	Payload   []byte
	CreatedAt time.Time
	ReadAt    *time.Time
}

func (p StoredPayload) Validate() error {
	switch {
	case p.SessionID == "":
		return errors.New("payload session_id is required")
	case p.Key == "":
		return errors.New("payload key is required")
	case len(p.Payload) == 0:
		return errors.New("payload body is required")
	}
	return nil
}

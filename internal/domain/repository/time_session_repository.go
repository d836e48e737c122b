package repository

import (
	"context"

	"handshakeme/internal/domain/entity"
	"handshakeme/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when a time session is not found.
	ErrSessionNotFound = errors.New("time session not found")
	// ErrOpenSessionExists is returned by CreateExclusive when the master
	// already holds an ACTIVE or PAUSED session.
	ErrOpenSessionExists = errors.New("open time session already exists for master")
)

// TimeSessionRepository defines the interface for time-session persistence.
type TimeSessionRepository interface {
	// CreateExclusive persists a new session only if the master has no other
	// ACTIVE or PAUSED session. The check and the insert execute as a single
	// conditional statement so two concurrent starts cannot both succeed.
	// Returns ErrOpenSessionExists when the slot is taken. Sessions created
	// already COMPLETED bypass the guard.
	CreateExclusive(ctx context.Context, session *entity.TimeSession) error

	// FindByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSession, error)

	// FindOpenByMaster retrieves the master's single ACTIVE or PAUSED session.
	// Returns ErrSessionNotFound when the master has none.
	FindOpenByMaster(ctx context.Context, masterID uuid.UUID) (*entity.TimeSession, error)

	// UpdateSession updates an existing session record.
	UpdateSession(ctx context.Context, session *entity.TimeSession) error

	// CompleteSession updates the session record and appends its STOP entry
	// atomically, so the entry log never shows a stop the session row does
	// not reflect. Returns ErrSessionNotFound when the session is absent.
	CompleteSession(ctx context.Context, session *entity.TimeSession, stop *entity.TimeEntry) error

	// DeleteSession removes a session and its entry log by ID.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// AppendEntry appends one event to a session's append-only entry log.
	AppendEntry(ctx context.Context, entry *entity.TimeEntry) error

	// FindEntriesBySession retrieves a session's entry log in ascending
	// timestamp order.
	FindEntriesBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.TimeEntry, error)
}

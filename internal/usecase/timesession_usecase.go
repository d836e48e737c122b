package usecase

import (
	"context"
	"time"

	"handshakeme/internal/domain/entity"

	"github.com/google/uuid"
)

// StartSessionRequest opens a new ACTIVE session for a master. At least one
// of ProjectID/BookingID is required.
type StartSessionRequest struct {
	ProjectID  *uuid.UUID `json:"projectId,omitempty"`
	BookingID  *uuid.UUID `json:"bookingId,omitempty"`
	TaskType   string     `json:"taskType" validate:"required"`
	HourlyRate float64    `json:"hourlyRate,omitempty" validate:"min=0"`
	Notes      string     `json:"notes,omitempty"`
}

// ManualEntryRequest records an already-finished work interval as a
// COMPLETED session. It never occupies the master's open-session slot.
type ManualEntryRequest struct {
	ProjectID  *uuid.UUID `json:"projectId,omitempty"`
	BookingID  *uuid.UUID `json:"bookingId,omitempty"`
	TaskType   string     `json:"taskType" validate:"required"`
	StartTime  time.Time  `json:"startTime" validate:"required"`
	EndTime    time.Time  `json:"endTime" validate:"required"`
	HourlyRate float64    `json:"hourlyRate,omitempty" validate:"min=0"`
	Notes      string     `json:"notes,omitempty"`
}

// UpdateSessionRequest edits the mutable fields of a session. Nil fields are
// left untouched.
type UpdateSessionRequest struct {
	TaskType    *string   `json:"taskType,omitempty"`
	HourlyRate  *float64  `json:"hourlyRate,omitempty" validate:"omitempty,min=0"`
	Notes       *string   `json:"notes,omitempty"`
	Attachments *[]string `json:"attachments,omitempty"`
}

// SessionView is a session with its reconstructed elapsed accounting.
type SessionView struct {
	Session        *entity.TimeSession `json:"session"`
	Entries        []entity.TimeEntry  `json:"entries"`
	ActiveDuration time.Duration       `json:"-"`
	ActiveHours    float64             `json:"activeHours"` // ActiveDuration in fractional hours.
}

// TimeSessionUsecase defines the interface for master time tracking. All
// operations require the MASTER role (enforced at delivery) and operate only
// on the caller's own sessions.
type TimeSessionUsecase interface {
	// StartSession opens a new ACTIVE session. Fails with
	// domainerrors.ErrActiveSessionExists when the master already has an
	// open session, even under concurrent starts.
	StartSession(ctx context.Context, masterID uuid.UUID, req *StartSessionRequest) (*SessionView, error)

	// PauseSession moves ACTIVE → PAUSED and appends a PAUSE entry.
	PauseSession(ctx context.Context, masterID, sessionID uuid.UUID) (*SessionView, error)

	// ResumeSession moves PAUSED → ACTIVE and appends a RESUME entry.
	ResumeSession(ctx context.Context, masterID, sessionID uuid.UUID) (*SessionView, error)

	// StopSession moves an open session to COMPLETED, appends a STOP entry
	// and fixes billable hours from the entry log.
	StopSession(ctx context.Context, masterID, sessionID uuid.UUID) (*SessionView, error)

	// AddManualEntry records a finished interval as a COMPLETED session.
	AddManualEntry(ctx context.Context, masterID uuid.UUID, req *ManualEntryRequest) (*SessionView, error)

	// UpdateSession edits mutable session fields.
	UpdateSession(ctx context.Context, masterID, sessionID uuid.UUID, req *UpdateSessionRequest) (*SessionView, error)

	// DeleteSession removes a COMPLETED session and its entry log. Open
	// sessions cannot be deleted.
	DeleteSession(ctx context.Context, masterID, sessionID uuid.UUID) error

	// GetSession retrieves one of the master's sessions with its entry log.
	GetSession(ctx context.Context, masterID, sessionID uuid.UUID) (*SessionView, error)

	// GetOpenSession retrieves the master's current ACTIVE or PAUSED session.
	GetOpenSession(ctx context.Context, masterID uuid.UUID) (*SessionView, error)
}

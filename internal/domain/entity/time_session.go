package entity

import (
	"time"

	"github.com/google/uuid"

	"handshakeme/internal/errors"
)

// SessionStatus is the lifecycle state of a time-tracking session.
//
// Valid status graph:
//
//	ACTIVE ⇄ PAUSED
//	   │        │
//	   └────────┴──► COMPLETED
//
// COMPLETED is terminal.
type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionPaused    SessionStatus = "PAUSED"
	SessionCompleted SessionStatus = "COMPLETED"
)

// sessionTransitions lists every allowed (from → to) pair.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionActive: {SessionPaused, SessionCompleted},
	SessionPaused: {SessionActive, SessionCompleted},
	// COMPLETED is terminal, no outgoing transitions
}

// ParseSessionStatus converts a raw string to a SessionStatus,
// returning an error for unknown values.
func ParseSessionStatus(s string) (SessionStatus, error) {
	st := SessionStatus(s)
	switch st {
	case SessionActive, SessionPaused, SessionCompleted:
		return st, nil
	}

	return "", errors.Errorf("unknown session status %q", s)
}

// CanTransition reports whether moving from → to is permitted by the state machine.
func CanTransition(from, to SessionStatus) bool {
	for _, allowed := range sessionTransitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// IsOpen reports whether the status still occupies the master's single
// open-session slot.
func (s SessionStatus) IsOpen() bool {
	return s == SessionActive || s == SessionPaused
}

// TaskType classifies what kind of work a session tracks.
type TaskType string

const (
	TaskWork        TaskType = "WORK"
	TaskTravel      TaskType = "TRAVEL"
	TaskPreparation TaskType = "PREPARATION"
	TaskOther       TaskType = "OTHER"
)

// IsValid checks if the TaskType is a known value.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskWork, TaskTravel, TaskPreparation, TaskOther:
		return true
	default:
		return false
	}
}

// EntryType is the kind of event appended to a session's entry log.
type EntryType string

const (
	EntryStart  EntryType = "START"
	EntryPause  EntryType = "PAUSE"
	EntryResume EntryType = "RESUME"
	EntryStop   EntryType = "STOP"
)

// TimeEntry is one append-only event in a session's log. Pause intervals and
// active duration are reconstructed from the ordered log, never stored.
type TimeEntry struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Type      EntryType
	Timestamp time.Time
	CreatedAt time.Time
}

// TimeSession is a master's time-tracking session against a project or booking.
type TimeSession struct {
	ID            uuid.UUID
	MasterID      uuid.UUID
	ProjectID     *uuid.UUID // At least one of ProjectID/BookingID is expected.
	BookingID     *uuid.UUID
	Status        SessionStatus
	TaskType      TaskType
	StartTime     time.Time
	EndTime       *time.Time
	BillableHours float64
	HourlyRate    float64
	Notes         string
	Attachments   []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ActiveDuration computes the worked time of a session from its entry log:
// the span from START to STOP (or now for open sessions) minus every
// PAUSE→RESUME interval. A trailing PAUSE with no RESUME is subtracted up to
// the end of the span. Entries must be in ascending timestamp order.
func ActiveDuration(entries []TimeEntry, now time.Time) time.Duration {
	var start, end time.Time
	var paused time.Duration
	var pausedAt *time.Time

	for i := range entries {
		e := &entries[i]
		switch e.Type {
		case EntryStart:
			start = e.Timestamp
		case EntryPause:
			if pausedAt == nil {
				ts := e.Timestamp
				pausedAt = &ts
			}
		case EntryResume:
			if pausedAt != nil {
				paused += e.Timestamp.Sub(*pausedAt)
				pausedAt = nil
			}
		case EntryStop:
			end = e.Timestamp
		}
	}

	if start.IsZero() {
		return 0
	}
	if end.IsZero() {
		end = now
	}
	if pausedAt != nil {
		paused += end.Sub(*pausedAt)
	}

	active := end.Sub(start) - paused
	if active < 0 {
		return 0
	}

	return active
}

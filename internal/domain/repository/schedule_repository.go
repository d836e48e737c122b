package repository

import (
	"context"

	"handshakeme/internal/domain/entity"
	"handshakeme/internal/errors"

	"github.com/google/uuid"
)

// ErrScheduleNotFound is returned when a master has no working-hours schedule.
var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleRepository defines the interface for working-hours schedule lookups.
type ScheduleRepository interface {
	// FindByMaster retrieves the weekly schedule of a master.
	// Returns ErrScheduleNotFound when the master never configured one.
	FindByMaster(ctx context.Context, masterID uuid.UUID) (*entity.WeeklySchedule, error)
}

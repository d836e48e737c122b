package entity

import (
	"time"

	"github.com/google/uuid"
)

// DaySchedule is one weekday row of a master's working-hours schedule.
// Start and End are "HH:MM" strings in the master's local time; comparison
// against the current time is a plain string compare, which is valid for
// zero-padded 24-hour values.
type DaySchedule struct {
	Day     time.Weekday
	Enabled bool
	Start   string // "09:00"
	End     string // "18:00"
}

// WeeklySchedule is a master's full working-hours schedule keyed by weekday.
type WeeklySchedule struct {
	MasterID uuid.UUID
	Days     map[time.Weekday]DaySchedule
}

// IsAvailableAt reports whether the schedule covers the given instant.
// A missing or disabled day means unavailable.
func (s *WeeklySchedule) IsAvailableAt(t time.Time) bool {
	if s == nil || len(s.Days) == 0 {
		return false
	}

	day, ok := s.Days[t.Weekday()]
	if !ok || !day.Enabled || day.Start == "" || day.End == "" {
		return false
	}

	hhmm := t.Format("15:04")

	return hhmm >= day.Start && hhmm <= day.End
}

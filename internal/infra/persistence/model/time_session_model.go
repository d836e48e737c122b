package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeSessionModel mirrors the 'time_sessions' table. A partial unique index
// on (master_id) WHERE status IN ('ACTIVE','PAUSED') backs the single open
// session guarantee; the repository additionally inserts conditionally so the
// race surfaces as a domain error instead of a constraint violation.
type TimeSessionModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	MasterID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProjectID     *uuid.UUID `gorm:"type:uuid;index"`
	BookingID     *uuid.UUID `gorm:"type:uuid;index"`
	Status        string     `gorm:"type:varchar(16);not null"`
	TaskType      string     `gorm:"type:varchar(16);not null"`
	StartTime     time.Time  `gorm:"not null"`
	EndTime       *time.Time
	BillableHours float64 `gorm:"type:decimal(8,4);not null;default:0"`
	HourlyRate    float64 `gorm:"type:decimal(12,2);not null;default:0"`
	Notes         string  `gorm:"type:text"`
	Attachments   string  `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Entries []TimeEntryModel `gorm:"foreignKey:SessionID"`
}

// TableName explicitly sets the table name for GORM.
func (TimeSessionModel) TableName() string {
	return "time_sessions"
}

// TimeEntryModel mirrors the append-only 'time_entries' table.
type TimeEntryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(8);not null"`
	Timestamp time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TimeEntryModel) TableName() string {
	return "time_entries"
}

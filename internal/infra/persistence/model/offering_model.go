package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceOfferingModel mirrors the 'service_offerings' table.
type ServiceOfferingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	MasterID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:decimal(12,2);not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ServiceOfferingModel) TableName() string {
	return "service_offerings"
}

// PortfolioItemModel mirrors the 'portfolio_items' table.
type PortfolioItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	MasterID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	IsPublic    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time

	Media []PortfolioMediaModel `gorm:"foreignKey:PortfolioItemID"`
}

// TableName explicitly sets the table name for GORM.
func (PortfolioItemModel) TableName() string {
	return "portfolio_items"
}

// PortfolioMediaModel mirrors the 'portfolio_media' table. Position preserves
// the author's ordering; position 0 is the preview asset.
type PortfolioMediaModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	PortfolioItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL             string    `gorm:"type:text;not null"`
	ThumbnailURL    string    `gorm:"type:text"`
	Position        int       `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (PortfolioMediaModel) TableName() string {
	return "portfolio_media"
}

// WorkingHoursModel mirrors the 'working_hours' table: one row per enabled
// weekday of a master's schedule. Times are zero-padded "HH:MM" local time.
type WorkingHoursModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	MasterID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_working_hours_master_day"`
	Weekday   int       `gorm:"not null;uniqueIndex:idx_working_hours_master_day"`
	Enabled   bool      `gorm:"not null;default:true"`
	StartTime string    `gorm:"type:varchar(5);not null"`
	EndTime   string    `gorm:"type:varchar(5);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (WorkingHoursModel) TableName() string {
	return "working_hours"
}

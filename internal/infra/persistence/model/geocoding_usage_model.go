// Package model contains the GORM-specific structs mirroring database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// GeocodingUsageModel mirrors the 'geocoding_usages' analytics table.
type GeocodingUsageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(32);not null"`
	CacheHit  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (GeocodingUsageModel) TableName() string {
	return "geocoding_usages"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// MasterProfileModel mirrors the 'master_profiles' table. Latitude/Longitude
// are nullable: profiles without coordinates are excluded from geo search at
// the query level.
type MasterProfileModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;unique"`
	CompanyName       string     `gorm:"type:varchar(100);not null"`
	Description       string     `gorm:"type:text"`
	ExperienceYears   int        `gorm:"not null;default:0"`
	City              string     `gorm:"type:varchar(100)"`
	CategoryID        *uuid.UUID `gorm:"type:uuid;index"`
	Rating            float64    `gorm:"type:decimal(3,2);not null;default:0"`
	CompletedProjects int        `gorm:"not null;default:0"`
	OnTimeRate        float64    `gorm:"type:decimal(4,3);not null;default:0"`
	IsVerified        bool       `gorm:"not null;default:false"`
	Latitude          *float64   `gorm:"type:decimal(10,8);index:idx_master_profiles_on_coords"`
	Longitude         *float64   `gorm:"type:decimal(11,8);index:idx_master_profiles_on_coords"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (MasterProfileModel) TableName() string {
	return "master_profiles"
}

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(100);not null;unique"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

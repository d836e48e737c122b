package postgres

import (
	"context"

	"handshakeme/internal/domain/entity"
	domainerrors "handshakeme/internal/domain/errors"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// geocodingUsageRepository implements the repository.GeocodingUsageRepository interface.
type geocodingUsageRepository struct {
	db *gorm.DB
}

// NewGeocodingUsageRepository is the constructor for geocodingUsageRepository.
func NewGeocodingUsageRepository(db *gorm.DB) repository.GeocodingUsageRepository {
	return &geocodingUsageRepository{db: db}
}

// RecordUsage appends one usage record.
func (repo *geocodingUsageRepository) RecordUsage(ctx context.Context, usage *entity.GeocodingUsage) error {
	usageM := &model.GeocodingUsageModel{
		ID:       usage.ID,
		UserID:   usage.UserID,
		Action:   string(usage.Action),
		CacheHit: usage.CacheHit,
	}

	if err := repo.db.WithContext(ctx).Create(usageM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to record geocoding usage")
	}

	usage.ID = usageM.ID
	usage.CreatedAt = usageM.CreatedAt

	return nil
}

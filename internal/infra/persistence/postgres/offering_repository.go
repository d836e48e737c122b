package postgres

import (
	"context"

	"handshakeme/internal/domain/entity"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// offeringRepository implements the repository.OfferingRepository interface.
type offeringRepository struct {
	db *gorm.DB
}

// NewOfferingRepository is the constructor for offeringRepository.
func NewOfferingRepository(db *gorm.DB) repository.OfferingRepository {
	return &offeringRepository{db: db}
}

// FindActiveByMaster retrieves all active offerings of a master.
func (repo *offeringRepository) FindActiveByMaster(ctx context.Context, masterID uuid.UUID) ([]*entity.ServiceOffering, error) {
	var offeringModels []*model.ServiceOfferingModel
	err := repo.db.WithContext(ctx).
		Where("master_id = ? AND is_active = ?", masterID, true).
		Order("created_at ASC").
		Find(&offeringModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find active offerings by master")
	}

	offerings := make([]*entity.ServiceOffering, 0, len(offeringModels))
	for _, offeringM := range offeringModels {
		offerings = append(offerings, &entity.ServiceOffering{
			ID:          offeringM.ID,
			MasterID:    offeringM.MasterID,
			Name:        offeringM.Name,
			Description: offeringM.Description,
			Price:       offeringM.Price,
			IsActive:    offeringM.IsActive,
			CreatedAt:   offeringM.CreatedAt,
			UpdatedAt:   offeringM.UpdatedAt,
		})
	}

	return offerings, nil
}

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

// portfolioRepository implements the repository.PortfolioRepository interface.
type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository is the constructor for portfolioRepository.
func NewPortfolioRepository(db *gorm.DB) repository.PortfolioRepository {
	return &portfolioRepository{db: db}
}

// FindPublicByMaster retrieves up to limit public portfolio items, newest first.
func (repo *portfolioRepository) FindPublicByMaster(ctx context.Context, masterID uuid.UUID, limit int) ([]*entity.PortfolioItem, error) {
	var itemModels []*model.PortfolioItemModel
	query := repo.db.WithContext(ctx).
		Where("master_id = ? AND is_public = ?", masterID, true).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find public portfolio by master")
	}

	items := make([]*entity.PortfolioItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toPortfolioItemDomain(itemM))
	}

	return items, nil
}

func toPortfolioItemDomain(m *model.PortfolioItemModel) *entity.PortfolioItem {
	media := make([]entity.MediaAsset, 0, len(m.Media))
	for _, mediaM := range m.Media {
		media = append(media, entity.MediaAsset{
			URL:          mediaM.URL,
			ThumbnailURL: mediaM.ThumbnailURL,
		})
	}

	return &entity.PortfolioItem{
		ID:          m.ID,
		MasterID:    m.MasterID,
		Title:       m.Title,
		Description: m.Description,
		IsPublic:    m.IsPublic,
		Media:       media,
		CreatedAt:   m.CreatedAt,
	}
}

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

// masterRepository implements the repository.MasterRepository interface.
type masterRepository struct {
	db *gorm.DB
}

// NewMasterRepository is the constructor for masterRepository.
func NewMasterRepository(db *gorm.DB) repository.MasterRepository {
	return &masterRepository{db: db}
}

// SearchInBounds retrieves every geo-locatable master inside the bounding box.
// Profiles without coordinates never match: the coordinate predicates are on
// nullable columns, so NULL rows fall out of the comparison.
func (repo *masterRepository) SearchInBounds(ctx context.Context, criteria repository.MasterSearchCriteria) ([]*entity.MasterProfile, error) {
	query := repo.db.WithContext(ctx).Model(&model.MasterProfileModel{}).
		Where("latitude BETWEEN ? AND ?", criteria.Bound.Min.Lat(), criteria.Bound.Max.Lat()).
		Where("longitude BETWEEN ? AND ?", criteria.Bound.Min.Lon(), criteria.Bound.Max.Lon())

	if criteria.CategoryID != nil {
		query = query.Where("category_id = ?", *criteria.CategoryID)
	}
	if criteria.MinRating != nil {
		query = query.Where("rating >= ?", *criteria.MinRating)
	}
	if criteria.Verified != nil {
		query = query.Where("is_verified = ?", *criteria.Verified)
	}

	var profileModels []*model.MasterProfileModel
	if err := query.Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search masters in bounds")
	}

	profiles := make([]*entity.MasterProfile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toMasterProfileDomain(profileM))
	}

	return profiles, nil
}

// FindByID retrieves a master profile by its unique ID.
func (repo *masterRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MasterProfile, error) {
	var profileM model.MasterProfileModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profileM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMasterNotFound
		}

		return nil, errors.Wrap(err, "failed to find master by ID")
	}

	return toMasterProfileDomain(&profileM), nil
}

func toMasterProfileDomain(m *model.MasterProfileModel) *entity.MasterProfile {
	return &entity.MasterProfile{
		ID:                m.ID,
		UserID:            m.UserID,
		CompanyName:       m.CompanyName,
		Description:       m.Description,
		ExperienceYears:   m.ExperienceYears,
		City:              m.City,
		CategoryID:        m.CategoryID,
		Rating:            m.Rating,
		CompletedProjects: m.CompletedProjects,
		OnTimeRate:        m.OnTimeRate,
		IsVerified:        m.IsVerified,
		Latitude:          m.Latitude,
		Longitude:         m.Longitude,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

package postgres

import (
	"context"
	"time"

	"handshakeme/internal/domain/entity"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// scheduleRepository implements the repository.ScheduleRepository interface.
type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository is the constructor for scheduleRepository.
func NewScheduleRepository(db *gorm.DB) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// FindByMaster retrieves the weekly schedule of a master.
func (repo *scheduleRepository) FindByMaster(ctx context.Context, masterID uuid.UUID) (*entity.WeeklySchedule, error) {
	var dayModels []*model.WorkingHoursModel
	err := repo.db.WithContext(ctx).
		Where("master_id = ?", masterID).
		Order("weekday ASC").
		Find(&dayModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find working hours by master")
	}
	if len(dayModels) == 0 {
		return nil, repository.ErrScheduleNotFound
	}

	days := make(map[time.Weekday]entity.DaySchedule, len(dayModels))
	for _, dayM := range dayModels {
		weekday := time.Weekday(dayM.Weekday)
		days[weekday] = entity.DaySchedule{
			Day:     weekday,
			Enabled: dayM.Enabled,
			Start:   dayM.StartTime,
			End:     dayM.EndTime,
		}
	}

	return &entity.WeeklySchedule{
		MasterID: masterID,
		Days:     days,
	}, nil
}

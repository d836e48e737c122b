package postgres

import (
	"context"
	"encoding/json"
	"time"

	"handshakeme/internal/domain/entity"
	domainerrors "handshakeme/internal/domain/errors"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// timeSessionRepository implements the repository.TimeSessionRepository interface.
type timeSessionRepository struct {
	db *gorm.DB
}

// NewTimeSessionRepository is the constructor for timeSessionRepository.
func NewTimeSessionRepository(db *gorm.DB) repository.TimeSessionRepository {
	return &timeSessionRepository{db: db}
}

// CreateExclusive inserts a session only if the master holds no open one.
// The existence check and the insert are one statement, so two concurrent
// starts race on the database rather than on application state: exactly one
// INSERT ... SELECT ... WHERE NOT EXISTS lands a row. Sessions created
// already COMPLETED skip the guard; they never occupy the open slot.
func (repo *timeSessionRepository) CreateExclusive(ctx context.Context, session *entity.TimeSession) error {
	sessionM, err := fromTimeSessionDomain(session)
	if err != nil {
		return err
	}

	if !session.Status.IsOpen() {
		if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to create time session")
		}

		return nil
	}

	result := repo.db.WithContext(ctx).Exec(`
		INSERT INTO time_sessions
			(id, master_id, project_id, booking_id, status, task_type, start_time,
			 end_time, billable_hours, hourly_rate, notes, attachments, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM time_sessions
			WHERE master_id = ? AND status IN (?, ?)
		)`,
		sessionM.ID, sessionM.MasterID, sessionM.ProjectID, sessionM.BookingID,
		sessionM.Status, sessionM.TaskType, sessionM.StartTime,
		sessionM.EndTime, sessionM.BillableHours, sessionM.HourlyRate,
		sessionM.Notes, sessionM.Attachments, sessionM.CreatedAt, sessionM.UpdatedAt,
		sessionM.MasterID, string(entity.SessionActive), string(entity.SessionPaused),
	)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			// The partial unique index caught a race the conditional insert
			// could not see (e.g. a commit between plan and execution).
			return repository.ErrOpenSessionExists
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to create time session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOpenSessionExists
	}

	return nil
}

// FindByID retrieves a session by its unique ID.
func (repo *timeSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSession, error) {
	var sessionM model.TimeSessionModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find time session by ID")
	}

	return toTimeSessionDomain(&sessionM)
}

// FindOpenByMaster retrieves the master's single ACTIVE or PAUSED session.
func (repo *timeSessionRepository) FindOpenByMaster(ctx context.Context, masterID uuid.UUID) (*entity.TimeSession, error) {
	var sessionM model.TimeSessionModel
	err := repo.db.WithContext(ctx).
		Where("master_id = ? AND status IN (?, ?)",
			masterID, string(entity.SessionActive), string(entity.SessionPaused)).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find open time session by master")
	}

	return toTimeSessionDomain(&sessionM)
}

// UpdateSession updates an existing session record.
func (repo *timeSessionRepository) UpdateSession(ctx context.Context, session *entity.TimeSession) error {
	sessionM, err := fromTimeSessionDomain(session)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.TimeSessionModel{}).
		Where("id = ?", sessionM.ID).
		Updates(map[string]any{
			"status":         sessionM.Status,
			"task_type":      sessionM.TaskType,
			"end_time":       sessionM.EndTime,
			"billable_hours": sessionM.BillableHours,
			"hourly_rate":    sessionM.HourlyRate,
			"notes":          sessionM.Notes,
			"attachments":    sessionM.Attachments,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update time session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// CompleteSession updates the session row and appends the STOP entry in one
// transaction. A failure on either side rolls back both, so a retried stop
// never finds a stray STOP entry on a still-open session.
func (repo *timeSessionRepository) CompleteSession(ctx context.Context, session *entity.TimeSession, stop *entity.TimeEntry) error {
	sessionM, err := fromTimeSessionDomain(session)
	if err != nil {
		return err
	}

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.TimeSessionModel{}).
			Where("id = ?", sessionM.ID).
			Updates(map[string]any{
				"status":         sessionM.Status,
				"end_time":       sessionM.EndTime,
				"billable_hours": sessionM.BillableHours,
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to complete time session")
		}
		if result.RowsAffected == 0 {
			return repository.ErrSessionNotFound
		}

		entryM := &model.TimeEntryModel{
			ID:        stop.ID,
			SessionID: stop.SessionID,
			Type:      string(stop.Type),
			Timestamp: stop.Timestamp,
			CreatedAt: stop.CreatedAt,
		}
		if err := tx.Create(entryM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to append stop entry")
		}
		stop.CreatedAt = entryM.CreatedAt

		return nil
	})
}

// DeleteSession removes a session and its entry log by ID.
func (repo *timeSessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&model.TimeEntryModel{}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to delete time entries")
		}

		result := tx.Where("id = ?", id).Delete(&model.TimeSessionModel{})
		if result.Error != nil {
			return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete time session")
		}
		if result.RowsAffected == 0 {
			return repository.ErrSessionNotFound
		}

		return nil
	})
}

// AppendEntry appends one event to a session's entry log.
func (repo *timeSessionRepository) AppendEntry(ctx context.Context, entry *entity.TimeEntry) error {
	entryM := &model.TimeEntryModel{
		ID:        entry.ID,
		SessionID: entry.SessionID,
		Type:      string(entry.Type),
		Timestamp: entry.Timestamp,
		CreatedAt: entry.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrSessionNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append time entry")
	}

	entry.CreatedAt = entryM.CreatedAt

	return nil
}

// FindEntriesBySession retrieves a session's entry log in ascending order.
func (repo *timeSessionRepository) FindEntriesBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.TimeEntry, error) {
	var entryModels []*model.TimeEntryModel
	err := repo.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, created_at ASC").
		Find(&entryModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find time entries by session")
	}

	entries := make([]entity.TimeEntry, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, entity.TimeEntry{
			ID:        entryM.ID,
			SessionID: entryM.SessionID,
			Type:      entity.EntryType(entryM.Type),
			Timestamp: entryM.Timestamp,
			CreatedAt: entryM.CreatedAt,
		})
	}

	return entries, nil
}

func fromTimeSessionDomain(session *entity.TimeSession) (*model.TimeSessionModel, error) {
	attachments := session.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode attachments")
	}

	return &model.TimeSessionModel{
		ID:            session.ID,
		MasterID:      session.MasterID,
		ProjectID:     session.ProjectID,
		BookingID:     session.BookingID,
		Status:        string(session.Status),
		TaskType:      string(session.TaskType),
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		BillableHours: session.BillableHours,
		HourlyRate:    session.HourlyRate,
		Notes:         session.Notes,
		Attachments:   string(raw),
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}, nil
}

func toTimeSessionDomain(m *model.TimeSessionModel) (*entity.TimeSession, error) {
	status, err := entity.ParseSessionStatus(m.Status)
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt status on session %s", m.ID)
	}

	var attachments []string
	if m.Attachments != "" {
		if err := json.Unmarshal([]byte(m.Attachments), &attachments); err != nil {
			return nil, errors.Wrapf(err, "corrupt attachments on session %s", m.ID)
		}
	}

	return &entity.TimeSession{
		ID:            m.ID,
		MasterID:      m.MasterID,
		ProjectID:     m.ProjectID,
		BookingID:     m.BookingID,
		Status:        status,
		TaskType:      entity.TaskType(m.TaskType),
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		BillableHours: m.BillableHours,
		HourlyRate:    m.HourlyRate,
		Notes:         m.Notes,
		Attachments:   attachments,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

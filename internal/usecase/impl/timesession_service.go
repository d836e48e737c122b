package impl

import (
	"context"
	"math"
	"time"

	"handshakeme/internal/domain/entity"
	domainerrors "handshakeme/internal/domain/errors"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type timeSessionService struct {
	sessionRepo repository.TimeSessionRepository
	now         func() time.Time
}

// TimeSessionServiceParams holds dependencies for TimeSessionService, injected by Fx.
type TimeSessionServiceParams struct {
	fx.In

	SessionRepo repository.TimeSessionRepository
}

// NewTimeSessionService creates a new time session service instance
func NewTimeSessionService(params TimeSessionServiceParams) usecase.TimeSessionUsecase {
	return &timeSessionService{
		sessionRepo: params.SessionRepo,
		now:         time.Now,
	}
}

// StartSession opens a new ACTIVE session for the master.
func (s *timeSessionService) StartSession(ctx context.Context, masterID uuid.UUID, req *usecase.StartSessionRequest) (*usecase.SessionView, error) {
	taskType := entity.TaskType(req.TaskType)
	if !taskType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown task type: " + req.TaskType)
	}
	if req.ProjectID == nil && req.BookingID == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("a session needs a project or a booking")
	}

	startedAt := s.now()
	session := &entity.TimeSession{
		ID:         uuid.New(),
		MasterID:   masterID,
		ProjectID:  req.ProjectID,
		BookingID:  req.BookingID,
		Status:     entity.SessionActive,
		TaskType:   taskType,
		StartTime:  startedAt,
		HourlyRate: req.HourlyRate,
		Notes:      req.Notes,
		CreatedAt:  startedAt,
		UpdatedAt:  startedAt,
	}

	// The conditional insert closes the concurrent-start race: of two
	// simultaneous starts exactly one lands a row.
	if err := s.sessionRepo.CreateExclusive(ctx, session); err != nil {
		if errors.Is(err, repository.ErrOpenSessionExists) {
			return nil, domainerrors.ErrActiveSessionExists
		}

		return nil, errors.Wrap(err, "failed to create time session")
	}

	entry := &entity.TimeEntry{
		ID:        uuid.New(),
		SessionID: session.ID,
		Type:      entity.EntryStart,
		Timestamp: startedAt,
	}
	if err := s.sessionRepo.AppendEntry(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to append start entry")
	}

	return s.buildView(session, []entity.TimeEntry{*entry}), nil
}

// PauseSession moves ACTIVE → PAUSED.
func (s *timeSessionService) PauseSession(ctx context.Context, masterID, sessionID uuid.UUID) (*usecase.SessionView, error) {
	return s.transition(ctx, masterID, sessionID, entity.SessionPaused, entity.EntryPause)
}

// ResumeSession moves PAUSED → ACTIVE.
func (s *timeSessionService) ResumeSession(ctx context.Context, masterID, sessionID uuid.UUID) (*usecase.SessionView, error) {
	return s.transition(ctx, masterID, sessionID, entity.SessionActive, entity.EntryResume)
}

// StopSession moves an open session to COMPLETED and fixes billable hours
// from the reconstructed entry log.
func (s *timeSessionService) StopSession(ctx context.Context, masterID, sessionID uuid.UUID) (*usecase.SessionView, error) {
	session, err := s.ownedSession(ctx, masterID, sessionID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(session.Status, entity.SessionCompleted) {
		return nil, domainerrors.ErrInvalidSessionState
	}

	stoppedAt := s.now()
	entry := &entity.TimeEntry{
		ID:        uuid.New(),
		SessionID: session.ID,
		Type:      entity.EntryStop,
		Timestamp: stoppedAt,
	}

	entries, err := s.sessionRepo.FindEntriesBySession(ctx, session.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entry log")
	}
	entries = append(entries, *entry)

	active := entity.ActiveDuration(entries, stoppedAt)
	session.Status = entity.SessionCompleted
	session.EndTime = &stoppedAt
	session.BillableHours = roundHours(active)

	// Row update and STOP entry land together: a failure leaves the session
	// open with no trailing STOP, so the stop can simply be retried.
	if err := s.sessionRepo.CompleteSession(ctx, session, entry); err != nil {
		return nil, errors.Wrap(err, "failed to complete time session")
	}

	view := s.buildView(session, entries)
	view.ActiveDuration = active
	view.ActiveHours = roundHours(active)

	return view, nil
}

// AddManualEntry records a finished interval as a COMPLETED session without
// touching the open-session slot.
func (s *timeSessionService) AddManualEntry(ctx context.Context, masterID uuid.UUID, req *usecase.ManualEntryRequest) (*usecase.SessionView, error) {
	taskType := entity.TaskType(req.TaskType)
	if !taskType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown task type: " + req.TaskType)
	}
	if req.ProjectID == nil && req.BookingID == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("a session needs a project or a booking")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("end time must be after start time")
	}

	createdAt := s.now()
	endTime := req.EndTime
	active := req.EndTime.Sub(req.StartTime)
	session := &entity.TimeSession{
		ID:            uuid.New(),
		MasterID:      masterID,
		ProjectID:     req.ProjectID,
		BookingID:     req.BookingID,
		Status:        entity.SessionCompleted,
		TaskType:      taskType,
		StartTime:     req.StartTime,
		EndTime:       &endTime,
		BillableHours: roundHours(active),
		HourlyRate:    req.HourlyRate,
		Notes:         req.Notes,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	// COMPLETED sessions never block the exclusivity check, so the
	// conditional insert passes even while another session is open.
	if err := s.sessionRepo.CreateExclusive(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to create manual session")
	}

	entries := []entity.TimeEntry{
		{ID: uuid.New(), SessionID: session.ID, Type: entity.EntryStart, Timestamp: req.StartTime},
		{ID: uuid.New(), SessionID: session.ID, Type: entity.EntryStop, Timestamp: req.EndTime},
	}
	for i := range entries {
		if err := s.sessionRepo.AppendEntry(ctx, &entries[i]); err != nil {
			return nil, errors.Wrap(err, "failed to append manual entry")
		}
	}

	view := s.buildView(session, entries)
	view.ActiveDuration = active
	view.ActiveHours = roundHours(active)

	return view, nil
}

// UpdateSession edits the mutable fields of a session.
func (s *timeSessionService) UpdateSession(ctx context.Context, masterID, sessionID uuid.UUID, req *usecase.UpdateSessionRequest) (*usecase.SessionView, error) {
	session, err := s.ownedSession(ctx, masterID, sessionID)
	if err != nil {
		return nil, err
	}

	if req.TaskType != nil {
		taskType := entity.TaskType(*req.TaskType)
		if !taskType.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown task type: " + *req.TaskType)
		}
		session.TaskType = taskType
	}
	if req.HourlyRate != nil {
		session.HourlyRate = *req.HourlyRate
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}
	if req.Attachments != nil {
		session.Attachments = *req.Attachments
	}

	if err := s.sessionRepo.UpdateSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to update time session")
	}

	return s.loadView(ctx, session)
}

// DeleteSession removes a COMPLETED session and its entry log.
func (s *timeSessionService) DeleteSession(ctx context.Context, masterID, sessionID uuid.UUID) error {
	session, err := s.ownedSession(ctx, masterID, sessionID)
	if err != nil {
		return err
	}
	if session.Status != entity.SessionCompleted {
		return domainerrors.ErrActiveSessionDelete
	}

	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		return errors.Wrap(err, "failed to delete time session")
	}

	return nil
}

// GetSession retrieves one of the master's sessions with its entry log.
func (s *timeSessionService) GetSession(ctx context.Context, masterID, sessionID uuid.UUID) (*usecase.SessionView, error) {
	session, err := s.ownedSession(ctx, masterID, sessionID)
	if err != nil {
		return nil, err
	}

	return s.loadView(ctx, session)
}

// GetOpenSession retrieves the master's current ACTIVE or PAUSED session.
func (s *timeSessionService) GetOpenSession(ctx context.Context, masterID uuid.UUID) (*usecase.SessionView, error) {
	session, err := s.sessionRepo.FindOpenByMaster(ctx, masterID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find open session")
	}

	return s.loadView(ctx, session)
}

// transition applies one state-machine step and appends its log entry.
func (s *timeSessionService) transition(ctx context.Context, masterID, sessionID uuid.UUID, to entity.SessionStatus, entryType entity.EntryType) (*usecase.SessionView, error) {
	session, err := s.ownedSession(ctx, masterID, sessionID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(session.Status, to) {
		return nil, domainerrors.ErrInvalidSessionState
	}

	entry := &entity.TimeEntry{
		ID:        uuid.New(),
		SessionID: session.ID,
		Type:      entryType,
		Timestamp: s.now(),
	}
	if err := s.sessionRepo.AppendEntry(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to append entry")
	}

	session.Status = to
	if err := s.sessionRepo.UpdateSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to update time session")
	}

	return s.loadView(ctx, session)
}

// ownedSession loads a session and enforces that it belongs to the caller.
// Foreign sessions read as not found so existence is not leaked.
func (s *timeSessionService) ownedSession(ctx context.Context, masterID, sessionID uuid.UUID) (*entity.TimeSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find time session")
	}
	if session.MasterID != masterID {
		return nil, domainerrors.ErrSessionNotFound
	}

	return session, nil
}

// loadView reloads the entry log and rebuilds the elapsed accounting.
func (s *timeSessionService) loadView(ctx context.Context, session *entity.TimeSession) (*usecase.SessionView, error) {
	entries, err := s.sessionRepo.FindEntriesBySession(ctx, session.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entry log")
	}

	return s.buildView(session, entries), nil
}

func (s *timeSessionService) buildView(session *entity.TimeSession, entries []entity.TimeEntry) *usecase.SessionView {
	active := entity.ActiveDuration(entries, s.now())

	return &usecase.SessionView{
		Session:        session,
		Entries:        entries,
		ActiveDuration: active,
		ActiveHours:    roundHours(active),
	}
}

// roundHours converts a duration to fractional hours at 4 decimals.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*10000) / 10000
}

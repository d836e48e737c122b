package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"handshakeme/internal/domain/entity"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Hand-rolled fakes with overridable function fields. Nil functions return
// empty results so tests only wire what they exercise.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeMasterRepo struct {
	searchFn func(ctx context.Context, criteria repository.MasterSearchCriteria) ([]*entity.MasterProfile, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*entity.MasterProfile, error)
}

func (f *fakeMasterRepo) SearchInBounds(ctx context.Context, criteria repository.MasterSearchCriteria) ([]*entity.MasterProfile, error) {
	if f.searchFn == nil {
		return nil, nil
	}

	return f.searchFn(ctx, criteria)
}

func (f *fakeMasterRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.MasterProfile, error) {
	if f.findFn == nil {
		return nil, repository.ErrMasterNotFound
	}

	return f.findFn(ctx, id)
}

type fakeUserRepo struct {
	findFn func(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.findFn == nil {
		return nil, repository.ErrUserNotFound
	}

	return f.findFn(ctx, id)
}

type fakeCategoryRepo struct {
	findFn func(ctx context.Context, id uuid.UUID) (*entity.Category, error)
}

func (f *fakeCategoryRepo) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if f.findFn == nil {
		return nil, repository.ErrCategoryNotFound
	}

	return f.findFn(ctx, id)
}

type fakeOfferingRepo struct {
	findFn func(ctx context.Context, masterID uuid.UUID) ([]*entity.ServiceOffering, error)
}

func (f *fakeOfferingRepo) FindActiveByMaster(ctx context.Context, masterID uuid.UUID) ([]*entity.ServiceOffering, error) {
	if f.findFn == nil {
		return nil, nil
	}

	return f.findFn(ctx, masterID)
}

type fakePortfolioRepo struct {
	findFn func(ctx context.Context, masterID uuid.UUID, limit int) ([]*entity.PortfolioItem, error)
}

func (f *fakePortfolioRepo) FindPublicByMaster(ctx context.Context, masterID uuid.UUID, limit int) ([]*entity.PortfolioItem, error) {
	if f.findFn == nil {
		return nil, nil
	}

	return f.findFn(ctx, masterID, limit)
}

type fakeScheduleRepo struct {
	findFn func(ctx context.Context, masterID uuid.UUID) (*entity.WeeklySchedule, error)
}

func (f *fakeScheduleRepo) FindByMaster(ctx context.Context, masterID uuid.UUID) (*entity.WeeklySchedule, error) {
	if f.findFn == nil {
		return nil, repository.ErrScheduleNotFound
	}

	return f.findFn(ctx, masterID)
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.TimeSession
	entries  map[uuid.UUID][]entity.TimeEntry

	createErr error
	updateErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: map[uuid.UUID]*entity.TimeSession{},
		entries:  map[uuid.UUID][]entity.TimeEntry{},
	}
}

func (f *fakeSessionRepo) CreateExclusive(_ context.Context, session *entity.TimeSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	if session.Status.IsOpen() {
		for _, existing := range f.sessions {
			if existing.MasterID == session.MasterID && existing.Status.IsOpen() {
				return repository.ErrOpenSessionExists
			}
		}
	}
	clone := *session
	f.sessions[session.ID] = &clone

	return nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TimeSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	clone := *session

	return &clone, nil
}

func (f *fakeSessionRepo) FindOpenByMaster(_ context.Context, masterID uuid.UUID) (*entity.TimeSession, error) {
	for _, session := range f.sessions {
		if session.MasterID == masterID && session.Status.IsOpen() {
			clone := *session

			return &clone, nil
		}
	}

	return nil, repository.ErrSessionNotFound
}

func (f *fakeSessionRepo) UpdateSession(_ context.Context, session *entity.TimeSession) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.sessions[session.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	clone := *session
	f.sessions[session.ID] = &clone

	return nil
}

func (f *fakeSessionRepo) CompleteSession(_ context.Context, session *entity.TimeSession, stop *entity.TimeEntry) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.sessions[session.ID]; !ok {
		return repository.ErrSessionNotFound
	}
	clone := *session
	f.sessions[session.ID] = &clone
	f.entries[stop.SessionID] = append(f.entries[stop.SessionID], *stop)

	return nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, id uuid.UUID) error {
	if _, ok := f.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.sessions, id)
	delete(f.entries, id)

	return nil
}

func (f *fakeSessionRepo) AppendEntry(_ context.Context, entry *entity.TimeEntry) error {
	f.entries[entry.SessionID] = append(f.entries[entry.SessionID], *entry)

	return nil
}

func (f *fakeSessionRepo) FindEntriesBySession(_ context.Context, sessionID uuid.UUID) ([]entity.TimeEntry, error) {
	entries := f.entries[sessionID]
	out := make([]entity.TimeEntry, len(entries))
	copy(out, entries)

	return out, nil
}

type fakeUsageRepo struct {
	records []*entity.GeocodingUsage
	err     error
}

func (f *fakeUsageRepo) RecordUsage(_ context.Context, usage *entity.GeocodingUsage) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, usage)

	return nil
}

type fakePublisher struct {
	events []*service.GeocodingUsageEvent
	err    error
}

func (f *fakePublisher) PublishUsageEvent(_ context.Context, event *service.GeocodingUsageEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeLimiter struct {
	decision service.RateLimitDecision
	calls    []string
}

func (f *fakeLimiter) Allow(_ context.Context, userID, action string) service.RateLimitDecision {
	f.calls = append(f.calls, action)

	return f.decision
}

func allowAll() *fakeLimiter {
	return &fakeLimiter{decision: service.RateLimitDecision{
		Allowed:   true,
		Remaining: 9,
		ResetAt:   time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC),
	}}
}

// fakeCache is a plain in-memory map with no TTL semantics; gateway tests
// only care about hit/miss and write-through behavior.
type fakeCache struct {
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	return f.data[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.sets++

	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.data, key)

	return nil
}

func (f *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, factory func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if raw, _ := f.Get(ctx, key); raw != nil {
		return raw, nil
	}
	raw, err := factory(ctx)
	if err != nil {
		return nil, err
	}

	return raw, f.Set(ctx, key, raw, ttl)
}

type fakeGeocoder struct {
	geocodeFn func(ctx context.Context, address, language string) ([]service.GeocodeResult, error)
	reverseFn func(ctx context.Context, point service.GeoPoint, language string) ([]service.GeocodeResult, error)
	placesFn  func(ctx context.Context, query string, opts service.PlaceSearchOptions) ([]service.Place, error)
	routeFn   func(ctx context.Context, origin, destination service.GeoPoint, opts service.RouteOptions) (*service.Route, error)

	geocodeCalls int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address, language string) ([]service.GeocodeResult, error) {
	f.geocodeCalls++
	if f.geocodeFn == nil {
		return nil, errors.New("geocode not wired")
	}

	return f.geocodeFn(ctx, address, language)
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, point service.GeoPoint, language string) ([]service.GeocodeResult, error) {
	if f.reverseFn == nil {
		return nil, errors.New("reverse geocode not wired")
	}

	return f.reverseFn(ctx, point, language)
}

func (f *fakeGeocoder) SearchPlaces(ctx context.Context, query string, opts service.PlaceSearchOptions) ([]service.Place, error) {
	if f.placesFn == nil {
		return nil, errors.New("place search not wired")
	}

	return f.placesFn(ctx, query, opts)
}

func (f *fakeGeocoder) Route(ctx context.Context, origin, destination service.GeoPoint, opts service.RouteOptions) (*service.Route, error) {
	if f.routeFn == nil {
		return nil, errors.New("route not wired")
	}

	return f.routeFn(ctx, origin, destination, opts)
}

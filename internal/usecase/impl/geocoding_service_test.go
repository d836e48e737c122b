package impl

import (
	"context"
	"testing"
	"time"

	"handshakeme/config"
	domainerrors "handshakeme/internal/domain/errors"
	"handshakeme/internal/domain/service"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geocodingTestConfig() *config.Config {
	return &config.Config{
		Cache: &config.CacheConfig{DefaultTTL: time.Hour},
	}
}

type geocodingFixture struct {
	limiter   *fakeLimiter
	cache     *fakeCache
	geocoder  *fakeGeocoder
	usageRepo *fakeUsageRepo
	publisher *fakePublisher
	svc       usecase.GeocodingUsecase
}

func newGeocodingFixture(t *testing.T) *geocodingFixture {
	t.Helper()

	f := &geocodingFixture{
		limiter:   allowAll(),
		cache:     newFakeCache(),
		geocoder:  &fakeGeocoder{},
		usageRepo: &fakeUsageRepo{},
		publisher: &fakePublisher{},
	}
	f.svc = NewGeocodingService(GeocodingServiceParams{
		Limiter:   f.limiter,
		Cache:     f.cache,
		Geocoder:  f.geocoder,
		UsageRepo: f.usageRepo,
		Publisher: f.publisher,
		Config:    geocodingTestConfig(),
		Logger:    discardLogger(),
	})

	return f
}

func TestGeocodingService_GeocodeCachesUpstreamResponse(t *testing.T) {
	f := newGeocodingFixture(t)
	f.geocoder.geocodeFn = func(_ context.Context, address, language string) ([]service.GeocodeResult, error) {
		assert.Equal(t, "Chuy Avenue, 125", address)
		assert.Equal(t, "en_US", language)

		return []service.GeocodeResult{
			{Address: "Kyrgyzstan, Bishkek, Chuy Avenue, 125", Point: service.GeoPoint{Latitude: 42.87, Longitude: 74.59}},
		}, nil
	}

	ctx := context.Background()
	userID := uuid.New()
	req := &usecase.GeocodeRequest{Address: "Chuy Avenue, 125", Language: "en_US", CacheResults: true}

	first, err := f.svc.Geocode(ctx, userID, req)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	require.Len(t, first.Results, 1)
	assert.Equal(t, 9, first.RateLimit.Remaining)

	// Second identical call is served from cache without touching upstream.
	second, err := f.svc.Geocode(ctx, userID, req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, 1, f.geocoder.geocodeCalls)

	// Both calls were recorded and published, hit flag included.
	require.Len(t, f.usageRepo.records, 2)
	assert.False(t, f.usageRepo.records[0].CacheHit)
	assert.True(t, f.usageRepo.records[1].CacheHit)
	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, "GEOCODE", f.publisher.events[0].Action)
}

func TestGeocodingService_CacheDisabledBypassesReadAndWrite(t *testing.T) {
	f := newGeocodingFixture(t)
	f.geocoder.geocodeFn = func(_ context.Context, _, _ string) ([]service.GeocodeResult, error) {
		return []service.GeocodeResult{{Address: "somewhere"}}, nil
	}

	ctx := context.Background()
	userID := uuid.New()
	req := &usecase.GeocodeRequest{Address: "Chuy Avenue, 125"}

	for i := 0; i < 2; i++ {
		resp, err := f.svc.Geocode(ctx, userID, req)
		require.NoError(t, err)
		assert.False(t, resp.CacheHit)
	}

	assert.Equal(t, 2, f.geocoder.geocodeCalls)
	assert.Equal(t, 0, f.cache.sets)
}

func TestGeocodingService_RateLimitDeniedShortCircuits(t *testing.T) {
	f := newGeocodingFixture(t)
	resetAt := time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC)
	f.limiter.decision = service.RateLimitDecision{Allowed: false, Remaining: 0, ResetAt: resetAt}

	_, err := f.svc.Geocode(context.Background(), uuid.New(), &usecase.GeocodeRequest{Address: "x"})
	require.Error(t, err)

	var limitErr *usecase.RateLimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, resetAt, limitErr.Decision.ResetAt)

	// Nothing downstream ran.
	assert.Equal(t, 0, f.geocoder.geocodeCalls)
	assert.Empty(t, f.usageRepo.records)
}

func TestGeocodingService_UpstreamFailureMapsToUpstreamUnavailable(t *testing.T) {
	f := newGeocodingFixture(t)
	f.geocoder.geocodeFn = func(_ context.Context, _, _ string) ([]service.GeocodeResult, error) {
		return nil, errors.New("mapping provider returned 503")
	}

	_, err := f.svc.Geocode(context.Background(), uuid.New(), &usecase.GeocodeRequest{Address: "x", CacheResults: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamUnavailable)
	assert.Empty(t, f.usageRepo.records)
}

func TestGeocodingService_AnalyticsFailuresNeverFailTheRequest(t *testing.T) {
	f := newGeocodingFixture(t)
	f.geocoder.geocodeFn = func(_ context.Context, _, _ string) ([]service.GeocodeResult, error) {
		return []service.GeocodeResult{{Address: "ok"}}, nil
	}
	f.usageRepo.err = errors.New("usage table gone")
	f.publisher.err = errors.New("broker down")

	resp, err := f.svc.Geocode(context.Background(), uuid.New(), &usecase.GeocodeRequest{Address: "x"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
}

func TestGeocodingService_ReverseGeocodeKeyIsCoordinateStable(t *testing.T) {
	f := newGeocodingFixture(t)
	calls := 0
	f.geocoder.reverseFn = func(_ context.Context, point service.GeoPoint, _ string) ([]service.GeocodeResult, error) {
		calls++

		return []service.GeocodeResult{{Address: "resolved", Point: point}}, nil
	}

	ctx := context.Background()
	userID := uuid.New()

	// Differences beyond the 6th decimal collapse onto the same cache key.
	first, err := f.svc.ReverseGeocode(ctx, userID, &usecase.ReverseGeocodeRequest{
		Latitude: 42.8746001, Longitude: 74.5698001, CacheResults: true,
	})
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := f.svc.ReverseGeocode(ctx, userID, &usecase.ReverseGeocodeRequest{
		Latitude: 42.87460011, Longitude: 74.56980009, CacheResults: true,
	})
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, 1, calls)
}

func TestGeocodingService_GetRouteRoundTripsThroughCache(t *testing.T) {
	f := newGeocodingFixture(t)
	f.geocoder.routeFn = func(_ context.Context, origin, destination service.GeoPoint, opts service.RouteOptions) (*service.Route, error) {
		assert.Equal(t, "driving", opts.Mode)

		return &service.Route{DistanceMeters: 2000, DurationSeconds: 300}, nil
	}

	ctx := context.Background()
	userID := uuid.New()
	req := &usecase.GetRouteRequest{
		OriginLatitude: 42.87, OriginLongitude: 74.56,
		DestinationLatitude: 42.88, DestinationLongitude: 74.58,
		Mode: "driving", CacheResults: true,
	}

	first, err := f.svc.GetRoute(ctx, userID, req)
	require.NoError(t, err)
	require.NotNil(t, first.Route)
	assert.Equal(t, 2000.0, first.Route.DistanceMeters)

	second, err := f.svc.GetRoute(ctx, userID, req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Route, second.Route)
}

func TestGeocodingService_CalculateDistanceIsLocal(t *testing.T) {
	f := newGeocodingFixture(t)

	resp, err := f.svc.CalculateDistance(context.Background(), uuid.New(), &usecase.CalculateDistanceRequest{
		FromLatitude: 0, FromLongitude: 0,
		ToLatitude: 1, ToLongitude: 0,
	})
	require.NoError(t, err)

	// One degree of latitude on the sphere used by the engine.
	assert.InDelta(t, 111.19, resp.DistanceKm, 0.5)
	assert.Equal(t, []string{"CALCULATE_DISTANCE"}, f.limiter.calls)
	require.Len(t, f.usageRepo.records, 1)
	assert.False(t, f.usageRepo.records[0].CacheHit)
	assert.Equal(t, 0, f.cache.sets)
}

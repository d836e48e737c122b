package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"handshakeme/config"
	deliverycontext "handshakeme/internal/delivery/context"
	"handshakeme/internal/domain/entity"
	domainerrors "handshakeme/internal/domain/errors"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/domain/service"
	"handshakeme/internal/infra/geo"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const geocodingKeyPrefix = "geocoding"

type geocodingService struct {
	limiter   service.RateLimiter
	cache     service.Cache
	geocoder  service.Geocoder
	usageRepo repository.GeocodingUsageRepository
	publisher service.EventPublisher
	config    *config.Config
	logger    *slog.Logger
	now       func() time.Time
}

// GeocodingServiceParams holds dependencies for GeocodingService, injected by Fx.
type GeocodingServiceParams struct {
	fx.In

	Limiter   service.RateLimiter
	Cache     service.Cache
	Geocoder  service.Geocoder
	UsageRepo repository.GeocodingUsageRepository
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewGeocodingService creates a new geocoding gateway service instance
func NewGeocodingService(params GeocodingServiceParams) usecase.GeocodingUsecase {
	return &geocodingService{
		limiter:   params.Limiter,
		cache:     params.Cache,
		geocoder:  params.Geocoder,
		usageRepo: params.UsageRepo,
		publisher: params.Publisher,
		config:    params.Config,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// Geocode resolves a free-text address, serving from cache when possible.
func (s *geocodingService) Geocode(ctx context.Context, userID uuid.UUID, req *usecase.GeocodeRequest) (*usecase.GeocodeResponse, error) {
	info, err := s.checkLimit(ctx, userID, entity.ActionGeocode)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s:%s:%s", geocodingKeyPrefix, entity.ActionGeocode, req.Language, req.Address)
	var results []service.GeocodeResult
	cacheHit, err := s.cacheThenCall(ctx, key, req.CacheResults, &results, func(ctx context.Context) (any, error) {
		return s.geocoder.Geocode(ctx, req.Address, req.Language)
	})
	if err != nil {
		return nil, err
	}

	s.recordUsage(ctx, userID, entity.ActionGeocode, cacheHit)

	return &usecase.GeocodeResponse{Results: results, CacheHit: cacheHit, RateLimit: info}, nil
}

// ReverseGeocode resolves coordinates to addresses, serving from cache when possible.
func (s *geocodingService) ReverseGeocode(ctx context.Context, userID uuid.UUID, req *usecase.ReverseGeocodeRequest) (*usecase.ReverseGeocodeResponse, error) {
	info, err := s.checkLimit(ctx, userID, entity.ActionReverseGeocode)
	if err != nil {
		return nil, err
	}

	// Coordinates at 6 decimals (~0.1 m) keep keys deterministic.
	key := fmt.Sprintf("%s:%s:%s:%.6f,%.6f",
		geocodingKeyPrefix, entity.ActionReverseGeocode, req.Language, req.Latitude, req.Longitude)
	var results []service.GeocodeResult
	cacheHit, err := s.cacheThenCall(ctx, key, req.CacheResults, &results, func(ctx context.Context) (any, error) {
		point := service.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}

		return s.geocoder.ReverseGeocode(ctx, point, req.Language)
	})
	if err != nil {
		return nil, err
	}

	s.recordUsage(ctx, userID, entity.ActionReverseGeocode, cacheHit)

	return &usecase.ReverseGeocodeResponse{Results: results, CacheHit: cacheHit, RateLimit: info}, nil
}

// SearchPlaces finds points of interest, serving from cache when possible.
func (s *geocodingService) SearchPlaces(ctx context.Context, userID uuid.UUID, req *usecase.SearchPlacesRequest) (*usecase.SearchPlacesResponse, error) {
	info, err := s.checkLimit(ctx, userID, entity.ActionSearchPlaces)
	if err != nil {
		return nil, err
	}

	center := ""
	if req.Latitude != nil && req.Longitude != nil {
		center = fmt.Sprintf("%.6f,%.6f", *req.Latitude, *req.Longitude)
	}
	key := fmt.Sprintf("%s:%s:%s:%s:%s:%.1f:%d",
		geocodingKeyPrefix, entity.ActionSearchPlaces, req.Language, req.Query, center, req.RadiusKm, req.Limit)

	var places []service.Place
	cacheHit, err := s.cacheThenCall(ctx, key, req.CacheResults, &places, func(ctx context.Context) (any, error) {
		opts := service.PlaceSearchOptions{
			RadiusKm: req.RadiusKm,
			Limit:    req.Limit,
			Language: req.Language,
		}
		if req.Latitude != nil && req.Longitude != nil {
			opts.Center = &service.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude}
		}

		return s.geocoder.SearchPlaces(ctx, req.Query, opts)
	})
	if err != nil {
		return nil, err
	}

	s.recordUsage(ctx, userID, entity.ActionSearchPlaces, cacheHit)

	return &usecase.SearchPlacesResponse{Places: places, CacheHit: cacheHit, RateLimit: info}, nil
}

// GetRoute computes a route, serving from cache when possible.
func (s *geocodingService) GetRoute(ctx context.Context, userID uuid.UUID, req *usecase.GetRouteRequest) (*usecase.GetRouteResponse, error) {
	info, err := s.checkLimit(ctx, userID, entity.ActionGetRoute)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s:%.6f,%.6f|%.6f,%.6f:%s:%t",
		geocodingKeyPrefix, entity.ActionGetRoute,
		req.OriginLatitude, req.OriginLongitude,
		req.DestinationLatitude, req.DestinationLongitude,
		req.Mode, req.AvoidTolls)

	var route *service.Route
	cacheHit, err := s.cacheThenCall(ctx, key, req.CacheResults, &route, func(ctx context.Context) (any, error) {
		origin := service.GeoPoint{Latitude: req.OriginLatitude, Longitude: req.OriginLongitude}
		destination := service.GeoPoint{Latitude: req.DestinationLatitude, Longitude: req.DestinationLongitude}
		opts := service.RouteOptions{Mode: req.Mode, AvoidTolls: req.AvoidTolls}

		return s.geocoder.Route(ctx, origin, destination, opts)
	})
	if err != nil {
		return nil, err
	}

	s.recordUsage(ctx, userID, entity.ActionGetRoute, cacheHit)

	return &usecase.GetRouteResponse{Route: route, CacheHit: cacheHit, RateLimit: info}, nil
}

// CalculateDistance computes the great-circle distance locally. No upstream
// call, no caching; still rate-limited and recorded like every other action.
func (s *geocodingService) CalculateDistance(ctx context.Context, userID uuid.UUID, req *usecase.CalculateDistanceRequest) (*usecase.CalculateDistanceResponse, error) {
	info, err := s.checkLimit(ctx, userID, entity.ActionCalculateDistance)
	if err != nil {
		return nil, err
	}

	distance := geo.RoundKm(geo.HaversineKm(
		req.FromLatitude, req.FromLongitude,
		req.ToLatitude, req.ToLongitude,
	))

	s.recordUsage(ctx, userID, entity.ActionCalculateDistance, false)

	return &usecase.CalculateDistanceResponse{DistanceKm: distance, RateLimit: info}, nil
}

// checkLimit asks the limiter and converts a denial to the typed error the
// delivery layer unwraps for Retry-After.
func (s *geocodingService) checkLimit(ctx context.Context, userID uuid.UUID, action entity.GeocodingAction) (usecase.RateLimitInfo, error) {
	decision := s.limiter.Allow(ctx, userID.String(), string(action))
	if !decision.Allowed {
		return usecase.RateLimitInfo{}, &usecase.RateLimitExceededError{Decision: decision}
	}

	return usecase.RateLimitInfo{
		Remaining: decision.Remaining,
		ResetAt:   decision.ResetAt.Unix(),
	}, nil
}

// cacheThenCall serves out into the caller's pointer: cache first (when
// enabled), upstream on miss, write-through after. Returns whether the
// response came from cache.
func (s *geocodingService) cacheThenCall(ctx context.Context, key string, useCache bool, out any, call func(ctx context.Context) (any, error)) (bool, error) {
	if useCache {
		raw, err := s.cache.Get(ctx, key)
		if err == nil && raw != nil {
			if err := json.Unmarshal(raw, out); err == nil {
				return true, nil
			}
			// Undecodable entry: treat as a miss and overwrite below.
			s.logger.Warn("discarding undecodable cache entry", slog.String("key", key))
		}
	}

	fresh, err := call(ctx)
	if err != nil {
		return false, domainerrors.ErrUpstreamUnavailable.WrapMessage(err.Error())
	}

	raw, err := json.Marshal(fresh)
	if err != nil {
		return false, errors.Wrap(err, "failed to encode upstream response")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrap(err, "failed to decode upstream response")
	}

	if useCache {
		if err := s.cache.Set(ctx, key, raw, s.config.Cache.DefaultTTL); err != nil {
			// Cache trouble must not fail a served request.
			s.logger.Warn("cache write-through failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	return false, nil
}

// recordUsage appends the analytics row and publishes the usage event. Both
// are best-effort: failures are logged, never returned.
func (s *geocodingService) recordUsage(ctx context.Context, userID uuid.UUID, action entity.GeocodingAction, cacheHit bool) {
	usage := &entity.GeocodingUsage{
		ID:       uuid.New(),
		UserID:   userID,
		Action:   action,
		CacheHit: cacheHit,
	}
	if err := s.usageRepo.RecordUsage(ctx, usage); err != nil {
		s.logger.Warn("failed to record geocoding usage",
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}

	event := &service.GeocodingUsageEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		UserID:    userID.String(),
		Action:    string(action),
		CacheHit:  cacheHit,
		Timestamp: s.now().UnixMilli(),
	}
	if err := s.publisher.PublishUsageEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish geocoding usage event",
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}
}

// Package impl contains the concrete implementations of the application use cases.
package impl

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"handshakeme/config"
	"handshakeme/internal/domain/entity"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/infra/geo"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxServicesPerCard  = 3
	maxPortfolioPerCard = 3
	otherCategoryBucket = "Other"
)

// scoredMaster pairs a master with its exact distance from the search center.
type scoredMaster struct {
	master     *entity.MasterProfile
	distanceKm float64
}

type searchService struct {
	masterRepo    repository.MasterRepository
	userRepo      repository.UserRepository
	categoryRepo  repository.CategoryRepository
	offeringRepo  repository.OfferingRepository
	portfolioRepo repository.PortfolioRepository
	scheduleRepo  repository.ScheduleRepository
	config        *config.Config
	logger        *slog.Logger
	now           func() time.Time
}

// SearchServiceParams holds dependencies for SearchService, injected by Fx.
type SearchServiceParams struct {
	fx.In

	MasterRepo    repository.MasterRepository
	UserRepo      repository.UserRepository
	CategoryRepo  repository.CategoryRepository
	OfferingRepo  repository.OfferingRepository
	PortfolioRepo repository.PortfolioRepository
	ScheduleRepo  repository.ScheduleRepository
	Config        *config.Config
	Logger        *slog.Logger
}

// NewSearchService creates a new search service instance
func NewSearchService(params SearchServiceParams) usecase.SearchUsecase {
	return &searchService{
		masterRepo:    params.MasterRepo,
		userRepo:      params.UserRepo,
		categoryRepo:  params.CategoryRepo,
		offeringRepo:  params.OfferingRepo,
		portfolioRepo: params.PortfolioRepo,
		scheduleRepo:  params.ScheduleRepo,
		config:        params.Config,
		logger:        params.Logger,
		now:           time.Now,
	}
}

// FindNearbyMasters runs the full search pipeline: bounding-box pre-filter,
// exact radius filter, distance ranking, stats, pagination, page enrichment.
func (s *searchService) FindNearbyMasters(ctx context.Context, filters usecase.SearchFilters) (*usecase.SearchResult, error) {
	filters = s.applyFilterDefaults(filters)

	result := &usecase.SearchResult{
		Masters: []*usecase.MasterSummary{},
		SearchParams: usecase.SearchParams{
			Latitude:  filters.Latitude,
			Longitude: filters.Longitude,
			RadiusKm:  filters.RadiusKm,
		},
		Pagination: usecase.Pagination{Limit: filters.Limit, Offset: filters.Offset},
		Stats:      &usecase.SearchStats{ByCategory: map[string]int{}},
	}

	bound := geo.BoundAround(filters.Latitude, filters.Longitude, filters.RadiusKm)
	criteria := repository.MasterSearchCriteria{
		Bound:      bound,
		CategoryID: filters.CategoryID,
		MinRating:  filters.MinRating,
		Verified:   filters.Verified,
	}

	candidates, err := s.masterRepo.SearchInBounds(ctx, criteria)
	if err != nil {
		// A failing base scan degrades to an empty result so the search
		// surface stays up during database trouble.
		s.logger.Error("master scan failed, returning empty search result",
			slog.Float64("latitude", filters.Latitude),
			slog.Float64("longitude", filters.Longitude),
			slog.Float64("radiusKm", filters.RadiusKm),
			slog.String("error", err.Error()),
		)

		return result, nil
	}

	// Exact radius filter: the bounding box over-selects at the corners.
	scored := make([]scoredMaster, 0, len(candidates))
	for _, master := range candidates {
		if !master.HasCoordinates() {
			continue
		}
		distance := geo.HaversineKm(filters.Latitude, filters.Longitude, *master.Latitude, *master.Longitude)
		if distance > filters.RadiusKm {
			continue
		}
		scored = append(scored, scoredMaster{master: master, distanceKm: geo.RoundKm(distance)})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].distanceKm < scored[j].distanceKm
	})

	result.Stats = s.buildStats(ctx, scored)
	result.Pagination.Total = len(scored)

	page := paginate(scored, filters.Offset, filters.Limit)
	result.Pagination.HasMore = filters.Offset+filters.Limit < len(scored)

	for _, sm := range page {
		summary := s.enrichMaster(ctx, sm, filters)
		if summary == nil {
			// Dropped by the availability filter; the page comes back short.
			continue
		}
		result.Masters = append(result.Masters, summary)
	}

	return result, nil
}

func (s *searchService) applyFilterDefaults(filters usecase.SearchFilters) usecase.SearchFilters {
	searchCfg := s.config.Search
	if filters.RadiusKm <= 0 {
		filters.RadiusKm = searchCfg.DefaultRadiusKm
	}
	if filters.RadiusKm > searchCfg.MaxRadiusKm {
		filters.RadiusKm = searchCfg.MaxRadiusKm
	}
	if filters.Limit <= 0 {
		filters.Limit = searchCfg.DefaultLimit
	}
	if searchCfg.MaxLimit > 0 && filters.Limit > searchCfg.MaxLimit {
		filters.Limit = searchCfg.MaxLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return filters
}

func paginate(scored []scoredMaster, offset, limit int) []scoredMaster {
	if offset >= len(scored) {
		return nil
	}
	end := offset + limit
	if end > len(scored) {
		end = len(scored)
	}

	return scored[offset:end]
}

// buildStats aggregates over the full radius-filtered set, not just the page.
func (s *searchService) buildStats(ctx context.Context, scored []scoredMaster) *usecase.SearchStats {
	stats := &usecase.SearchStats{
		TotalFound: len(scored),
		ByCategory: map[string]int{},
	}
	if len(scored) == 0 {
		return stats
	}

	var distanceSum, ratingSum float64
	categoryNames := map[uuid.UUID]string{}
	for _, sm := range scored {
		distanceSum += sm.distanceKm
		ratingSum += sm.master.Rating
		if sm.master.IsVerified {
			stats.VerifiedCount++
		}

		bucket := otherCategoryBucket
		if sm.master.CategoryID != nil {
			bucket = s.resolveCategoryName(ctx, categoryNames, *sm.master.CategoryID)
		}
		stats.ByCategory[bucket]++
	}

	stats.AvgDistanceKm = geo.RoundKm(distanceSum / float64(len(scored)))
	stats.AvgRating = math.Round(ratingSum/float64(len(scored))*100) / 100

	return stats
}

// resolveCategoryName memoizes category lookups across one request. Failed
// lookups land in the "Other" bucket.
func (s *searchService) resolveCategoryName(ctx context.Context, memo map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := memo[id]; ok {
		return name
	}

	name := otherCategoryBucket
	category, err := s.categoryRepo.FindCategoryByID(ctx, id)
	if err == nil {
		name = category.Name
	} else if !errors.Is(err, repository.ErrCategoryNotFound) {
		s.logger.Warn("category lookup failed during search",
			slog.String("categoryId", id.String()),
			slog.String("error", err.Error()),
		)
	}
	memo[id] = name

	return name
}

// enrichMaster builds the full search card for one page entry. Each
// enrichment lookup degrades independently: a failure leaves its block empty
// but keeps the master in the page. Returns nil only when the availability
// filter drops the master.
func (s *searchService) enrichMaster(ctx context.Context, sm scoredMaster, filters usecase.SearchFilters) *usecase.MasterSummary {
	master := sm.master

	if filters.Available && !s.isAvailableNow(ctx, master.ID) {
		return nil
	}

	summary := &usecase.MasterSummary{
		ID:                master.ID,
		CompanyName:       master.CompanyName,
		Description:       master.Description,
		ExperienceYears:   master.ExperienceYears,
		City:              master.City,
		Rating:            master.Rating,
		CompletedProjects: master.CompletedProjects,
		OnTimeRate:        master.OnTimeRate,
		IsVerified:        master.IsVerified,
		Latitude:          *master.Latitude,
		Longitude:         *master.Longitude,
		DistanceKm:        sm.distanceKm,
	}

	if user, err := s.userRepo.FindUserByID(ctx, master.UserID); err == nil {
		summary.Contact = &usecase.ContactInfo{
			Name:      user.Name,
			Phone:     user.Phone,
			AvatarURL: user.AvatarURL,
		}
	} else {
		s.logger.Warn("contact enrichment failed",
			slog.String("masterId", master.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	if master.CategoryID != nil {
		summary.CategoryName = s.resolveCategoryName(ctx, map[uuid.UUID]string{}, *master.CategoryID)
		if summary.CategoryName == otherCategoryBucket {
			summary.CategoryName = ""
		}
	}

	summary.Services = s.collectServices(ctx, master.ID, filters.ServiceName)
	summary.Portfolio = s.collectPortfolio(ctx, master.ID)

	return summary
}

// matchesAnyToken reports whether the lowercased name contains any filter token.
func matchesAnyToken(name string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(name, token) {
			return true
		}
	}

	return false
}

// collectServices lists the master's active offerings. Unfiltered cards show
// at most three; with a service-name filter (comma-separated), every trimmed
// case-insensitive substring match is listed so the caller sees the full set
// of offerings that satisfied the search.
func (s *searchService) collectServices(ctx context.Context, masterID uuid.UUID, serviceName string) []usecase.ServiceSummary {
	offerings, err := s.offeringRepo.FindActiveByMaster(ctx, masterID)
	if err != nil {
		s.logger.Warn("service enrichment failed",
			slog.String("masterId", masterID.String()),
			slog.String("error", err.Error()),
		)

		return nil
	}

	var tokens []string
	for _, token := range strings.Split(serviceName, ",") {
		if token = strings.ToLower(strings.TrimSpace(token)); token != "" {
			tokens = append(tokens, token)
		}
	}

	services := make([]usecase.ServiceSummary, 0, maxServicesPerCard)
	for _, offering := range offerings {
		if len(tokens) > 0 && !matchesAnyToken(strings.ToLower(offering.Name), tokens) {
			continue
		}
		services = append(services, usecase.ServiceSummary{
			ID:    offering.ID,
			Name:  offering.Name,
			Price: offering.Price,
		})
		if len(tokens) == 0 && len(services) == maxServicesPerCard {
			break
		}
	}

	return services
}

// collectPortfolio lists up to three public portfolio items, newest first.
func (s *searchService) collectPortfolio(ctx context.Context, masterID uuid.UUID) []usecase.PortfolioPreview {
	items, err := s.portfolioRepo.FindPublicByMaster(ctx, masterID, maxPortfolioPerCard)
	if err != nil {
		s.logger.Warn("portfolio enrichment failed",
			slog.String("masterId", masterID.String()),
			slog.String("error", err.Error()),
		)

		return nil
	}

	previews := make([]usecase.PortfolioPreview, 0, len(items))
	for _, item := range items {
		previews = append(previews, usecase.PortfolioPreview{
			ID:         item.ID,
			Title:      item.Title,
			PreviewURL: item.PreviewURL(),
		})
	}

	return previews
}

// isAvailableNow checks the master's working hours against the current
// instant. A missing schedule means unavailable; a failing lookup keeps the
// master (degradation, logged).
func (s *searchService) isAvailableNow(ctx context.Context, masterID uuid.UUID) bool {
	schedule, err := s.scheduleRepo.FindByMaster(ctx, masterID)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return false
		}
		s.logger.Warn("availability check failed, keeping master",
			slog.String("masterId", masterID.String()),
			slog.String("error", err.Error()),
		)

		return true
	}

	return schedule.IsAvailableAt(s.now())
}

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"handshakeme/internal/delivery/http/response"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SearchHandler holds dependencies for the nearby-master search endpoint.
type SearchHandler struct {
	uc     usecase.SearchUsecase
	logger *slog.Logger
}

// NewSearchHandler is the constructor for SearchHandler, injected by Fx.
func NewSearchHandler(uc usecase.SearchUsecase, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		uc:     uc,
		logger: logger,
	}
}

// FindNearbyMasters handles GET /search/masters. Latitude and longitude are
// required; everything else is optional and clamped downstream.
func (h *SearchHandler) FindNearbyMasters(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return response.BadRequest(c, "VALIDATION_ERROR", "latitude must be a number in [-90, 90]")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if err != nil || lng < -180 || lng > 180 {
		return response.BadRequest(c, "VALIDATION_ERROR", "longitude must be a number in [-180, 180]")
	}

	filters := usecase.SearchFilters{
		Latitude:    lat,
		Longitude:   lng,
		ServiceName: c.QueryParam("services"),
	}

	if raw := c.QueryParam("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil || radius < 0 {
			return response.BadRequest(c, "VALIDATION_ERROR", "radius must be a non-negative number of kilometers")
		}
		filters.RadiusKm = radius
	}

	if raw := c.QueryParam("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "categoryId must be a UUID")
		}
		filters.CategoryID = &categoryID
	}

	if raw := c.QueryParam("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil || minRating < 0 || minRating > 5 {
			return response.BadRequest(c, "VALIDATION_ERROR", "minRating must be a number in [0, 5]")
		}
		filters.MinRating = &minRating
	}

	if raw := c.QueryParam("verified"); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "verified must be a boolean")
		}
		filters.Verified = &verified
	}

	if raw := c.QueryParam("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "VALIDATION_ERROR", "available must be a boolean")
		}
		filters.Available = available
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return response.BadRequest(c, "VALIDATION_ERROR", "limit must be a non-negative integer")
		}
		filters.Limit = limit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return response.BadRequest(c, "VALIDATION_ERROR", "offset must be a non-negative integer")
		}
		filters.Offset = offset
	}

	result, err := h.uc.FindNearbyMasters(c.Request().Context(), filters)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Masters found")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

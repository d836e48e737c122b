package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"handshakeme/internal/delivery/http/response"
	"handshakeme/internal/domain/entity"
	"handshakeme/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// GeocodingHandler holds dependencies for the geocoding gateway endpoint.
type GeocodingHandler struct {
	uc     usecase.GeocodingUsecase
	logger *slog.Logger
}

// NewGeocodingHandler is the constructor for GeocodingHandler, injected by Fx.
func NewGeocodingHandler(uc usecase.GeocodingUsecase, logger *slog.Logger) *GeocodingHandler {
	return &GeocodingHandler{
		uc:     uc,
		logger: logger,
	}
}

// Handle handles POST /geocoding. The body is a tagged union over the action
// enum: the envelope names the action, the remaining fields belong to that
// action's request variant.
func (h *GeocodingHandler) Handle(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to read request body")
	}

	var envelope struct {
		Action entity.GeocodingAction `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid geocoding request body")
	}
	if !envelope.Action.IsValid() {
		return response.BadRequest(c, "VALIDATION_ERROR", "Unknown geocoding action")
	}

	ctx := c.Request().Context()

	switch envelope.Action {
	case entity.ActionGeocode:
		var req usecase.GeocodeRequest
		if err := decodePayload(c, body, &req); err != nil {
			return err
		}
		resp, err := h.uc.Geocode(ctx, userID, &req)
		if err != nil {
			return errors.WithStack(err)
		}
		setRateLimitHeaders(c, resp.RateLimit)

		return response.Success(c, http.StatusOK, resp, "Address geocoded")

	case entity.ActionReverseGeocode:
		var req usecase.ReverseGeocodeRequest
		if err := decodePayload(c, body, &req); err != nil {
			return err
		}
		resp, err := h.uc.ReverseGeocode(ctx, userID, &req)
		if err != nil {
			return errors.WithStack(err)
		}
		setRateLimitHeaders(c, resp.RateLimit)

		return response.Success(c, http.StatusOK, resp, "Coordinates resolved")

	case entity.ActionSearchPlaces:
		var req usecase.SearchPlacesRequest
		if err := decodePayload(c, body, &req); err != nil {
			return err
		}
		resp, err := h.uc.SearchPlaces(ctx, userID, &req)
		if err != nil {
			return errors.WithStack(err)
		}
		setRateLimitHeaders(c, resp.RateLimit)

		return response.Success(c, http.StatusOK, resp, "Places found")

	case entity.ActionGetRoute:
		var req usecase.GetRouteRequest
		if err := decodePayload(c, body, &req); err != nil {
			return err
		}
		resp, err := h.uc.GetRoute(ctx, userID, &req)
		if err != nil {
			return errors.WithStack(err)
		}
		setRateLimitHeaders(c, resp.RateLimit)

		return response.Success(c, http.StatusOK, resp, "Route computed")

	case entity.ActionCalculateDistance:
		var req usecase.CalculateDistanceRequest
		if err := decodePayload(c, body, &req); err != nil {
			return err
		}
		resp, err := h.uc.CalculateDistance(ctx, userID, &req)
		if err != nil {
			return errors.WithStack(err)
		}
		setRateLimitHeaders(c, resp.RateLimit)

		return response.Success(c, http.StatusOK, resp, "Distance calculated")

	default:
		return response.BadRequest(c, "VALIDATION_ERROR", "Unknown geocoding action")
	}
}

// setRateLimitHeaders surfaces the limiter decision on successful responses.
func setRateLimitHeaders(c echo.Context, info usecase.RateLimitInfo) {
	c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetAt, 10))
}

package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"handshakeme/internal/delivery/http/response"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Time-session actions dispatched from the single POST endpoint.
const (
	actionStartSession   = "START_SESSION"
	actionPauseSession   = "PAUSE_SESSION"
	actionResumeSession  = "RESUME_SESSION"
	actionStopSession    = "STOP_SESSION"
	actionAddManualEntry = "ADD_MANUAL_ENTRY"
	actionUpdateSession  = "UPDATE_SESSION"
	actionDeleteSession  = "DELETE_SESSION"
)

// TimeSessionHandler holds dependencies for master time tracking endpoints.
type TimeSessionHandler struct {
	uc     usecase.TimeSessionUsecase
	logger *slog.Logger
}

// NewTimeSessionHandler is the constructor for TimeSessionHandler, injected by Fx.
func NewTimeSessionHandler(uc usecase.TimeSessionUsecase, logger *slog.Logger) *TimeSessionHandler {
	return &TimeSessionHandler{
		uc:     uc,
		logger: logger,
	}
}

// Handle handles POST /time-sessions. The body is a tagged union over the
// action enum; lifecycle actions address an existing session by sessionId.
func (h *TimeSessionHandler) Handle(c echo.Context) error {
	masterID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to read request body")
	}

	var envelope struct {
		Action    string     `json:"action"`
		SessionID *uuid.UUID `json:"sessionId"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid time-session request body")
	}

	ctx := c.Request().Context()

	switch envelope.Action {
	case actionStartSession:
		var req usecase.StartSessionRequest
		if err := decodePayload(c, body, &req); err != nil {
			return err
		}
		view, err := h.uc.StartSession(ctx, masterID, &req)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusCreated, view, "Session started")

	case actionPauseSession:
		sessionID, err := requireSessionID(envelope.SessionID)
		if err != nil {
			return err
		}
		view, err := h.uc.PauseSession(ctx, masterID, sessionID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, view, "Session paused")

	case actionResumeSession:
		sessionID, err := requireSessionID(envelope.SessionID)
		if err != nil {
			return err
		}
		view, err := h.uc.ResumeSession(ctx, masterID, sessionID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, view, "Session resumed")

	case actionStopSession:
		sessionID, err := requireSessionID(envelope.SessionID)
		if err != nil {
			return err
		}
		view, err := h.uc.StopSession(ctx, masterID, sessionID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, view, "Session stopped")

	case actionAddManualEntry:
		var req usecase.ManualEntryRequest
		if err := decodePayload(c, body, &req); err != nil {
			return err
		}
		view, err := h.uc.AddManualEntry(ctx, masterID, &req)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusCreated, view, "Manual entry recorded")

	case actionUpdateSession:
		sessionID, err := requireSessionID(envelope.SessionID)
		if err != nil {
			return err
		}
		var req usecase.UpdateSessionRequest
		if err := decodePayload(c, body, &req); err != nil {
			return err
		}
		view, err := h.uc.UpdateSession(ctx, masterID, sessionID, &req)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, view, "Session updated")

	case actionDeleteSession:
		sessionID, err := requireSessionID(envelope.SessionID)
		if err != nil {
			return err
		}
		if err := h.uc.DeleteSession(ctx, masterID, sessionID); err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, map[string]string{"sessionId": sessionID.String()}, "Session deleted")

	default:
		return response.BadRequest(c, "VALIDATION_ERROR", "Unknown time-session action")
	}
}

// GetSession handles GET /time-sessions/:id.
func (h *TimeSessionHandler) GetSession(c echo.Context) error {
	masterID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "session id must be a UUID")
	}

	view, err := h.uc.GetSession(c.Request().Context(), masterID, sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Session retrieved")
}

// GetOpenSession handles GET /time-sessions/open, returning the caller's
// current ACTIVE or PAUSED session.
func (h *TimeSessionHandler) GetOpenSession(c echo.Context) error {
	masterID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	view, err := h.uc.GetOpenSession(c.Request().Context(), masterID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Open session retrieved")
}

// requireSessionID rejects lifecycle actions that omit the session reference.
func requireSessionID(id *uuid.UUID) (uuid.UUID, error) {
	if id == nil || *id == uuid.Nil {
		return uuid.Nil, domainValidation("sessionId is required for this action")
	}

	return *id, nil
}

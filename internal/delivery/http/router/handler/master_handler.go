package handler

import (
	"log/slog"
	"net/http"

	"handshakeme/internal/delivery/http/response"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MasterHandler holds dependencies for master-profile sharing endpoints.
type MasterHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewMasterHandler is the constructor for MasterHandler, injected by Fx.
func NewMasterHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *MasterHandler {
	return &MasterHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfileQR handles GET /masters/:id/qr, returning a PNG QR code that
// references the master profile.
func (h *MasterHandler) GetProfileQR(c echo.Context) error {
	masterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "master id must be a UUID")
	}

	qrCode, err := h.uc.GenerateProfileQR(c.Request().Context(), masterID)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set("Content-Disposition", "inline; filename=profile-qr.png")

	return c.Blob(http.StatusOK, "image/png", qrCode)
}

// ResolveQRRequest represents the request body for resolving a scanned profile QR
type ResolveQRRequest struct {
	QRData string `json:"qrData" validate:"required"`
}

// ResolveProfileQR handles POST /masters/qr/resolve, mapping scanned QR
// payload data back to the referenced master profile.
func (h *MasterHandler) ResolveProfileQR(c echo.Context) error {
	var req ResolveQRRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid QR resolve input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	master, err := h.uc.ResolveProfileQR(c.Request().Context(), req.QRData)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, master, "Profile resolved")
}

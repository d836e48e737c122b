// Package handler contains the HTTP handlers for the application.
package handler

import (
	"encoding/json"

	domainerrors "handshakeme/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// currentUserID reads the authenticated user ID placed on the context by the
// auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("userID").(uuid.UUID)

	return userID, ok
}

// domainValidation builds a 400 validation error with a human-readable detail.
func domainValidation(details string) error {
	return domainerrors.ErrValidationFailed.WithDetails(details)
}

// decodePayload unmarshals an action payload and runs struct validation.
// Action-dispatching endpoints bind the body once and decode it per variant,
// so echo's one-shot Bind is not usable here.
func decodePayload(c echo.Context, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return c.Validate(v)
}

package usecase

import (
	"context"

	"handshakeme/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase covers master-profile sharing: QR generation for a profile
// and resolving a scanned QR back to the profile it references.
type ProfileUsecase interface {
	// GenerateProfileQR renders a PNG QR code for an existing master profile.
	// Returns domainerrors.ErrMasterNotFound for unknown masters.
	GenerateProfileQR(ctx context.Context, masterID uuid.UUID) ([]byte, error)

	// ResolveProfileQR parses scanned QR payload data and loads the referenced
	// master profile.
	ResolveProfileQR(ctx context.Context, qrData string) (*entity.MasterProfile, error)
}

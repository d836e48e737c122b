package impl

import (
	"context"

	"handshakeme/internal/domain/entity"
	domainerrors "handshakeme/internal/domain/errors"
	"handshakeme/internal/domain/repository"
	"handshakeme/internal/domain/service"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	masterRepo    repository.MasterRepository
	qrcodeService service.QRCodeService
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	MasterRepo    repository.MasterRepository
	QRCodeService service.QRCodeService
}

// NewProfileService creates a new profile service instance
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		masterRepo:    params.MasterRepo,
		qrcodeService: params.QRCodeService,
	}
}

// GenerateProfileQR renders a PNG QR code for an existing master profile.
func (s *profileService) GenerateProfileQR(ctx context.Context, masterID uuid.UUID) ([]byte, error) {
	if _, err := s.masterRepo.FindByID(ctx, masterID); err != nil {
		if errors.Is(err, repository.ErrMasterNotFound) {
			return nil, domainerrors.ErrMasterNotFound
		}

		return nil, errors.Wrap(err, "failed to load master profile")
	}

	qrCode, err := s.qrcodeService.GenerateProfileQR(masterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate profile QR")
	}

	return qrCode, nil
}

// ResolveProfileQR parses scanned QR payload data and loads the referenced profile.
func (s *profileService) ResolveProfileQR(ctx context.Context, qrData string) (*entity.MasterProfile, error) {
	masterID, err := s.qrcodeService.ParseProfileQR(qrData)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unrecognized profile QR payload")
	}

	master, err := s.masterRepo.FindByID(ctx, masterID)
	if err != nil {
		if errors.Is(err, repository.ErrMasterNotFound) {
			return nil, domainerrors.ErrMasterNotFound
		}

		return nil, errors.Wrap(err, "failed to load master profile")
	}

	return master, nil
}

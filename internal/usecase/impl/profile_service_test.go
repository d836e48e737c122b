package impl

import (
	"context"
	"testing"

	"handshakeme/internal/domain/entity"
	domainerrors "handshakeme/internal/domain/errors"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQRCodeService struct {
	generateFn func(masterID uuid.UUID) ([]byte, error)
	parseFn    func(qrData string) (uuid.UUID, error)
}

func (f *fakeQRCodeService) GenerateProfileQR(masterID uuid.UUID) ([]byte, error) {
	if f.generateFn == nil {
		return []byte("png"), nil
	}

	return f.generateFn(masterID)
}

func (f *fakeQRCodeService) ParseProfileQR(qrData string) (uuid.UUID, error) {
	if f.parseFn == nil {
		return uuid.Nil, assert.AnError
	}

	return f.parseFn(qrData)
}

func newProfileService(masterRepo *fakeMasterRepo, qrSvc *fakeQRCodeService) usecase.ProfileUsecase {
	return NewProfileService(ProfileServiceParams{
		MasterRepo:    masterRepo,
		QRCodeService: qrSvc,
	})
}

func TestProfileService_GenerateProfileQR(t *testing.T) {
	masterID := uuid.New()
	masterRepo := &fakeMasterRepo{
		findFn: func(_ context.Context, id uuid.UUID) (*entity.MasterProfile, error) {
			assert.Equal(t, masterID, id)

			return &entity.MasterProfile{ID: id}, nil
		},
	}
	svc := newProfileService(masterRepo, &fakeQRCodeService{
		generateFn: func(id uuid.UUID) ([]byte, error) {
			assert.Equal(t, masterID, id)

			return []byte{0x89, 'P', 'N', 'G'}, nil
		},
	})

	png, err := svc.GenerateProfileQR(context.Background(), masterID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
}

func TestProfileService_GenerateProfileQRUnknownMaster(t *testing.T) {
	svc := newProfileService(&fakeMasterRepo{}, &fakeQRCodeService{})

	_, err := svc.GenerateProfileQR(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrMasterNotFound)
}

func TestProfileService_ResolveProfileQR(t *testing.T) {
	masterID := uuid.New()
	masterRepo := &fakeMasterRepo{
		findFn: func(_ context.Context, id uuid.UUID) (*entity.MasterProfile, error) {
			return &entity.MasterProfile{ID: id, CompanyName: "PipeWorks"}, nil
		},
	}
	svc := newProfileService(masterRepo, &fakeQRCodeService{
		parseFn: func(qrData string) (uuid.UUID, error) {
			assert.Equal(t, "scanned-payload", qrData)

			return masterID, nil
		},
	})

	master, err := svc.ResolveProfileQR(context.Background(), "scanned-payload")
	require.NoError(t, err)
	assert.Equal(t, masterID, master.ID)
	assert.Equal(t, "PipeWorks", master.CompanyName)
}

func TestProfileService_ResolveProfileQRBadPayload(t *testing.T) {
	svc := newProfileService(&fakeMasterRepo{}, &fakeQRCodeService{})

	_, err := svc.ResolveProfileQR(context.Background(), "not-a-qr")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"handshakeme/internal/delivery/http/validator"
	"handshakeme/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// newTestContext builds an echo context with the validator wired, the way the
// server sets it up.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSearchUsecase struct {
	findFn func(ctx context.Context, filters usecase.SearchFilters) (*usecase.SearchResult, error)
}

func (f *fakeSearchUsecase) FindNearbyMasters(ctx context.Context, filters usecase.SearchFilters) (*usecase.SearchResult, error) {
	return f.findFn(ctx, filters)
}

type fakeGeocodingUsecase struct {
	geocodeFn  func(ctx context.Context, userID uuid.UUID, req *usecase.GeocodeRequest) (*usecase.GeocodeResponse, error)
	distanceFn func(ctx context.Context, userID uuid.UUID, req *usecase.CalculateDistanceRequest) (*usecase.CalculateDistanceResponse, error)
}

func (f *fakeGeocodingUsecase) Geocode(ctx context.Context, userID uuid.UUID, req *usecase.GeocodeRequest) (*usecase.GeocodeResponse, error) {
	return f.geocodeFn(ctx, userID, req)
}

func (f *fakeGeocodingUsecase) ReverseGeocode(_ context.Context, _ uuid.UUID, _ *usecase.ReverseGeocodeRequest) (*usecase.ReverseGeocodeResponse, error) {
	return &usecase.ReverseGeocodeResponse{}, nil
}

func (f *fakeGeocodingUsecase) SearchPlaces(_ context.Context, _ uuid.UUID, _ *usecase.SearchPlacesRequest) (*usecase.SearchPlacesResponse, error) {
	return &usecase.SearchPlacesResponse{}, nil
}

func (f *fakeGeocodingUsecase) GetRoute(_ context.Context, _ uuid.UUID, _ *usecase.GetRouteRequest) (*usecase.GetRouteResponse, error) {
	return &usecase.GetRouteResponse{}, nil
}

func (f *fakeGeocodingUsecase) CalculateDistance(ctx context.Context, userID uuid.UUID, req *usecase.CalculateDistanceRequest) (*usecase.CalculateDistanceResponse, error) {
	return f.distanceFn(ctx, userID, req)
}

type fakeTimeSessionUsecase struct {
	startFn func(ctx context.Context, masterID uuid.UUID, req *usecase.StartSessionRequest) (*usecase.SessionView, error)
	stopFn  func(ctx context.Context, masterID, sessionID uuid.UUID) (*usecase.SessionView, error)
}

func (f *fakeTimeSessionUsecase) StartSession(ctx context.Context, masterID uuid.UUID, req *usecase.StartSessionRequest) (*usecase.SessionView, error) {
	return f.startFn(ctx, masterID, req)
}

func (f *fakeTimeSessionUsecase) PauseSession(_ context.Context, _, _ uuid.UUID) (*usecase.SessionView, error) {
	return &usecase.SessionView{}, nil
}

func (f *fakeTimeSessionUsecase) ResumeSession(_ context.Context, _, _ uuid.UUID) (*usecase.SessionView, error) {
	return &usecase.SessionView{}, nil
}

func (f *fakeTimeSessionUsecase) StopSession(ctx context.Context, masterID, sessionID uuid.UUID) (*usecase.SessionView, error) {
	return f.stopFn(ctx, masterID, sessionID)
}

func (f *fakeTimeSessionUsecase) AddManualEntry(_ context.Context, _ uuid.UUID, _ *usecase.ManualEntryRequest) (*usecase.SessionView, error) {
	return &usecase.SessionView{}, nil
}

func (f *fakeTimeSessionUsecase) UpdateSession(_ context.Context, _, _ uuid.UUID, _ *usecase.UpdateSessionRequest) (*usecase.SessionView, error) {
	return &usecase.SessionView{}, nil
}

func (f *fakeTimeSessionUsecase) DeleteSession(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (f *fakeTimeSessionUsecase) GetSession(_ context.Context, _, _ uuid.UUID) (*usecase.SessionView, error) {
	return &usecase.SessionView{}, nil
}

func (f *fakeTimeSessionUsecase) GetOpenSession(_ context.Context, _ uuid.UUID) (*usecase.SessionView, error) {
	return &usecase.SessionView{}, nil
}

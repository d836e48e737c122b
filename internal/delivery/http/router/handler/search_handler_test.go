package handler

import (
	"context"
	"net/http"
	"testing"

	"handshakeme/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchHandler_FindNearbyMasters(t *testing.T) {
	var captured usecase.SearchFilters
	uc := &fakeSearchUsecase{
		findFn: func(_ context.Context, filters usecase.SearchFilters) (*usecase.SearchResult, error) {
			captured = filters

			return &usecase.SearchResult{
				Masters:    []*usecase.MasterSummary{},
				Pagination: usecase.Pagination{Limit: 5, Total: 0},
			}, nil
		},
	}
	h := NewSearchHandler(uc, testLogger())

	c, rec := newTestContext(t, http.MethodGet,
		"/search/masters?latitude=42.8746&longitude=74.5698&radius=25&minRating=4.5&verified=true&available=true&services=plumbing&limit=5&offset=10", "")

	require.NoError(t, h.FindNearbyMasters(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 42.8746, captured.Latitude)
	assert.Equal(t, 74.5698, captured.Longitude)
	assert.Equal(t, 25.0, captured.RadiusKm)
	require.NotNil(t, captured.MinRating)
	assert.Equal(t, 4.5, *captured.MinRating)
	require.NotNil(t, captured.Verified)
	assert.True(t, *captured.Verified)
	assert.True(t, captured.Available)
	assert.Equal(t, "plumbing", captured.ServiceName)
	assert.Equal(t, 5, captured.Limit)
	assert.Equal(t, 10, captured.Offset)
}

func TestSearchHandler_FindNearbyMastersOmittedFiltersStayZero(t *testing.T) {
	var captured usecase.SearchFilters
	uc := &fakeSearchUsecase{
		findFn: func(_ context.Context, filters usecase.SearchFilters) (*usecase.SearchResult, error) {
			captured = filters

			return &usecase.SearchResult{}, nil
		},
	}
	h := NewSearchHandler(uc, testLogger())

	c, rec := newTestContext(t, http.MethodGet, "/search/masters?latitude=42.8746&longitude=74.5698", "")

	require.NoError(t, h.FindNearbyMasters(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Defaults are applied downstream, not parsed here.
	assert.Zero(t, captured.RadiusKm)
	assert.Zero(t, captured.Limit)
	assert.Nil(t, captured.CategoryID)
	assert.Nil(t, captured.MinRating)
	assert.Nil(t, captured.Verified)
}

func TestSearchHandler_FindNearbyMastersValidation(t *testing.T) {
	h := NewSearchHandler(&fakeSearchUsecase{}, testLogger())

	tests := []struct {
		name  string
		query string
	}{
		{"missing coordinates", ""},
		{"latitude out of range", "latitude=91&longitude=74.5"},
		{"longitude not a number", "latitude=42.8&longitude=east"},
		{"negative radius", "latitude=42.8&longitude=74.5&radius=-1"},
		{"bad category", "latitude=42.8&longitude=74.5&categoryId=nope"},
		{"rating above scale", "latitude=42.8&longitude=74.5&minRating=6"},
		{"negative offset", "latitude=42.8&longitude=74.5&offset=-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodGet, "/search/masters?"+tt.query, "")

			require.NoError(t, h.FindNearbyMasters(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
		})
	}
}

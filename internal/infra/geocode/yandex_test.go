package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"handshakeme/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *yandexClient {
	return &yandexClient{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: time.Second},
		maxAttempts:  3,
		initialDelay: time.Millisecond,
	}
}

const geocoderBody = `{
	"response": {
		"GeoObjectCollection": {
			"featureMember": [
				{
					"GeoObject": {
						"name": "Chuy Avenue, 125",
						"description": "Bishkek, Kyrgyzstan",
						"Point": {"pos": "74.590421 42.874621"},
						"metaDataProperty": {
							"GeocoderMetaData": {
								"kind": "house",
								"precision": "exact",
								"text": "Kyrgyzstan, Bishkek, Chuy Avenue, 125",
								"Address": {"country_code": "KG"}
							}
						}
					}
				}
			]
		}
	}
}`

func TestYandexClient_GeocodeParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.x/", r.URL.Path)
		assert.Equal(t, "Chuy Avenue, 125", r.URL.Query().Get("geocode"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(geocoderBody))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	results, err := client.Geocode(context.Background(), "Chuy Avenue, 125", "en_US")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Kyrgyzstan, Bishkek, Chuy Avenue, 125", results[0].Address)
	assert.InDelta(t, 42.874621, results[0].Point.Latitude, 1e-9)
	assert.InDelta(t, 74.590421, results[0].Point.Longitude, 1e-9)
	assert.Equal(t, "house", results[0].Kind)
	assert.Equal(t, "KG", results[0].CountryCode)
}

func TestYandexClient_ReverseGeocodeSendsLngLatOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "74.569800,42.874600", r.URL.Query().Get("geocode"))
		w.Write([]byte(geocoderBody))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.ReverseGeocode(context.Background(), service.GeoPoint{Latitude: 42.8746, Longitude: 74.5698}, "")
	require.NoError(t, err)
}

func TestYandexClient_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.Geocode(context.Background(), "nowhere", "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestYandexClient_ServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream exploded", http.StatusBadGateway)

			return
		}
		w.Write([]byte(geocoderBody))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	results, err := client.Geocode(context.Background(), "Chuy Avenue, 125", "")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestYandexClient_RouteSumsLegs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/route", r.URL.Path)
		w.Write([]byte(`{
			"route": {
				"legs": [
					{"distance": {"value": 1200}, "duration": {"value": 180}},
					{"distance": {"value": 800}, "duration": {"value": 120}}
				],
				"geometry": [[74.56, 42.87], [74.58, 42.88]]
			}
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	route, err := client.Route(context.Background(),
		service.GeoPoint{Latitude: 42.87, Longitude: 74.56},
		service.GeoPoint{Latitude: 42.88, Longitude: 74.58},
		service.RouteOptions{Mode: "driving"})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, route.DistanceMeters)
	assert.Equal(t, 300.0, route.DurationSeconds)
	assert.Len(t, route.Geometry, 2)
}

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"handshakeme/config"
	"handshakeme/internal/domain/service"
	"handshakeme/internal/errors"
)

// yandexClient implements service.Geocoder against the Yandex Maps HTTP API.
// Every call goes through the package retry policy.
type yandexClient struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	maxAttempts  int
	initialDelay time.Duration
}

// NewYandexClient creates the upstream mapping client from configuration.
func NewYandexClient(cfg *config.Config) (service.Geocoder, error) {
	gc := cfg.Geocoding
	if gc == nil || gc.BaseURL == "" {
		return nil, errors.New("geocoding provider is not configured")
	}

	return &yandexClient{
		baseURL:      strings.TrimRight(gc.BaseURL, "/"),
		apiKey:       gc.APIKey,
		httpClient:   &http.Client{Timeout: gc.Timeout},
		maxAttempts:  gc.MaxAttempts,
		initialDelay: gc.InitialDelay,
	}, nil
}

// geoObjectResponse mirrors the provider's geocoder envelope, trimmed to the
// fields the gateway exposes.
type geoObjectResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Name        string `json:"name"`
					Description string `json:"description"`
					Point       struct {
						Pos string `json:"pos"` // "lng lat"
					} `json:"Point"`
					MetaDataProperty struct {
						GeocoderMetaData struct {
							Kind      string `json:"kind"`
							Precision string `json:"precision"`
							Text      string `json:"text"`
							Address   struct {
								CountryCode string `json:"country_code"`
							} `json:"Address"`
						} `json:"GeocoderMetaData"`
					} `json:"metaDataProperty"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode resolves a free-text address to coordinates.
func (c *yandexClient) Geocode(ctx context.Context, address, language string) ([]service.GeocodeResult, error) {
	params := url.Values{}
	params.Set("geocode", address)
	if language != "" {
		params.Set("lang", language)
	}

	return c.callGeocoder(ctx, params)
}

// ReverseGeocode resolves coordinates to addresses.
func (c *yandexClient) ReverseGeocode(ctx context.Context, point service.GeoPoint, language string) ([]service.GeocodeResult, error) {
	params := url.Values{}
	// The provider expects "lng,lat" order for reverse lookups.
	params.Set("geocode", fmt.Sprintf("%.6f,%.6f", point.Longitude, point.Latitude))
	if language != "" {
		params.Set("lang", language)
	}

	return c.callGeocoder(ctx, params)
}

func (c *yandexClient) callGeocoder(ctx context.Context, params url.Values) ([]service.GeocodeResult, error) {
	params.Set("format", "json")
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	var parsed geoObjectResponse
	if err := c.getJSON(ctx, "/1.x/", params, &parsed); err != nil {
		return nil, err
	}

	members := parsed.Response.GeoObjectCollection.FeatureMember
	results := make([]service.GeocodeResult, 0, len(members))
	for _, member := range members {
		obj := member.GeoObject
		point, err := parsePos(obj.Point.Pos)
		if err != nil {
			continue
		}

		meta := obj.MetaDataProperty.GeocoderMetaData
		address := meta.Text
		if address == "" {
			address = strings.TrimSpace(obj.Description + " " + obj.Name)
		}

		results = append(results, service.GeocodeResult{
			Address:     address,
			Point:       point,
			Kind:        meta.Kind,
			Precision:   meta.Precision,
			CountryCode: meta.Address.CountryCode,
		})
	}

	return results, nil
}

// placeSearchResponse mirrors the provider's place search envelope.
type placeSearchResponse struct {
	Features []struct {
		Properties struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			CompanyMetaData struct {
				Categories []struct {
					Name string `json:"name"`
				} `json:"Categories"`
			} `json:"CompanyMetaData"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// SearchPlaces finds points of interest matching a free-text query.
func (c *yandexClient) SearchPlaces(ctx context.Context, query string, opts service.PlaceSearchOptions) ([]service.Place, error) {
	params := url.Values{}
	params.Set("text", query)
	params.Set("type", "biz")
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	if opts.Language != "" {
		params.Set("lang", opts.Language)
	}
	if opts.Limit > 0 {
		params.Set("results", strconv.Itoa(opts.Limit))
	}
	if opts.Center != nil {
		params.Set("ll", fmt.Sprintf("%.6f,%.6f", opts.Center.Longitude, opts.Center.Latitude))
		if opts.RadiusKm > 0 {
			// The provider takes a lng,lat span; reuse the flat-degree approximation.
			span := opts.RadiusKm / 111.0
			params.Set("spn", fmt.Sprintf("%.6f,%.6f", span, span))
		}
	}

	var parsed placeSearchResponse
	if err := c.getJSON(ctx, "/v1/search", params, &parsed); err != nil {
		return nil, err
	}

	places := make([]service.Place, 0, len(parsed.Features))
	for _, feature := range parsed.Features {
		if len(feature.Geometry.Coordinates) != 2 {
			continue
		}

		place := service.Place{
			Name:    feature.Properties.Name,
			Address: feature.Properties.Description,
			Point: service.GeoPoint{
				Longitude: feature.Geometry.Coordinates[0],
				Latitude:  feature.Geometry.Coordinates[1],
			},
		}
		if cats := feature.Properties.CompanyMetaData.Categories; len(cats) > 0 {
			place.Category = cats[0].Name
		}
		places = append(places, place)
	}

	return places, nil
}

// routeResponse mirrors the provider's routing envelope.
type routeResponse struct {
	Route struct {
		Legs []struct {
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
		Geometry [][]float64 `json:"geometry"` // [lng, lat] pairs
	} `json:"route"`
}

// Route computes a route between two points.
func (c *yandexClient) Route(ctx context.Context, origin, destination service.GeoPoint, opts service.RouteOptions) (*service.Route, error) {
	params := url.Values{}
	params.Set("waypoints", fmt.Sprintf("%.6f,%.6f|%.6f,%.6f",
		origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude))
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	if opts.Mode != "" {
		params.Set("mode", opts.Mode)
	}
	if opts.AvoidTolls {
		params.Set("avoid_tolls", "true")
	}

	var parsed routeResponse
	if err := c.getJSON(ctx, "/v2/route", params, &parsed); err != nil {
		return nil, err
	}

	route := &service.Route{}
	for _, leg := range parsed.Route.Legs {
		route.DistanceMeters += leg.Distance.Value
		route.DurationSeconds += leg.Duration.Value
	}
	for _, pair := range parsed.Route.Geometry {
		if len(pair) != 2 {
			continue
		}
		route.Geometry = append(route.Geometry, service.GeoPoint{Longitude: pair[0], Latitude: pair[1]})
	}

	return route, nil
}

// getJSON performs one GET with the package retry policy and decodes the
// response body into out.
func (c *yandexClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()

	return retry(ctx, c.maxAttempts, c.initialDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return errors.Wrap(err, "build request")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return errors.Wrap(err, "call mapping provider")
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

			// The status code lands in the message on purpose: the retry
			// policy classifies retryability by matching it.
			return errors.Errorf("mapping provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode provider response")
		}

		return nil
	})
}

// parsePos converts the provider's "lng lat" position string to a GeoPoint.
func parsePos(pos string) (service.GeoPoint, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return service.GeoPoint{}, errors.Errorf("malformed position %q", pos)
	}

	lng, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return service.GeoPoint{}, errors.Wrap(err, "parse longitude")
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return service.GeoPoint{}, errors.Wrap(err, "parse latitude")
	}

	return service.GeoPoint{Latitude: lat, Longitude: lng}, nil
}

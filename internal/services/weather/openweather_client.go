package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/d-melnyk/weather-lookup-api/internal/models"
)

// Lat and Lon are pointers so an empty or partial coord object is
// distinguishable from real zero coordinates.
type geoResponse struct {
	Coord *struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"coord"`
}

type currentResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// ClientOpenWeatherMap talks to the OpenWeatherMap current-weather endpoint.
// The same endpoint serves both steps of a lookup: geocoding a free-text
// city/country query and fetching conditions by coordinate.
type ClientOpenWeatherMap struct {
	APIKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientOpenWeatherMap constructs a new OpenWeatherMap client.
func NewClientOpenWeatherMap(apiKey, apiURL string,
	httpClient HTTPClient, logger zerolog.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{APIKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// ResolveCoordinates geocodes a city/country pair to latitude and longitude.
// A response without a coord object, or a provider 404, means the location
// does not exist as far as the provider is concerned.
func (s *ClientOpenWeatherMap) ResolveCoordinates(
	ctx context.Context, city, country string,
) (models.Coordinates, error) {
	query := url.QueryEscape(city + "," + country)
	reqURL := fmt.Sprintf("%s?q=%s&appid=%s", s.apiURL, query, s.APIKey)

	s.logger.Debug().
		Str("city", city).
		Str("country", country).
		Msg("resolving coordinates")

	var raw geoResponse
	if err := s.get(ctx, reqURL, &raw); err != nil {
		return models.Coordinates{}, err
	}

	if raw.Coord == nil || raw.Coord.Lat == nil || raw.Coord.Lon == nil {
		s.logger.Info().
			Str("city", city).
			Str("country", country).
			Msg("provider returned no coordinates")
		return models.Coordinates{}, fmt.Errorf("%w: %s,%s", ErrLocationNotFound, city, country)
	}

	return models.Coordinates{Lat: *raw.Coord.Lat, Lon: *raw.Coord.Lon}, nil
}

// FetchCurrent retrieves current conditions for the given coordinates,
// requesting metric units. The temperature is truncated to a whole degree.
func (s *ClientOpenWeatherMap) FetchCurrent(
	ctx context.Context, coords models.Coordinates,
) (models.WeatherData, error) {
	reqURL := fmt.Sprintf("%s?lat=%v&lon=%v&appid=%s&units=metric",
		s.apiURL, coords.Lat, coords.Lon, s.APIKey)

	s.logger.Debug().
		Float64("lat", coords.Lat).
		Float64("lon", coords.Lon).
		Msg("fetching current weather")

	var raw currentResponse
	if err := s.get(ctx, reqURL, &raw); err != nil {
		return models.WeatherData{}, err
	}

	if len(raw.Weather) == 0 {
		return models.WeatherData{}, fmt.Errorf("%w: empty weather list", ErrMalformedResponse)
	}

	return models.WeatherData{
		Main:        raw.Weather[0].Main,
		Description: raw.Weather[0].Description,
		Icon:        raw.Weather[0].Icon,
		Temp:        int(raw.Main.Temp),
	}, nil
}

func (s *ClientOpenWeatherMap) get(ctx context.Context, reqURL string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("url", reqURL).
			Msg("error sending HTTP request to OpenWeatherMap")
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %s", ErrLocationNotFound, resp.Status)
	case resp.StatusCode != http.StatusOK:
		s.logger.Error().
			Str("status", resp.Status).
			Msg("OpenWeatherMap API returned non-200 status")
		return fmt.Errorf("%w: status %s", ErrProviderUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	s.logger.Info().
		Dur("duration_ms", time.Since(start)).
		Msg("OpenWeatherMap request completed")
	return nil
}

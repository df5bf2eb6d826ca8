package weather

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/d-melnyk/weather-lookup-api/internal/models"
)

// Sentinel errors let callers tell a missing location apart from a dead or
// misbehaving provider instead of receiving one opaque fault.
var (
	ErrLocationNotFound    = errors.New("location not found")
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrMalformedResponse   = errors.New("malformed provider response")
)

type client interface {
	ResolveCoordinates(ctx context.Context, city, country string) (models.Coordinates, error)
	FetchCurrent(ctx context.Context, coords models.Coordinates) (models.WeatherData, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service orchestrates the two-step lookup: geocode the city/country pair,
// then fetch current conditions for the resolved coordinates.
type Service struct {
	logger zerolog.Logger
	client client
}

func NewService(logger zerolog.Logger, client client) *Service {
	return &Service{logger: logger, client: client}
}

// Lookup returns current weather for a city/country pair. A failed geocode
// short-circuits the lookup; the conditions call is never issued without
// real coordinates.
func (s *Service) Lookup(ctx context.Context, city, country string) (models.WeatherData, error) {
	coords, err := s.client.ResolveCoordinates(ctx, city, country)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Str("country", country).
			Err(err).
			Msg("coordinate resolution failed")
		return models.WeatherData{}, err
	}

	s.logger.Info().
		Ctx(ctx).
		Str("city", city).
		Str("country", country).
		Float64("lat", coords.Lat).
		Float64("lon", coords.Lon).
		Msg("coordinates resolved")

	data, err := s.client.FetchCurrent(ctx, coords)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Float64("lat", coords.Lat).
			Float64("lon", coords.Lon).
			Err(err).
			Msg("current weather fetch failed")
		return models.WeatherData{}, err
	}

	s.logger.Info().
		Ctx(ctx).
		Str("city", city).
		Str("condition", data.Main).
		Int("temp", data.Temp).
		Msg("lookup succeeded")
	return data, nil
}

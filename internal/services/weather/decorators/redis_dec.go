package decorators

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/d-melnyk/weather-lookup-api/internal/models"
)

type lookupService interface {
	Lookup(ctx context.Context, city, country string) (models.WeatherData, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// CachedService serves lookups from redis when possible. Cache trouble only
// degrades to the inner service, it never fails a lookup.
type CachedService struct {
	inner  lookupService
	cache  cacheClient[models.WeatherData]
	logger zerolog.Logger
}

func NewCachedService(
	inner lookupService,
	cache cacheClient[models.WeatherData],
	logger zerolog.Logger,
) *CachedService {
	return &CachedService{inner: inner, cache: cache, logger: logger}
}

func (s *CachedService) Lookup(ctx context.Context, city, country string) (models.WeatherData, error) {
	key := cacheKey(city, country)

	weather, err := s.cache.Get(ctx, key)
	if err == nil {
		s.logger.Info().
			Ctx(ctx).
			Str("key", key).
			Msg("cache hit")
		return weather, nil
	}
	s.logger.Info().
		Ctx(ctx).
		Str("key", key).
		Err(err).
		Msg("cache miss")

	weather, err = s.inner.Lookup(ctx, city, country)
	if err != nil {
		return models.WeatherData{}, err
	}

	if err := s.cache.Set(ctx, key, weather); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cache set failed")
	}

	return weather, nil
}

func cacheKey(city, country string) string {
	return strings.ToLower(fmt.Sprintf("weather:%s,%s", city, country))
}

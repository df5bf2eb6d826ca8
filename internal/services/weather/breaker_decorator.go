package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/d-melnyk/weather-lookup-api/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient routes both provider calls through one circuit breaker.
// A missing location is a valid provider answer and must not trip it.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped client
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped client) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrLocationNotFound)
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) ResolveCoordinates(
	ctx context.Context, city, country string,
) (models.Coordinates, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.ResolveCoordinates(ctx, city, country)
	})
	if err != nil {
		return models.Coordinates{}, b.wrapError(err)
	}
	res, ok := result.(models.Coordinates)
	if !ok {
		return models.Coordinates{}, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return res, nil
}

func (b *BreakerClient) FetchCurrent(
	ctx context.Context, coords models.Coordinates,
) (models.WeatherData, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.FetchCurrent(ctx, coords)
	})
	if err != nil {
		return models.WeatherData{}, b.wrapError(err)
	}
	res, ok := result.(models.WeatherData)
	if !ok {
		return models.WeatherData{}, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return res, nil
}

func (b *BreakerClient) wrapError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w: %v", b.name, ErrProviderUnavailable, err)
	}
	return fmt.Errorf("%s: %w", b.name, err)
}

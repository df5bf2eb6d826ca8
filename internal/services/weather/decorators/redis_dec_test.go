package decorators_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/d-melnyk/weather-lookup-api/internal/models"
	"github.com/d-melnyk/weather-lookup-api/internal/services/weather/decorators"
	"github.com/d-melnyk/weather-lookup-api/pkg/logger"
)

type mockLookupService struct {
	mock.Mock
}

func (m *mockLookupService) Lookup(
	ctx context.Context,
	city, country string,
) (models.WeatherData, error) {
	args := m.Called(ctx, city, country)
	data, ok := args.Get(0).(models.WeatherData)
	if !ok {
		return models.WeatherData{}, args.Error(1)
	}
	return data, args.Error(1)
}

type mockCacheClient struct {
	mock.Mock
}

func (m *mockCacheClient) Set(ctx context.Context, key string, value models.WeatherData) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *mockCacheClient) Get(ctx context.Context, key string) (models.WeatherData, error) {
	args := m.Called(ctx, key)
	data, ok := args.Get(0).(models.WeatherData)
	if !ok {
		return models.WeatherData{}, args.Error(1)
	}
	return data, args.Error(1)
}

func TestCachedService_Lookup(t *testing.T) {
	ctx := context.Background()
	cloudyWeather := models.WeatherData{
		Main:        "Clouds",
		Description: "overcast clouds",
		Icon:        "04d",
		Temp:        12,
	}
	key := "weather:toronto,ca"

	t.Run("CacheHitSkipsInner", func(t *testing.T) {
		inner := &mockLookupService{}
		cacheCl := &mockCacheClient{}

		cacheCl.On("Get", mock.Anything, key).Return(cloudyWeather, nil).Once()

		t.Cleanup(func() {
			cacheCl.AssertExpectations(t)
			inner.AssertNumberOfCalls(t, "Lookup", 0)
		})

		l, err := logger.NewLogger("", "redis_dec_test_hit")
		require.NoError(t, err)

		svc := decorators.NewCachedService(inner, cacheCl, l)

		result, err := svc.Lookup(ctx, "Toronto", "CA")
		require.NoError(t, err)
		assert.Equal(t, cloudyWeather, result)
	})

	t.Run("CacheMissFallsBackAndPopulates", func(t *testing.T) {
		inner := &mockLookupService{}
		cacheCl := &mockCacheClient{}

		cacheCl.On("Get", mock.Anything, key).
			Return(models.WeatherData{}, errors.New("redis: nil")).Once()
		inner.On("Lookup", mock.Anything, "Toronto", "CA").Return(cloudyWeather, nil).Once()
		cacheCl.On("Set", mock.Anything, key, cloudyWeather).Return(nil).Once()

		t.Cleanup(func() {
			cacheCl.AssertExpectations(t)
			inner.AssertExpectations(t)
		})

		l, err := logger.NewLogger("", "redis_dec_test_miss")
		require.NoError(t, err)

		svc := decorators.NewCachedService(inner, cacheCl, l)

		result, err := svc.Lookup(ctx, "Toronto", "CA")
		require.NoError(t, err)
		assert.Equal(t, cloudyWeather, result)
	})

	t.Run("SetFailureStillReturnsData", func(t *testing.T) {
		inner := &mockLookupService{}
		cacheCl := &mockCacheClient{}

		cacheCl.On("Get", mock.Anything, key).
			Return(models.WeatherData{}, errors.New("redis: nil")).Once()
		inner.On("Lookup", mock.Anything, "Toronto", "CA").Return(cloudyWeather, nil).Once()
		cacheCl.On("Set", mock.Anything, key, cloudyWeather).
			Return(errors.New("connection refused")).Once()

		t.Cleanup(func() {
			cacheCl.AssertExpectations(t)
			inner.AssertExpectations(t)
		})

		l, err := logger.NewLogger("", "redis_dec_test_set_failure")
		require.NoError(t, err)

		svc := decorators.NewCachedService(inner, cacheCl, l)

		result, err := svc.Lookup(ctx, "Toronto", "CA")
		require.NoError(t, err)
		assert.Equal(t, cloudyWeather, result)
	})

	t.Run("InnerErrorPropagates", func(t *testing.T) {
		inner := &mockLookupService{}
		cacheCl := &mockCacheClient{}

		lookupErr := errors.New("all clients failed")

		cacheCl.On("Get", mock.Anything, key).
			Return(models.WeatherData{}, errors.New("redis: nil")).Once()
		inner.On("Lookup", mock.Anything, "Toronto", "CA").
			Return(models.WeatherData{}, lookupErr).Once()

		t.Cleanup(func() {
			cacheCl.AssertExpectations(t)
			inner.AssertExpectations(t)
			cacheCl.AssertNumberOfCalls(t, "Set", 0)
		})

		l, err := logger.NewLogger("", "redis_dec_test_inner_error")
		require.NoError(t, err)

		svc := decorators.NewCachedService(inner, cacheCl, l)

		result, err := svc.Lookup(ctx, "Toronto", "CA")
		require.Error(t, err)
		assert.ErrorIs(t, err, lookupErr)
		assert.Equal(t, models.WeatherData{}, result)
	})
}

package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d-melnyk/weather-lookup-api/internal/app"
	"github.com/d-melnyk/weather-lookup-api/internal/config"
	metricsSvc "github.com/d-melnyk/weather-lookup-api/internal/services/metrics"
	"github.com/d-melnyk/weather-lookup-api/pkg/logger"
)

func TestStart_ListenFailureShutsDownCleanly(t *testing.T) {
	tmp := t.TempDir()

	cfg := config.Config{
		OpenWeatherMapAPIKey: "test-key",
		OpenWeatherMapURL:    "http://localhost:0",
		Server: config.Server{
			Host: "127.0.0.1",
			// Out-of-range port makes ListenAndServe fail immediately.
			Port:        "99999",
			ReadTimeout: 1,
		},
		Client:       config.Client{Timeout: 1},
		LogsPath:     tmp + "/app-test.log",
		HTTPLogsPath: tmp + "/app-test-http.log",
	}

	l, err := logger.NewLogger(cfg.LogsPath, "app_test")
	require.NoError(t, err)

	met := metricsSvc.NewMetrics("weather_lookup_app_test")

	application := app.New(cfg, l, met)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = application.Start(ctx)
	require.Error(t, err)
	require.NoError(t, ctx.Err(), "Start must return from the serve failure, not the ctx deadline")
}

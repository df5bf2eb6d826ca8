package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/d-melnyk/weather-lookup-api/internal/app"
	"github.com/d-melnyk/weather-lookup-api/internal/config"
	metricsSvc "github.com/d-melnyk/weather-lookup-api/internal/services/metrics"
	"github.com/d-melnyk/weather-lookup-api/pkg/logger"
)

const serviceName = "weather-lookup-api"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, serviceName)
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	met := metricsSvc.NewMetrics("weather_lookup")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(*cfg, l, met)
	if err := application.Start(ctx); err != nil {
		l.Fatal().Err(err).Msg("application failed to run")
	}
}

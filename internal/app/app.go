package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/d-melnyk/weather-lookup-api/internal/config"
	handlerWeather "github.com/d-melnyk/weather-lookup-api/internal/handlers/weather"
	"github.com/d-melnyk/weather-lookup-api/internal/models"
	"github.com/d-melnyk/weather-lookup-api/internal/services/cache"
	loggerT "github.com/d-melnyk/weather-lookup-api/internal/services/logger"
	metricsSvc "github.com/d-melnyk/weather-lookup-api/internal/services/metrics"
	serviceWeather "github.com/d-melnyk/weather-lookup-api/internal/services/weather"
	"github.com/d-melnyk/weather-lookup-api/internal/services/weather/decorators"
	fLogger "github.com/d-melnyk/weather-lookup-api/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// ServiceContainer holds initialized dependencies for the HTTP server.
type ServiceContainer struct {
	WeatherService *decorators.CachedService

	Router     *gin.Engine
	Srv        *http.Server
	fileLogger *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start initializes services, mounts routes, runs the HTTP server, and waits
// for ctx cancellation before shutting down.
func (a *App) Start(ctx context.Context) error {
	srvContainer := a.init()

	srvContainer.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	srvContainer.Router.Use(a.m.HTTPMiddleware())

	weatherHandler := handlerWeather.NewHandler(srvContainer.WeatherService)
	api := srvContainer.Router.Group("/api")
	{
		api.GET("/weather", weatherHandler.GetWeather)
		api.POST("/weather", weatherHandler.GetWeather)
	}

	errCh := make(chan error, 1)
	go func() {
		a.l.Info().Str("address", a.cfg.ServerAddress()).Msg("starting HTTP server")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.l.Error().Err(err).Msg("HTTP server failed")
		if sErr := a.Shutdown(srvContainer); sErr != nil {
			a.l.Error().Err(sErr).Msg("failed to shutdown application")
		}
		return err
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping weather lookup service")
	}

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown drains the HTTP server and syncs the file logger.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync file logger")
		}
	}(srvContainer.fileLogger)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		return err
	}
	a.l.Info().Msg("HTTP server stopped")
	return nil
}

// init sets up logging, caching, the provider client, and the HTTP server
// without starting anything.
func (a *App) init() ServiceContainer {
	a.l.Info().Msgf("initializing weather lookup service with config: %+v", a.cfg)

	redisClient := newRedisConnection(a.cfg.Redis.Host+":"+a.cfg.Redis.Port, a.cfg.Redis.DbType)

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger")
		fileLogger = zap.NewNop()
	}

	// Outbound provider traffic is logged to file and capped at the
	// configured per-call timeout.
	roundTripper := loggerT.NewRoundTripper(fileLogger)
	httpLogClient := &http.Client{
		Transport: roundTripper,
		Timeout:   time.Duration(a.cfg.Client.Timeout) * time.Second,
	}

	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}
	openWeather := serviceWeather.NewBreakerClient("OpenWeather", breakerCfg,
		serviceWeather.NewClientOpenWeatherMap(
			a.cfg.OpenWeatherMapAPIKey,
			a.cfg.OpenWeatherMapURL,
			httpLogClient,
			a.l,
		),
	)

	rawService := serviceWeather.NewService(a.l, openWeather)

	cacheMetrics := cache.NewMetricsDecorator[models.WeatherData](
		cache.NewRedisClient[models.WeatherData](
			redisClient,
			a.l,
			time.Duration(a.cfg.Redis.LiveTime)*time.Minute,
		),
		metricsSvc.NewPromCollector(),
	)
	weatherService := decorators.NewCachedService(rawService, cacheMetrics, a.l)

	router := gin.New()
	router.Use(gin.Recovery())

	httpServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		WeatherService: weatherService,
		Router:         router,
		Srv:            httpServer,
		fileLogger:     fileLogger,
	}
}

func newRedisConnection(connString string, dbType int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: connString, DB: dbType})
}

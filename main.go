package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fakhrymubarak/weather-lookup/internal/config"
	"github.com/fakhrymubarak/weather-lookup/internal/handler"
	"github.com/fakhrymubarak/weather-lookup/internal/middleware"
	"github.com/fakhrymubarak/weather-lookup/internal/observability"
	"github.com/fakhrymubarak/weather-lookup/internal/repository"
	"github.com/fakhrymubarak/weather-lookup/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newMux wires the weather endpoints onto a fresh ServeMux.
func newMux(svc service.WeatherServiceInterface) *http.ServeMux {
	h := handler.NewWeatherHandler(svc)

	mux := http.NewServeMux()
	mux.Handle("/weather", middleware.RateLimitMiddleware(http.HandlerFunc(h.HandleWeather)))
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func main() {
	cfg, err := config.Load()
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()
	if err != nil {
		logger.Errorw("failed to load config", "error", err)
		os.Exit(1)
	}

	repo := repository.NewWeatherRepository(cfg.APIURL, cfg.APIKey, cfg.Timeout, cfg.MaxRedirects)
	svc := service.NewWeatherService(repo, observability.NewMetrics())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	middleware.StartRateLimiterCleanup(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           newMux(svc),
		ReadHeaderTimeout: config.GetServerTimeoutDuration("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeoutDuration("read_timeout", 15*time.Second),
		WriteTimeout:      config.GetServerTimeoutDuration("write_timeout", 20*time.Second),
		IdleTimeout:       config.GetServerTimeoutDuration("idle_timeout", 60*time.Second),
	}

	go func() {
		logger.Infow("Weather API server running", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetServerTimeoutDuration("shutdown_timeout", 10*time.Second))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("http server shutdown error", "error", err)
	}
	logger.Infow("shutdown complete")
}

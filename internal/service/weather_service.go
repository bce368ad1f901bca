package service

import (
	"context"
	"errors"

	"github.com/fakhrymubarak/weather-lookup/internal/config"
	"github.com/fakhrymubarak/weather-lookup/internal/model"
	"github.com/fakhrymubarak/weather-lookup/internal/observability"
	"github.com/fakhrymubarak/weather-lookup/internal/repository"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ErrWeatherService is returned when the service has no repository to call.
var ErrWeatherService = errors.New("weather service not configured")

// WeatherServiceInterface is what presentation layers call into.
type WeatherServiceInterface interface {
	GetWeather(ctx context.Context, city string) (*model.WeatherResult, error)
}

// WeatherService fronts a WeatherRepository with logging and metrics. It
// never changes the outcome of a lookup.
type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	Metrics     *observability.Metrics
	Logger      *zap.SugaredLogger
	Clock       clockwork.Clock
}

// NewWeatherService creates a service around repo.
func NewWeatherService(repo repository.WeatherRepository, metrics *observability.Metrics) *WeatherService {
	return &WeatherService{
		WeatherRepo: repo,
		Metrics:     metrics,
		Logger:      config.GetLogger(),
		Clock:       clockwork.NewRealClock(),
	}
}

// GetWeather looks up current weather for city.
func (s *WeatherService) GetWeather(ctx context.Context, city string) (*model.WeatherResult, error) {
	if s.WeatherRepo == nil {
		return nil, ErrWeatherService
	}
	if ctx == nil {
		ctx = context.Background()
	}

	clock := s.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	start := clock.Now()

	result, err := s.WeatherRepo.FetchWeather(ctx, model.Query{City: city})
	elapsed := clock.Since(start)

	outcome := observability.OutcomeSuccess
	if err != nil {
		outcome = string(model.KindOf(err))
		if outcome == "" {
			outcome = string(model.KindTransport)
		}
	}

	if s.Metrics != nil {
		s.Metrics.Lookups.WithLabelValues(outcome).Inc()
		s.Metrics.LookupDuration.Observe(elapsed.Seconds())
		if err == nil {
			s.Metrics.Categories.WithLabelValues(string(result.Category)).Inc()
		}
	}

	if s.Logger != nil {
		if err != nil {
			s.Logger.Warnw("weather lookup failed", "city", city, "kind", outcome, "error", err, "duration", elapsed)
		} else {
			s.Logger.Infow("weather lookup succeeded", "city", city, "category", result.Category, "duration", elapsed)
		}
	}

	return result, err
}

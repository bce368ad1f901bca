package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// Config is the validated set of settings the entry points need.
type Config struct {
	APIURL       string        `validate:"required,url"`
	APIKey       string        `validate:"required"`
	Timeout      time.Duration `validate:"gt=0"`
	MaxRedirects int           `validate:"gte=0"`
	ServerPort   string        `validate:"required,numeric"`
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		viper.SetDefault("openweathermap.api_url", "https://api.openweathermap.org/data/2.5/weather")
		viper.SetDefault("server.port", "8080")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Warnw("Error finding project root", "error", err)
			return
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Warnw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Warnw("Error reading test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load assembles and validates the settings used to build a weather client.
func Load() (*Config, error) {
	cfg := &Config{
		APIURL:       GetOpenWeatherApiUrl(),
		APIKey:       GetOpenWeatherMapAPIKey(),
		Timeout:      GetRequestTimeout(),
		MaxRedirects: GetMaxRedirects(),
		ServerPort:   GetServerPort(),
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func GetOpenWeatherApiUrl() string {
	initConfig()
	return viper.GetString("openweathermap.api_url")
}

func GetOpenWeatherMapAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

// GetRequestTimeout bounds a single upstream call. Defaults to 10s.
func GetRequestTimeout() time.Duration {
	return getDuration("openweathermap.timeout", 10*time.Second)
}

// GetMaxRedirects returns how many redirects one lookup may follow. Defaults to 10.
func GetMaxRedirects() int {
	initConfig()
	if !viper.IsSet("openweathermap.max_redirects") {
		return 10
	}
	return viper.GetInt("openweathermap.max_redirects")
}

func GetServerPort() string {
	initConfig()
	serverPort := viper.GetString("server.port")
	if serverPort == "" {
		serverPort = "8080"
	}
	return serverPort
}

// GetServerTimeoutDuration parses server.<key>, falling back to def.
func GetServerTimeoutDuration(key string, def time.Duration) time.Duration {
	return getDuration("server."+key, def)
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

// GetLogger returns the process logger. It uses the production (JSON)
// encoder when log.format is "json" at first use.
func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if viper.GetString("log.format") == "json" {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// GetRateLimiterCleanupTimeout returns the rate limiter cleanup timeout as a time.Duration.
// Defaults to 3m if not set or invalid.
func GetRateLimiterCleanupTimeout() time.Duration {
	return getDuration("rate_limiter.cleanup_timeout", 3*time.Minute)
}

// GetGlobalRateLimiterConfig returns the per-minute rate and burst for the global rate limiter.
func GetGlobalRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.global.rate")
	if rate == 0 {
		rate = 10
	}
	burst = viper.GetInt("rate_limiter.global.burst")
	if burst == 0 {
		burst = 10
	}
	return
}

// GetParamRateLimiterConfig returns the per-minute rate and burst for the per-city rate limiter.
func GetParamRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.param.rate")
	if rate == 0 {
		rate = 2
	}
	burst = viper.GetInt("rate_limiter.param.burst")
	if burst == 0 {
		burst = 2
	}
	return
}

func getDuration(key string, def time.Duration) time.Duration {
	initConfig()
	durStr := viper.GetString(key)
	if durStr == "" {
		return def
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil || dur <= 0 {
		return def
	}
	return dur
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fakhrymubarak/weather-lookup/internal/config"
	"github.com/fakhrymubarak/weather-lookup/internal/model"
	"github.com/fakhrymubarak/weather-lookup/internal/repository"
)

func displayWeather(w io.Writer, city string, r *model.WeatherResult) {
	header := fmt.Sprintf("Weather for %s:", city)
	fmt.Fprintf(w, "%s\n", header)
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(header)))
	fmt.Fprintf(w, "Temperature: %.0f°C / %.0f°F\n", r.TemperatureCelsius, r.TemperatureFahrenheit)
	if icon := r.Category.Icon(); icon != "" {
		fmt.Fprintf(w, "Conditions:  %s %s\n", icon, cases.Title(language.English).String(r.Description))
	} else {
		fmt.Fprintf(w, "Conditions:  %s\n", cases.Title(language.English).String(r.Description))
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, repo repository.WeatherRepository) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: weather <city>")
		fmt.Fprintln(stderr, "Examples: weather London")
		fmt.Fprintln(stderr, "          weather \"New York\"")
		return 2
	}

	city := strings.Join(args, " ")
	result, err := repo.FetchWeather(ctx, model.Query{City: city})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", errorMessage(err))
		return 1
	}

	displayWeather(stdout, strings.TrimSpace(city), result)
	return 0
}

func errorMessage(err error) string {
	var werr *model.WeatherError
	if errors.As(err, &werr) {
		return werr.Message
	}
	return err.Error()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Please set the OpenWeatherMap API key via OPENWEATHERMAP_API_KEY or a .env file")
		os.Exit(1)
	}

	repo := repository.NewWeatherRepository(cfg.APIURL, cfg.APIKey, cfg.Timeout, cfg.MaxRedirects)
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, repo))
}

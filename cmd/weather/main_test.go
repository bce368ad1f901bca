package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/fakhrymubarak/weather-lookup/internal/condition"
	"github.com/fakhrymubarak/weather-lookup/internal/model"
	"github.com/stretchr/testify/assert"
)

type stubRepo struct {
	result *model.WeatherResult
	err    error
	city   string
}

func (s *stubRepo) FetchWeather(_ context.Context, q model.Query) (*model.WeatherResult, error) {
	s.city = q.City
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestRun_Success(t *testing.T) {
	repo := &stubRepo{result: &model.WeatherResult{
		TemperatureCelsius:    27,
		TemperatureFahrenheit: 80.6,
		ConditionCode:         800,
		Description:           "clear sky",
		Category:              condition.Clear,
	}}
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"New", "York"}, &stdout, &stderr, repo)

	assert.Equal(t, 0, code)
	assert.Equal(t, "New York", repo.city)
	assert.Contains(t, stdout.String(), "Weather for New York:")
	assert.Contains(t, stdout.String(), "27°C / 81°F")
	assert.Contains(t, stdout.String(), "☀️ Clear Sky")
	assert.Empty(t, stderr.String())
}

func TestRun_UnknownCategoryHasNoIcon(t *testing.T) {
	repo := &stubRepo{result: &model.WeatherResult{Description: "odd weather", Category: condition.Unknown}}
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 0, run(context.Background(), []string{"Oslo"}, &stdout, &stderr, repo))
	assert.Contains(t, stdout.String(), "Conditions:  Odd Weather\n")
}

func TestRun_Error(t *testing.T) {
	repo := &stubRepo{err: model.NewStatusError(404, "Not found: city not found")}
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"Atlantis"}, &stdout, &stderr, repo)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: Not found: city not found\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr, &stubRepo{}))
	assert.Contains(t, stderr.String(), "Usage: weather <city>")
}

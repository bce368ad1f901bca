package model

import "github.com/fakhrymubarak/weather-lookup/internal/condition"

// Query is the caller's input to a lookup.
type Query struct {
	City string `json:"city"`
}

// RawResponse is the decoded upstream body before validation.
type RawResponse map[string]any

// WeatherResult is the assembled outcome of a successful lookup.
type WeatherResult struct {
	TemperatureCelsius    float64            `json:"temperature_celsius"`
	TemperatureFahrenheit float64            `json:"temperature_fahrenheit"`
	ConditionCode         int                `json:"condition_code"`
	Description           string             `json:"description"`
	Category              condition.Category `json:"category"`
}

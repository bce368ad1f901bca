// Package validator checks the shape of an OpenWeatherMap current-weather
// body before any field is used.
package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/fakhrymubarak/weather-lookup/internal/model"
)

// Payload holds the fields the client needs from a valid body.
type Payload struct {
	TemperatureKelvin float64
	ConditionCode     int
	Description       string
}

// Decode parses body as a single JSON object. Numbers are kept as
// json.Number so Validate can tell integers from floats.
func Decode(body []byte) (model.RawResponse, *model.WeatherError) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw model.RawResponse
	if err := dec.Decode(&raw); err != nil {
		return nil, malformed("decode body: %v", err)
	}
	if raw == nil {
		return nil, malformed("body is not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("trailing data after JSON object")
	}
	return raw, nil
}

// Validate checks raw and extracts its Payload. A non-200 cod yields a
// KindAPIStatus error with an empty message; the caller supplies the text.
func Validate(raw model.RawResponse) (Payload, *model.WeatherError) {
	cod, ok := intField(raw, "cod")
	if !ok {
		return Payload{}, malformed("missing or non-integer field cod")
	}
	if cod != http.StatusOK {
		return Payload{}, model.NewStatusError(cod, "")
	}

	main, ok := raw["main"].(map[string]any)
	if !ok {
		return Payload{}, malformed("missing object field main")
	}
	temp, ok := numberField(main, "temp")
	if !ok {
		return Payload{}, malformed("missing or non-numeric field main.temp")
	}

	entries, ok := raw["weather"].([]any)
	if !ok || len(entries) == 0 {
		return Payload{}, malformed("missing or empty field weather")
	}

	var first Payload
	for i, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			return Payload{}, malformed("weather[%d] is not an object", i)
		}
		id, ok := intField(entry, "id")
		if !ok {
			return Payload{}, malformed("missing or non-integer field weather[%d].id", i)
		}
		desc, ok := entry["description"].(string)
		if !ok {
			return Payload{}, malformed("missing or non-string field weather[%d].description", i)
		}
		if i == 0 {
			first = Payload{TemperatureKelvin: temp, ConditionCode: id, Description: desc}
		}
	}

	return first, nil
}

func malformed(format string, args ...any) *model.WeatherError {
	return model.NewWeatherError(model.KindMalformedResponse, "Malformed response: "+fmt.Sprintf(format, args...))
}

// intField accepts json.Number integers and float64 values with no
// fractional part (bodies built without UseNumber).
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func numberField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

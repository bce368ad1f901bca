package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/fakhrymubarak/weather-lookup/internal/condition"
	"github.com/fakhrymubarak/weather-lookup/internal/model"
	"github.com/fakhrymubarak/weather-lookup/internal/units"
	"github.com/fakhrymubarak/weather-lookup/internal/validator"
)

// ErrTooManyRedirects is returned by the redirect policy once the limit is hit.
var ErrTooManyRedirects = errors.New("too many redirects")

// statusMessages maps upstream statuses to display text.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad request: check your input",
	http.StatusUnauthorized:        "Unauthorized: invalid API key",
	http.StatusForbidden:           "Forbidden: access denied",
	http.StatusNotFound:            "Not found: city not found",
	http.StatusInternalServerError: "Internal server error: try again later",
	http.StatusBadGateway:          "Bad gateway: invalid response from server",
	http.StatusServiceUnavailable:  "Service unavailable: server is down",
	http.StatusGatewayTimeout:      "Gateway timeout: no response from server",
}

// WeatherRepository defines the interface for current weather lookups.
// A non-nil error is always a *model.WeatherError.
type WeatherRepository interface {
	FetchWeather(ctx context.Context, query model.Query) (*model.WeatherResult, error)
}

// weatherRepository implements WeatherRepository against OpenWeatherMap.
type weatherRepository struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherRepository creates a client for apiURL. timeout and maxRedirects
// are applied to a copy of the supplied http.Client (or a fresh one).
func NewWeatherRepository(apiURL, apiKey string, timeout time.Duration, maxRedirects int, httpClient ...*http.Client) WeatherRepository {
	client := &http.Client{}
	if len(httpClient) > 0 && httpClient[0] != nil {
		c := *httpClient[0]
		client = &c
	}
	client.Timeout = timeout
	client.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		if len(via) > maxRedirects {
			return ErrTooManyRedirects
		}
		return nil
	}
	return &weatherRepository{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: client,
	}
}

// FetchWeather performs one lookup for query.City.
func (r *weatherRepository) FetchWeather(ctx context.Context, query model.Query) (*model.WeatherResult, error) {
	city := strings.TrimSpace(query.City)
	if city == "" {
		return nil, model.NewWeatherError(model.KindInvalidInput, "Invalid input: city name is required")
	}

	payload, werr := r.fetchPayload(ctx, city)
	if werr != nil {
		return nil, werr
	}

	return &model.WeatherResult{
		TemperatureCelsius:    units.Celsius(payload.TemperatureKelvin),
		TemperatureFahrenheit: units.Fahrenheit(payload.TemperatureKelvin),
		ConditionCode:         payload.ConditionCode,
		Description:           payload.Description,
		Category:              condition.Classify(payload.ConditionCode),
	}, nil
}

func (r *weatherRepository) fetchPayload(ctx context.Context, city string) (validator.Payload, *model.WeatherError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.buildURL(city), nil)
	if err != nil {
		return validator.Payload{}, model.NewWeatherError(model.KindTransport, "Request error: "+err.Error())
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return validator.Payload{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return validator.Payload{}, statusError(resp.StatusCode)
	}

	// The client timeout also covers the body, so read failures are
	// transport outcomes, not malformed payloads.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return validator.Payload{}, classifyTransportError(err)
	}

	raw, werr := validator.Decode(body)
	if werr != nil {
		return validator.Payload{}, werr
	}

	payload, werr := validator.Validate(raw)
	if werr != nil {
		if werr.Kind == model.KindAPIStatus {
			return validator.Payload{}, statusError(werr.Status)
		}
		return validator.Payload{}, werr
	}
	return payload, nil
}

func (r *weatherRepository) buildURL(city string) string {
	params := url.Values{
		"q":     {city},
		"appid": {r.apiKey},
	}
	sep := "?"
	if strings.Contains(r.apiURL, "?") {
		sep = "&"
	}
	return r.apiURL + sep + params.Encode()
}

func statusError(status int) *model.WeatherError {
	msg, ok := statusMessages[status]
	if !ok {
		msg = fmt.Sprintf("HTTP error occurred: status %d", status)
	}
	return model.NewStatusError(status, msg)
}

// classifyTransportError maps an http.Client error to a WeatherError kind.
// Redirects are checked first because the policy error is wrapped the same
// way as dial errors.
func classifyTransportError(err error) *model.WeatherError {
	if errors.Is(err, ErrTooManyRedirects) {
		return model.NewWeatherError(model.KindTooManyRedirects, "Too many redirects: check the URL")
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return model.NewWeatherError(model.KindTimeout, "Timeout error: the request timed out")
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || (errors.As(err, &opErr) && opErr.Op == "dial") ||
		errors.Is(err, syscall.ECONNRESET) {
		return model.NewWeatherError(model.KindConnection, "Connection error: check your internet connection")
	}

	return model.NewWeatherError(model.KindTransport, "Request error: "+err.Error())
}

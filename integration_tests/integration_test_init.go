package integrationtest

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/fakhrymubarak/weather-lookup/internal/handler"
	"github.com/fakhrymubarak/weather-lookup/internal/middleware"
	"github.com/fakhrymubarak/weather-lookup/internal/observability"
	"github.com/fakhrymubarak/weather-lookup/internal/repository"
	"github.com/fakhrymubarak/weather-lookup/internal/service"
)

const testAPIKey = "test_api_key"

// MockResponse is what the fake OpenWeatherMap server answers for a city.
type MockResponse struct {
	Code  int
	Body  string
	Delay time.Duration
}

// mockOWMApi serves canned responses keyed by the q parameter and counts hits.
func mockOWMApi(responses map[string]MockResponse, hits *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("appid") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
			return
		}
		resp, ok := responses[r.URL.Query().Get("q")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
			return
		}
		time.Sleep(resp.Delay)
		w.WriteHeader(resp.Code)
		_, _ = w.Write([]byte(resp.Body))
	}))
}

// setupIntegrationTestServer wires repository -> service -> handler the same
// way main does, against apiURL.
func setupIntegrationTestServer(apiURL, apiKey string, timeout time.Duration) *httptest.Server {
	weatherRepo := repository.NewWeatherRepository(apiURL, apiKey, timeout, 3)
	weatherService := service.NewWeatherService(weatherRepo, observability.NewMetricsForTesting())

	mux := http.NewServeMux()
	mux.Handle("/weather", middleware.RateLimitMiddleware(
		http.HandlerFunc(handler.NewWeatherHandler(weatherService).HandleWeather)))

	return httptest.NewServer(mux)
}

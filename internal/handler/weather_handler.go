package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fakhrymubarak/weather-lookup/internal/config"
	"github.com/fakhrymubarak/weather-lookup/internal/model"
	"github.com/fakhrymubarak/weather-lookup/internal/service"
)

type WeatherHandler struct {
	WeatherService service.WeatherServiceInterface
}

func NewWeatherHandler(svc service.WeatherServiceInterface) *WeatherHandler {
	return &WeatherHandler{
		WeatherService: svc,
	}
}

func (h *WeatherHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

func (h *WeatherHandler) writeError(w http.ResponseWriter, statusCode int, errMsg, message string) {
	h.writeJSONResponse(w, statusCode, model.Response{
		Error:   &errMsg,
		Message: message,
	})
}

// HandleWeather serves GET /weather?city=<name>.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "Error")
		return
	}

	city := r.URL.Query().Get("city")
	weather, err := h.WeatherService.GetWeather(r.Context(), city)
	if err != nil {
		var werr *model.WeatherError
		if !errors.As(err, &werr) {
			h.writeError(w, http.StatusInternalServerError, "Failed to fetch weather data", "Error")
			return
		}
		h.writeError(w, statusFor(werr), werr.Message, string(werr.Kind))
		return
	}

	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    weather,
		Message: "Success",
	})
}

// HandleHealth serves GET /healthz.
func (h *WeatherHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// statusFor picks the status this endpoint answers with for a failed lookup.
func statusFor(werr *model.WeatherError) int {
	switch werr.Kind {
	case model.KindInvalidInput:
		return http.StatusBadRequest
	case model.KindTimeout:
		return http.StatusGatewayTimeout
	case model.KindAPIStatus:
		if werr.Status == http.StatusNotFound || werr.Status == http.StatusBadRequest {
			return werr.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

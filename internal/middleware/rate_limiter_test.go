package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Global burst is 10 and per-city burst is 2 (config.yaml); refill is too
// slow to matter inside a unit test.

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func serve(mw http.Handler, ip, city string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/weather?city="+city, nil)
	req.RemoteAddr = ip
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestRateLimitMiddleware_GlobalBurst(t *testing.T) {
	ResetVisitors()
	SetParamKey("city")
	mw := RateLimitMiddleware(okHandler())
	ip := "1.2.3.4:1234"

	for i := 0; i < 10; i++ {
		w := serve(mw, ip, fmt.Sprintf("city%d", i))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := serve(mw, ip, "another")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	resp := decodeError(t, w)
	assert.Contains(t, resp["error"], "Rate limit exceeded")
	assert.Equal(t, "Too Many Requests (global limit)", resp["message"])
}

func TestRateLimitMiddleware_PerCityBurst(t *testing.T) {
	ResetVisitors()
	SetParamKey("city")
	mw := RateLimitMiddleware(okHandler())
	ip := "2.3.4.5:2345"

	for i := 0; i < 2; i++ {
		w := serve(mw, ip, "London")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	// Case and surrounding whitespace do not open a new bucket.
	w := serve(mw, ip, "LONDON")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Too Many Requests (per-city limit)", resp["message"])

	// A different client is unaffected.
	w = serve(mw, "9.9.9.9:1", "London")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/weather", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", getIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getIP(req))

	req.Header.Del("X-Forwarded-For")
	req.RemoteAddr = "bad-addr"
	assert.Equal(t, "bad-addr", getIP(req))
}

func TestCleanupVisitors(t *testing.T) {
	ResetVisitors()
	getGlobalLimiter("1.1.1.1")
	getParamLimiter("1.1.1.1", "london")

	muGlobal.Lock()
	globalVisitors["1.1.1.1"].lastSeen = time.Now().Add(-time.Hour)
	muGlobal.Unlock()

	cleanupVisitors(3 * time.Minute)

	muGlobal.Lock()
	assert.NotContains(t, globalVisitors, "1.1.1.1")
	muGlobal.Unlock()
	muParam.Lock()
	assert.Contains(t, paramVisitors, "1.1.1.1")
	muParam.Unlock()
}

func TestStartRateLimiterCleanup_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	StartRateLimiterCleanup(ctx)
	cancel()
}

package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeatherError_Error(t *testing.T) {
	assert.Equal(t, "timeout: Timeout error: the request timed out",
		NewWeatherError(KindTimeout, "Timeout error: the request timed out").Error())
	assert.Equal(t, "api_status(404): Not found: city not found",
		NewStatusError(404, "Not found: city not found").Error())
}

func TestKindOf(t *testing.T) {
	werr := NewWeatherError(KindConnection, "Connection error")
	wrapped := fmt.Errorf("lookup: %w", werr)

	assert.Equal(t, KindConnection, KindOf(werr))
	assert.Equal(t, KindConnection, KindOf(wrapped))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(NewStatusError(500, ""), KindAPIStatus))
	assert.False(t, IsKind(NewStatusError(500, ""), KindTransport))
	assert.False(t, IsKind(nil, ""))
}

func TestNewStatusError(t *testing.T) {
	werr := NewStatusError(503, "Service unavailable: server is down")
	assert.Equal(t, KindAPIStatus, werr.Kind)
	assert.Equal(t, 503, werr.Status)

	assert.Zero(t, NewWeatherError(KindTransport, "x").Status)
}

package model

import (
	"errors"
	"fmt"
)

// ErrorKind is a stable label for the stage a lookup failed at.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindConnection        ErrorKind = "connection"
	KindTimeout           ErrorKind = "timeout"
	KindTooManyRedirects  ErrorKind = "too_many_redirects"
	KindTransport         ErrorKind = "transport"
	KindAPIStatus         ErrorKind = "api_status"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// WeatherError is returned in place of a WeatherResult. Status is only set
// for KindAPIStatus.
type WeatherError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *WeatherError) Error() string {
	if e.Kind == KindAPIStatus {
		return fmt.Sprintf("%s(%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewWeatherError builds a WeatherError of the given kind.
func NewWeatherError(kind ErrorKind, message string) *WeatherError {
	return &WeatherError{Kind: kind, Message: message}
}

// NewStatusError builds a KindAPIStatus error carrying the upstream status.
func NewStatusError(status int, message string) *WeatherError {
	return &WeatherError{Kind: KindAPIStatus, Status: status, Message: message}
}

// KindOf returns the kind of a WeatherError anywhere in err's chain, or ""
// if there is none.
func KindOf(err error) ErrorKind {
	var we *WeatherError
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}

// IsKind reports whether err is a WeatherError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

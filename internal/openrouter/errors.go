package openrouter

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoAPIKey is returned when a request is attempted without a credential.
var ErrNoAPIKey = errors.New("no OpenRouter API key configured")

// Cause is the human-level reason behind a failed API call.
type Cause int

const (
	CauseUnknown Cause = iota
	CauseBadRequest
	CauseInvalidCredentials
	CauseInsufficientCredits
	CauseFlaggedInput
	CauseTimeout
	CauseRateLimited
	CauseModelDown
	CauseNoProvider
)

func (c Cause) String() string {
	switch c {
	case CauseBadRequest:
		return "bad request (invalid or missing parameters)"
	case CauseInvalidCredentials:
		return "invalid credentials (expired or disabled API key)"
	case CauseInsufficientCredits:
		return "insufficient credits on the account"
	case CauseFlaggedInput:
		return "input was flagged by moderation"
	case CauseTimeout:
		return "request timed out"
	case CauseRateLimited:
		return "rate limited"
	case CauseModelDown:
		return "chosen model is down or returned an invalid response"
	case CauseNoProvider:
		return "no available provider for the chosen model"
	}
	return "unknown error"
}

// CauseOf maps an HTTP status code to a Cause.
func CauseOf(status int) Cause {
	switch status {
	case http.StatusBadRequest:
		return CauseBadRequest
	case http.StatusUnauthorized:
		return CauseInvalidCredentials
	case http.StatusPaymentRequired:
		return CauseInsufficientCredits
	case http.StatusForbidden:
		return CauseFlaggedInput
	case http.StatusRequestTimeout:
		return CauseTimeout
	case http.StatusTooManyRequests:
		return CauseRateLimited
	case http.StatusBadGateway:
		return CauseModelDown
	case http.StatusServiceUnavailable:
		return CauseNoProvider
	}
	return CauseUnknown
}

// StatusError is a non-200 response from the API.
type StatusError struct {
	Status  int
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openrouter: HTTP %d", e.Status)
	}
	return fmt.Sprintf("openrouter: HTTP %d: %s", e.Status, e.Message)
}

// Cause maps the response status to a Cause.
func (e *StatusError) Cause() Cause {
	return CauseOf(e.Status)
}

// Describe renders err for the user. API status errors are reported by
// cause; anything else falls back to the error text.
func Describe(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		if se.Message == "" {
			return fmt.Sprintf("OpenRouter: %s (HTTP %d)", se.Cause(), se.Status)
		}
		return fmt.Sprintf("OpenRouter: %s (HTTP %d): %s", se.Cause(), se.Status, se.Message)
	}
	return err.Error()
}

// Package google provides thin clients for the Google Sheets and Drive APIs
// used by the gateway. Each client wraps the generated API service, adds
// structured logging, and classifies API failures into sentinel errors.
// No call is retried: every failure is terminal for the request that
// triggered it.
package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, google.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("google: bad request")
	ErrUnauthorized = errors.New("google: unauthorized")
	ErrForbidden    = errors.New("google: forbidden")
	ErrNotFound     = errors.New("google: not found")
	ErrThrottled    = errors.New("google: throttled")
	ErrServerError  = errors.New("google: server error")
)

// APIError wraps a sentinel error with the HTTP status code and the API
// error message.
type APIError struct {
	StatusCode int
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for codes without a dedicated sentinel.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}

// wrapError converts errors returned by the generated API services. A
// *googleapi.Error becomes an *APIError; anything else (network, context,
// token refresh) is wrapped unchanged. op names the failed operation.
func wrapError(op string, err error) error {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return fmt.Errorf("google: %s: %w", op, err)
	}

	msg := gErr.Message
	if msg == "" {
		msg = gErr.Body
	}

	if msg == "" {
		msg = http.StatusText(gErr.Code)
	}

	return fmt.Errorf("google: %s: %w", op, &APIError{
		StatusCode: gErr.Code,
		Message:    msg,
		Err:        classifyStatus(gErr.Code),
	})
}

package anthropic

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("anthropic api key not configured")

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Type       string
	Message    string

	err error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("anthropic: status %d", e.StatusCode)
	}
	return fmt.Sprintf("anthropic: status %d: %s: %s", e.StatusCode, e.Type, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

package optimize

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidRequest     = errors.New("prompt is required")
	ErrOptimizationFailed = errors.New("failed to optimize prompt")
)

// Messages written to clients. Causes are logged, never returned.
const (
	msgInvalidRequest = "Prompt is required"
	msgFailed         = "Failed to optimize prompt"
)

// MapHTTPStatus maps optimization errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func publicMessage(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return msgInvalidRequest
	}
	return msgFailed
}

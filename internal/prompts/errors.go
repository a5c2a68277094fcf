package prompts

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("prompt not found")
	ErrDuplicate  = errors.New("prompt already exists")
	ErrValidation = errors.New("invalid prompt")
)

// MapHTTPStatus maps prompt errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

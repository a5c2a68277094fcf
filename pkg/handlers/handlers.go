// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes data as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondErrorMessage logs err but writes message instead, for failures
// whose cause must not reach the client.
func RespondErrorMessage(w http.ResponseWriter, logger *slog.Logger, status int, err error, message string) {
	logFailure(logger, status, err)
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondError logs err and writes it as an ErrorResponse with the given status code.
// Server errors are logged at error level; client errors at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logFailure(logger, status, err)
	RespondJSON(w, status, ErrorResponse{Error: err.Error()})
}

func logFailure(logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
		return
	}
	logger.Warn("request rejected", "status", status, "error", err)
}

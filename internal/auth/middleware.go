package auth

import (
	"log/slog"
	"net/http"

	"github.com/chillyai/enhancer/pkg/handlers"
)

// Require rejects requests without a valid session or ID token with 401
// and places the authenticated user on the request context otherwise.
func Require(sys System, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sys.Authenticate(r)
			if err != nil {
				respondAuthFailure(w, logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// respondAuthFailure writes 401 with a generic message for rejected
// credentials so the reason stays in the logs.
func respondAuthFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := MapHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		handlers.RespondError(w, logger, status, err)
		return
	}
	handlers.RespondErrorMessage(w, logger, http.StatusUnauthorized, err, ErrUnauthorized.Error())
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/chillyai/enhancer/internal/auth"
	"github.com/chillyai/enhancer/pkg/routes"
)

// registerRoutes mounts the public auth routes and the signed-in routes for
// prompts and optimization.
func registerRoutes(mux *http.ServeMux, domain *Domain, logger *slog.Logger) {
	requireUser := auth.Require(domain.Auth, logger)

	routes.Register(
		mux,
		domain.Auth.Handler().Routes(),
		domain.Prompts.Handler().Routes().Wrap(requireUser),
		domain.Optimize.Handler().Routes().Wrap(requireUser),
	)
}

// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/chillyai/enhancer/internal/config"
	"github.com/chillyai/enhancer/internal/infrastructure"
	"github.com/chillyai/enhancer/pkg/middleware"
	"github.com/chillyai/enhancer/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime.Logger)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.MaxBytes(cfg.API.MaxBodySizeBytes()))

	return m, nil
}

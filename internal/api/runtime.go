package api

import (
	"github.com/chillyai/enhancer/internal/auth"
	"github.com/chillyai/enhancer/internal/config"
	"github.com/chillyai/enhancer/internal/infrastructure"
	"github.com/chillyai/enhancer/pkg/anthropic"
	"github.com/chillyai/enhancer/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	ModelCfg   anthropic.Config
	Auth       auth.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Model:     infra.Model,
		},
		Pagination: cfg.API.Pagination,
		ModelCfg:   cfg.Model,
		Auth:       cfg.Auth,
	}
}

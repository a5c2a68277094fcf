package api

import (
	"github.com/chillyai/enhancer/internal/auth"
	"github.com/chillyai/enhancer/internal/optimize"
	"github.com/chillyai/enhancer/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Auth     auth.System
	Prompts  prompts.System
	Optimize optimize.System
}

// NewDomain creates all domain systems from the API runtime. When an OIDC
// issuer is configured, provider discovery is registered as a startup hook.
func NewDomain(runtime *Runtime) *Domain {
	var verifier auth.Verifier
	if runtime.Auth.OIDC.Enabled() {
		verifier = auth.Discover(runtime.Lifecycle, runtime.Auth.OIDC, runtime.Logger)
	}

	authSystem := auth.New(
		runtime.Database.Connection(),
		runtime.Auth,
		verifier,
		runtime.Logger,
	)

	authSystem.OnChange(func(e auth.Event) {
		runtime.Logger.Info("session changed", "event", e.Type, "user_id", e.UserID)
	})

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	optimizeSystem := optimize.New(
		runtime.Model,
		&runtime.ModelCfg,
		runtime.Logger,
	)

	return &Domain{
		Auth:     authSystem,
		Prompts:  promptsSystem,
		Optimize: optimizeSystem,
	}
}

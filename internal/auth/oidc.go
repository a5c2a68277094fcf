package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/chillyai/enhancer/pkg/lifecycle"
)

var errProviderNotReady = errors.New("identity provider not ready")

// Identity is the verified subject of an ID token.
type Identity struct {
	Subject string
	Email   string
}

// Verifier validates raw ID tokens.
type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) (Identity, error)
}

type idTokenVerifier struct {
	v atomic.Pointer[oidc.IDTokenVerifier]
}

// NewVerifier wraps an already configured go-oidc verifier.
func NewVerifier(v *oidc.IDTokenVerifier) Verifier {
	iv := &idTokenVerifier{}
	iv.v.Store(v)
	return iv
}

// Discover returns a Verifier for cfg.Issuer. Provider discovery runs as a
// lifecycle startup hook, and tokens are rejected until it succeeds.
func Discover(lc *lifecycle.Coordinator, cfg OIDCConfig, logger *slog.Logger) Verifier {
	iv := &idTokenVerifier{}
	logger = logger.With("system", "oidc", "issuer", cfg.Issuer)

	lc.OnStartup(func() {
		provider, err := oidc.NewProvider(lc.Context(), cfg.Issuer)
		if err != nil {
			logger.Error("oidc discovery failed", "error", err)
			return
		}
		iv.v.Store(provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}))
		logger.Info("oidc provider discovered")
	})

	return iv
}

func (iv *idTokenVerifier) Verify(ctx context.Context, raw string) (Identity, error) {
	v := iv.v.Load()
	if v == nil {
		return Identity{}, errProviderNotReady
	}

	token, err := v.Verify(ctx, raw)
	if err != nil {
		return Identity{}, fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified *bool  `json:"email_verified"`
	}
	if err := token.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("decode id token claims: %w", err)
	}

	id := Identity{Subject: token.Subject}
	if claims.EmailVerified == nil || *claims.EmailVerified {
		id.Email = strings.ToLower(claims.Email)
	}
	return id, nil
}

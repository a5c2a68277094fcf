package auth

import (
	"context"
	"net/http"
)

// System defines account and session operations.
type System interface {
	Handler() *Handler

	SignUp(ctx context.Context, creds Credentials) (*User, error)
	SignIn(ctx context.Context, creds Credentials) (*Session, error)
	SignOut(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (*User, error)
	Verify(ctx context.Context, rawIDToken string) (*User, error)

	// Authenticate resolves the user behind a request's bearer token or
	// session cookie.
	Authenticate(r *http.Request) (*User, error)

	// OnChange registers fn for session events and returns a func that
	// unregisters it. fn runs synchronously after the change is committed.
	OnChange(fn func(Event)) (unsubscribe func())
}

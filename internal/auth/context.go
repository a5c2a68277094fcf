package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFrom returns the authenticated user placed on ctx by Require.
func UserFrom(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(contextKey{}).(*User)
	return user, ok && user != nil
}

// UserID returns the authenticated user's ID.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	user, ok := UserFrom(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}

// Package auth owns user accounts and sessions. Requests authenticate with
// an opaque session token, carried in a cookie or bearer header, or with an
// OIDC ID token when an issuer is configured.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is an account. Password hashes never leave the package.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials sign a user up or in.
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Session is an authenticated sign-in. Token is only populated when the
// session is created; storage keeps its SHA-256 digest.
type Session struct {
	Token     string    `json:"token,omitempty"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

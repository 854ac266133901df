// Package auth signs console users in and issues session tokens.
//
// Sign-in is delegated to an Authenticator strategy. Firebase talks to the
// real identity provider; Demo accepts one fixed credential pair from
// configuration and cannot be built for production.
package auth

import (
	"context"
	"errors"

	"boothbuzz-admin/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoProfile          = errors.New("no profile exists for this account")
	ErrInactive           = errors.New("account is inactive")
	ErrDemoInProduction   = errors.New("demo authentication is not available in production")
	ErrInvalidToken       = errors.New("invalid session token")
)

// Authenticator is a sign-in strategy.
type Authenticator interface {
	Name() string
	// SignIn checks the credentials and returns the user's profile.
	SignIn(ctx context.Context, creds model.Credentials) (*model.User, error)
	// CreateIdentity registers a new login and returns its identity id.
	CreateIdentity(ctx context.Context, email, password, displayName string) (string, error)
	// DeleteIdentity removes a login created by CreateIdentity.
	DeleteIdentity(ctx context.Context, uid string) error
}

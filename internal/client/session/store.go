// Package session persists the client-held proof of authentication: the
// bearer token and the cached user profile. It is the sole source of truth
// for "am I logged in".
package session

import (
	"context"

	"github.com/forensicvideo/console/internal/client/models"
)

// Storage keys. Two independent entries; the pair is not written atomically,
// so a token without a profile can persist after an interrupted login. The
// auth controller treats such a half-session as unauthenticated.
const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
)

// Store holds the current session. Reads must never fail: corrupted or
// missing backing data degrades to the zero value ("" / nil), not an error.
//
// The store is shared by the API client, the auth controller, and tests.
// Writers follow last-writer-wins; Clear is idempotent so that a forced
// teardown racing a user-initiated logout stays harmless.
type Store interface {
	// Token returns the bearer token, or "" when no session exists.
	Token(ctx context.Context) string

	// User returns the cached profile, or nil when absent or unreadable.
	User(ctx context.Context) *models.UserProfile

	SetToken(ctx context.Context, token string) error
	SetUser(ctx context.Context, user *models.UserProfile) error

	// Clear removes both entries. Clearing an already-empty store is a no-op.
	Clear(ctx context.Context) error
}

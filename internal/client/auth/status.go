// Package auth implements the session state machine: it composes the session
// store and the API gateway into login/register/logout operations and a
// single observable authentication status.
package auth

import "github.com/forensicvideo/console/internal/client/models"

// Phase is the authentication phase.
type Phase int

const (
	// PhaseLoading means the persisted session has not been resolved yet.
	// Guards must hold their fire while here.
	PhaseLoading Phase = iota
	PhaseUnauthenticated
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Status is a tagged union over the three phases. The user profile is only
// carried by the authenticated variant, so "loading with a stale user" and
// similar illegal combinations cannot be constructed.
type Status struct {
	phase Phase
	user  *models.UserProfile
}

func Loading() Status         { return Status{phase: PhaseLoading} }
func Unauthenticated() Status { return Status{phase: PhaseUnauthenticated} }

func Authenticated(user *models.UserProfile) Status {
	if user == nil {
		return Unauthenticated()
	}
	return Status{phase: PhaseAuthenticated, user: user}
}

func (s Status) Phase() Phase { return s.phase }

// User returns the authenticated profile, or nil for the other phases.
func (s Status) User() *models.UserProfile { return s.user }

// Package guard gates protected screens on the authentication status and an
// optional role allow-list.
package guard

import (
	"github.com/forensicvideo/console/internal/client/auth"
	"github.com/forensicvideo/console/internal/client/models"
)

type Action int

const (
	// ActionRender: show the protected content.
	ActionRender Action = iota
	// ActionPlaceholder: session still resolving; show a spinner, do not
	// redirect yet.
	ActionPlaceholder
	// ActionRedirect: bounce the viewer to Decision.Target.
	ActionRedirect
)

type Decision struct {
	Action Action
	Target auth.Route
}

// Decide maps an authentication status to a guard decision. Pure function:
// callers re-run it whenever the status changes, not only on first render.
//
// An unauthenticated viewer goes to login; an authenticated viewer whose
// role is missing from a non-empty allow-list goes to the dashboard (which
// every role may see).
func Decide(status auth.Status, allowedRoles []models.UserRole) Decision {
	switch status.Phase() {
	case auth.PhaseLoading:
		return Decision{Action: ActionPlaceholder}
	case auth.PhaseUnauthenticated:
		return Decision{Action: ActionRedirect, Target: auth.RouteLogin}
	}

	if len(allowedRoles) > 0 && !roleAllowed(status.User().Role, allowedRoles) {
		return Decision{Action: ActionRedirect, Target: auth.RouteDashboard}
	}
	return Decision{Action: ActionRender}
}

func roleAllowed(role models.UserRole, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

package auth

import (
	"context"
	"sync"

	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/session"
	"github.com/forensicvideo/console/internal/logging"
)

// Route names the screens the controller can navigate to.
type Route string

const (
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
)

// Navigator switches the visible screen. Injected so the controller stays
// free of presentation concerns; tests record the calls.
type Navigator interface {
	NavigateTo(route Route)
}

// gateway is the slice of the API surface the controller needs.
type gateway interface {
	Login(ctx context.Context, email, password string) (*models.AuthTokens, error)
	Register(ctx context.Context, data models.RegisterRequest) (*models.UserProfile, error)
	Me(ctx context.Context) (*models.UserProfile, error)
}

// Controller owns the authentication status. All transitions happen here;
// observers (guards, screens) subscribe and re-evaluate on every change.
type Controller struct {
	gw    gateway
	store session.Store
	nav   Navigator
	log   logging.Logger

	mu     sync.Mutex
	status Status
	subs   []func(Status)
}

func NewController(gw gateway, store session.Store, nav Navigator, log logging.Logger) *Controller {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Controller{gw: gw, store: store, nav: nav, log: log, status: Loading()}
}

// Status returns the current authentication status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Subscribe registers fn to run synchronously, in registration order, after
// every status change.
func (c *Controller) Subscribe(fn func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	subs := make([]func(Status), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Resolve settles Loading into Unauthenticated or Authenticated by reading
// the persisted session once. A token without a profile (an interrupted
// login) resolves to Unauthenticated; the stale token is left in place and
// the first 401 will sweep it away.
func (c *Controller) Resolve(ctx context.Context) Status {
	token := c.store.Token(ctx)
	user := c.store.User(ctx)

	var next Status
	if token != "" && user != nil {
		next = Authenticated(user)
	} else {
		next = Unauthenticated()
	}
	c.setStatus(next)
	c.log.Info(ctx, "session resolved", "phase", next.Phase().String())
	return next
}

// Login authenticates, caches the token and profile, and navigates to the
// dashboard. On any failure the status stays Unauthenticated and the error
// is returned for inline display next to the form.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	tokens, err := c.gw.Login(ctx, email, password)
	if err != nil {
		c.setStatus(Unauthenticated())
		return err
	}
	if err := c.store.SetToken(ctx, tokens.AccessToken); err != nil {
		c.setStatus(Unauthenticated())
		return err
	}

	user, err := c.gw.Me(ctx)
	if err != nil {
		// Half-established session; drop the token rather than persist it.
		_ = c.store.Clear(ctx)
		c.setStatus(Unauthenticated())
		return err
	}
	if err := c.store.SetUser(ctx, user); err != nil {
		_ = c.store.Clear(ctx)
		c.setStatus(Unauthenticated())
		return err
	}

	c.log.Info(ctx, "login succeeded", "email", user.Email, "role", string(user.Role))
	c.setStatus(Authenticated(user))
	c.nav.NavigateTo(RouteDashboard)
	return nil
}

// Register creates the account server-side and navigates to the login
// screen. Registration deliberately does not establish a session.
func (c *Controller) Register(ctx context.Context, data models.RegisterRequest) error {
	if _, err := c.gw.Register(ctx, data); err != nil {
		return err
	}
	c.nav.NavigateTo(RouteLogin)
	return nil
}

// Logout clears the session and navigates to login. Safe to call in any
// phase; clearing an empty store is a no-op.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.store.Clear(ctx)
	c.setStatus(Unauthenticated())
	c.nav.NavigateTo(RouteLogin)
	return err
}

// ForceLogout is the gateway's 401 hook. The store has already been cleared
// by the client's teardown; this just transitions the status and bounces the
// user to the login screen.
func (c *Controller) ForceLogout() {
	c.setStatus(Unauthenticated())
	c.nav.NavigateTo(RouteLogin)
}

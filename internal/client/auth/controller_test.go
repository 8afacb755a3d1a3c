package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	loginFn    func(ctx context.Context, email, password string) (*models.AuthTokens, error)
	registerFn func(ctx context.Context, data models.RegisterRequest) (*models.UserProfile, error)
	meFn       func(ctx context.Context) (*models.UserProfile, error)
	meCalls    int
}

func (g *fakeGateway) Login(ctx context.Context, email, password string) (*models.AuthTokens, error) {
	return g.loginFn(ctx, email, password)
}

func (g *fakeGateway) Register(ctx context.Context, data models.RegisterRequest) (*models.UserProfile, error) {
	return g.registerFn(ctx, data)
}

func (g *fakeGateway) Me(ctx context.Context) (*models.UserProfile, error) {
	g.meCalls++
	return g.meFn(ctx)
}

type recordingNavigator struct {
	routes []Route
}

func (n *recordingNavigator) NavigateTo(route Route) {
	n.routes = append(n.routes, route)
}

func adminProfile() *models.UserProfile {
	return &models.UserProfile{
		ID:       uuid.New(),
		Email:    "admin@forensicvideo.com",
		FullName: "Site Admin",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
}

func TestController_LoginStoresSessionAndNavigates(t *testing.T) {
	ctx := context.Background()
	profile := adminProfile()
	gw := &fakeGateway{
		loginFn: func(ctx context.Context, email, password string) (*models.AuthTokens, error) {
			require.Equal(t, "admin@forensicvideo.com", email)
			require.Equal(t, "admin123", password)
			return &models.AuthTokens{AccessToken: "jwt-abc", TokenType: "bearer"}, nil
		},
		meFn: func(ctx context.Context) (*models.UserProfile, error) { return profile, nil },
	}
	store := session.NewMemoryStore()
	nav := &recordingNavigator{}
	ctrl := NewController(gw, store, nav, nil)

	err := ctrl.Login(ctx, "admin@forensicvideo.com", "admin123")
	require.NoError(t, err)

	assert.Equal(t, "jwt-abc", store.Token(ctx))
	require.NotNil(t, store.User(ctx))
	assert.Equal(t, models.RoleAdmin, store.User(ctx).Role)
	assert.Equal(t, 1, gw.meCalls)

	status := ctrl.Status()
	assert.Equal(t, PhaseAuthenticated, status.Phase())
	assert.Equal(t, profile.Email, status.User().Email)
	assert.Equal(t, []Route{RouteDashboard}, nav.routes)
}

func TestController_LoginRejectionLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("incorrect email or password")
	gw := &fakeGateway{
		loginFn: func(ctx context.Context, email, password string) (*models.AuthTokens, error) {
			return nil, boom
		},
	}
	store := session.NewMemoryStore()
	nav := &recordingNavigator{}
	ctrl := NewController(gw, store, nav, nil)

	err := ctrl.Login(ctx, "admin@forensicvideo.com", "wrong")
	assert.ErrorIs(t, err, boom)

	assert.Empty(t, store.Token(ctx))
	assert.Equal(t, PhaseUnauthenticated, ctrl.Status().Phase())
	assert.Empty(t, nav.routes, "a failed login must not navigate")
}

func TestController_LoginProfileFetchFailureClearsStore(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("profile unavailable")
	gw := &fakeGateway{
		loginFn: func(ctx context.Context, email, password string) (*models.AuthTokens, error) {
			return &models.AuthTokens{AccessToken: "jwt-abc"}, nil
		},
		meFn: func(ctx context.Context) (*models.UserProfile, error) { return nil, boom },
	}
	store := session.NewMemoryStore()
	nav := &recordingNavigator{}
	ctrl := NewController(gw, store, nav, nil)

	err := ctrl.Login(ctx, "admin@forensicvideo.com", "admin123")
	assert.ErrorIs(t, err, boom)

	// The half-established token must not survive.
	assert.Empty(t, store.Token(ctx))
	assert.Nil(t, store.User(ctx))
	assert.Equal(t, PhaseUnauthenticated, ctrl.Status().Phase())
	assert.Empty(t, nav.routes)
}

func TestController_RegisterNavigatesToLoginWithoutSession(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		registerFn: func(ctx context.Context, data models.RegisterRequest) (*models.UserProfile, error) {
			assert.Equal(t, "new@forensicvideo.com", data.Email)
			return &models.UserProfile{ID: uuid.New(), Email: data.Email, Role: models.RoleClient}, nil
		},
	}
	store := session.NewMemoryStore()
	nav := &recordingNavigator{}
	ctrl := NewController(gw, store, nav, nil)

	err := ctrl.Register(ctx, models.RegisterRequest{
		Email:    "new@forensicvideo.com",
		Password: "s3cret",
		FullName: "New User",
	})
	require.NoError(t, err)

	assert.Empty(t, store.Token(ctx), "registration must not establish a session")
	assert.Equal(t, []Route{RouteLogin}, nav.routes)
}

func TestController_RegisterFailureDoesNotNavigate(t *testing.T) {
	gw := &fakeGateway{
		registerFn: func(ctx context.Context, data models.RegisterRequest) (*models.UserProfile, error) {
			return nil, errors.New("email already registered")
		},
	}
	nav := &recordingNavigator{}
	ctrl := NewController(gw, session.NewMemoryStore(), nav, nil)

	err := ctrl.Register(context.Background(), models.RegisterRequest{Email: "dup@forensicvideo.com"})
	assert.Error(t, err)
	assert.Empty(t, nav.routes)
}

func TestController_LogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.SetToken(ctx, "jwt-abc"))
	require.NoError(t, store.SetUser(ctx, adminProfile()))

	nav := &recordingNavigator{}
	ctrl := NewController(&fakeGateway{}, store, nav, nil)

	require.NoError(t, ctrl.Logout(ctx))

	assert.Empty(t, store.Token(ctx))
	assert.Nil(t, store.User(ctx))
	assert.Equal(t, PhaseUnauthenticated, ctrl.Status().Phase())
	assert.Equal(t, []Route{RouteLogin}, nav.routes)
}

func TestController_ForceLogoutBouncesToLogin(t *testing.T) {
	nav := &recordingNavigator{}
	ctrl := NewController(&fakeGateway{}, session.NewMemoryStore(), nav, nil)

	ctrl.ForceLogout()

	assert.Equal(t, PhaseUnauthenticated, ctrl.Status().Phase())
	assert.Equal(t, []Route{RouteLogin}, nav.routes)
}

func TestController_Resolve(t *testing.T) {
	ctx := context.Background()
	profile := adminProfile()

	tests := []struct {
		name  string
		seed  func(s session.Store)
		want  Phase
		token string
	}{
		{
			name: "empty store resolves unauthenticated",
			seed: func(s session.Store) {},
			want: PhaseUnauthenticated,
		},
		{
			name: "full session resolves authenticated",
			seed: func(s session.Store) {
				_ = s.SetToken(ctx, "jwt-abc")
				_ = s.SetUser(ctx, profile)
			},
			want:  PhaseAuthenticated,
			token: "jwt-abc",
		},
		{
			name: "token without profile resolves unauthenticated",
			seed: func(s session.Store) {
				_ = s.SetToken(ctx, "jwt-orphan")
			},
			want: PhaseUnauthenticated,
			// The stale token stays; the first 401 sweeps it.
			token: "jwt-orphan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			tt.seed(store)
			ctrl := NewController(&fakeGateway{}, store, &recordingNavigator{}, nil)

			assert.Equal(t, PhaseLoading, ctrl.Status().Phase())
			status := ctrl.Resolve(ctx)

			assert.Equal(t, tt.want, status.Phase())
			assert.Equal(t, status, ctrl.Status())
			assert.Equal(t, tt.token, store.Token(ctx))
			if tt.want == PhaseAuthenticated {
				assert.Equal(t, profile.Email, status.User().Email)
			} else {
				assert.Nil(t, status.User())
			}
		})
	}
}

func TestController_SubscribersRunInRegistrationOrder(t *testing.T) {
	ctrl := NewController(&fakeGateway{}, session.NewMemoryStore(), &recordingNavigator{}, nil)

	var order []string
	ctrl.Subscribe(func(s Status) { order = append(order, "first:"+s.Phase().String()) })
	ctrl.Subscribe(func(s Status) { order = append(order, "second:"+s.Phase().String()) })

	ctrl.ForceLogout()

	assert.Equal(t, []string{"first:unauthenticated", "second:unauthenticated"}, order)
}

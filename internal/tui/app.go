// Package tui is the full-screen terminal dashboard: login and register
// forms, the summary dashboard, video listing and detail, uploads, and
// reports, all driven by the polling query layer.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/forensicvideo/console/internal/client/api"
	"github.com/forensicvideo/console/internal/client/auth"
	"github.com/forensicvideo/console/internal/client/config"
	"github.com/forensicvideo/console/internal/client/guard"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/query"
	"github.com/forensicvideo/console/internal/logging"
)

type route string

const (
	routeLogin       route = "/login"
	routeRegister    route = "/register"
	routeDashboard   route = "/dashboard"
	routeVideos      route = "/videos"
	routeVideoDetail route = "/videos/detail"
	routeUpload      route = "/upload"
	routeReports     route = "/reports"
)

// routeRoles restricts write-capable screens; an empty list means any
// authenticated role may view.
var routeRoles = map[route][]models.UserRole{
	routeUpload:  {models.RoleAdmin, models.RoleInvestigator},
	routeReports: {models.RoleAdmin, models.RoleInvestigator},
}

func protected(r route) bool {
	return r != routeLogin && r != routeRegister
}

// Navigator adapts the auth controller's navigation calls into program
// messages. Attach the running program with SetProgram before use.
type Navigator struct {
	p *tea.Program
}

func NewNavigator() *Navigator { return &Navigator{} }

func (n *Navigator) SetProgram(p *tea.Program) { n.p = p }

func (n *Navigator) NavigateTo(r auth.Route) {
	if n.p != nil {
		n.p.Send(navigateMsg{route: route(r)})
	}
}

// Sender delivers messages into the running program from outside the update
// loop (query goroutines, the upload progress callback). Like Navigator it
// is created first and bound to the program once it exists.
type Sender struct {
	p *tea.Program
}

func NewSender() *Sender { return &Sender{} }

func (s *Sender) SetProgram(p *tea.Program) { s.p = p }

func (s *Sender) Send(msg tea.Msg) {
	if s.p != nil {
		s.p.Send(msg)
	}
}

// Deps bundles what every screen needs.
type Deps struct {
	Cfg   *config.Config
	Gw    api.Gateway
	Ctrl  *auth.Controller
	Cache *query.Cache
	Log   logging.Logger
	Send  func(msg tea.Msg)
}

// Model is the root screen switcher. It owns the current route, applies the
// guard on every navigation and on every auth status change, and tears down
// the outgoing screen's queries before the next screen mounts.
type Model struct {
	ctx    context.Context
	deps   Deps
	route  route
	status auth.Status

	width  int
	height int

	// pending holds a protected route requested while the session was
	// still resolving; it is retried when the status settles.
	pending route

	cancelScreen context.CancelFunc

	login    *loginModel
	register *registerModel
	dash     *dashboardModel
	videos   *videosModel
	detail   *videoDetailModel
	upload   *uploadModel
	reports  *reportsModel

	quitting bool
}

func NewModel(ctx context.Context, deps Deps) Model {
	return Model{
		ctx:    ctx,
		deps:   deps,
		route:  routeDashboard,
		status: deps.Ctrl.Status(),
		width:  100,
		height: 30,
	}
}

func (m Model) Init() tea.Cmd {
	// Resolve the persisted session off the UI goroutine; guards show a
	// placeholder until the statusMsg lands.
	return func() tea.Msg {
		return statusMsg{status: m.deps.Ctrl.Resolve(m.ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		m.status = msg.status
		// Re-run the guard for whatever is on screen; a forced logout
		// must bounce the viewer even mid-screen.
		if m.pending != "" && m.status.Phase() != auth.PhaseLoading {
			target := m.pending
			m.pending = ""
			return m.navigate(target)
		}
		if protected(m.route) {
			dec := guard.Decide(m.status, routeRoles[m.route])
			switch dec.Action {
			case guard.ActionRedirect:
				return m.navigate(route(dec.Target))
			case guard.ActionRender:
				// Startup path: the session just resolved and the
				// initial route was never mounted.
				if !m.mounted() {
					return m.navigate(m.route)
				}
			}
		}
		return m, nil

	case navigateMsg:
		return m.navigate(msg.route)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			m.teardown()
			return m, tea.Quit
		}
		if handled, next, cmd := m.globalKeys(msg); handled {
			return next, cmd
		}
	}

	return m.delegate(msg)
}

// globalKeys handles navigation shortcuts on screens that do not capture
// free text.
func (m Model) globalKeys(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.route == routeLogin || m.route == routeRegister || m.route == routeUpload {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		m.teardown()
		return true, m, tea.Quit
	case "d":
		next, cmd := m.navigate(routeDashboard)
		return true, next, cmd
	case "v":
		next, cmd := m.navigate(routeVideos)
		return true, next, cmd
	case "u":
		next, cmd := m.navigate(routeUpload)
		return true, next, cmd
	case "r":
		next, cmd := m.navigate(routeReports)
		return true, next, cmd
	case "ctrl+l":
		ctrl := m.deps.Ctrl
		ctx := m.ctx
		return true, m, func() tea.Msg {
			_ = ctrl.Logout(ctx)
			return nil
		}
	}
	return false, m, nil
}

// navigate applies the guard and mounts the target screen. The outgoing
// screen's context is cancelled first, so its queries stop scheduling
// refetches and discard in-flight responses.
func (m Model) navigate(target route) (Model, tea.Cmd) {
	if protected(target) {
		dec := guard.Decide(m.status, routeRoles[target])
		switch dec.Action {
		case guard.ActionPlaceholder:
			m.pending = target
			return m, nil
		case guard.ActionRedirect:
			if route(dec.Target) == target {
				// Cannot happen with the current route table; bail
				// rather than loop.
				return m, nil
			}
			return m.navigate(route(dec.Target))
		}
	}

	m.teardown()
	m.route = target

	screenCtx, cancel := context.WithCancel(m.ctx)
	m.cancelScreen = cancel

	switch target {
	case routeLogin:
		s := newLoginModel(m.deps)
		m.login = &s
		return m, s.Init()
	case routeRegister:
		s := newRegisterModel(m.deps)
		m.register = &s
		return m, s.Init()
	case routeDashboard:
		s := newDashboardModel(screenCtx, m.deps)
		m.dash = &s
		return m, s.Init()
	case routeVideos:
		s := newVideosModel(screenCtx, m.deps)
		m.videos = &s
		return m, s.Init()
	case routeUpload:
		s := newUploadModel(screenCtx, m.deps)
		m.upload = &s
		return m, s.Init()
	case routeReports:
		s := newReportsModel(screenCtx, m.deps)
		m.reports = &s
		return m, s.Init()
	}
	return m, nil
}

// openVideo mounts the detail screen for one video.
func (m Model) openVideo(v models.VideoSummary) (Model, tea.Cmd) {
	m.teardown()
	m.route = routeVideoDetail

	screenCtx, cancel := context.WithCancel(m.ctx)
	m.cancelScreen = cancel

	s := newVideoDetailModel(screenCtx, m.deps, v)
	m.detail = &s
	return m, s.Init()
}

func (m Model) mounted() bool {
	return m.login != nil || m.register != nil || m.dash != nil ||
		m.videos != nil || m.detail != nil || m.upload != nil || m.reports != nil
}

func (m *Model) teardown() {
	if m.cancelScreen != nil {
		m.cancelScreen()
		m.cancelScreen = nil
	}
	m.login = nil
	m.register = nil
	m.dash = nil
	m.videos = nil
	m.detail = nil
	m.upload = nil
	m.reports = nil
}

// delegate routes every other message to the mounted screen.
func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.login != nil:
		return m.login.update(m, msg)
	case m.register != nil:
		return m.register.update(m, msg)
	case m.dash != nil:
		return m.dash.update(m, msg)
	case m.videos != nil:
		return m.videos.update(m, msg)
	case m.detail != nil:
		return m.detail.update(m, msg)
	case m.upload != nil:
		return m.upload.update(m, msg)
	case m.reports != nil:
		return m.reports.update(m, msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.login != nil:
		body = m.login.view(m)
	case m.register != nil:
		body = m.register.view(m)
	case m.dash != nil:
		body = m.dash.view(m)
	case m.videos != nil:
		body = m.videos.view(m)
	case m.detail != nil:
		body = m.detail.view(m)
	case m.upload != nil:
		body = m.upload.view(m)
	case m.reports != nil:
		body = m.reports.view(m)
	default:
		body = dimStyle.Render("Resolving session...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar())
}

func (m Model) statusBar() string {
	who := "not signed in"
	if u := m.status.User(); u != nil {
		who = u.Email + " (" + string(u.Role) + ")"
	}
	help := "d dashboard · v videos · u upload · r reports · ctrl+l logout · q quit"
	if !protected(m.route) {
		help = "tab switch field · enter submit · ctrl+c quit"
	}
	return statusBarStyle.Width(max(0, m.width)).Render(who + "  " + helpStyle.Render(help))
}

package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/forensicvideo/console/internal/client/api"
)

type loginModel struct {
	deps       Deps
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errText    string
}

func newLoginModel(deps Deps) loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 255
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 255
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{deps: deps, email: email, password: password}
}

func (s *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (s *loginModel) update(root Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.submitting = false
		if msg.err != nil {
			s.errText = loginErrorText(msg.err)
		}
		// On success the controller navigates; nothing to do here.
		return root, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			s.toggleFocus()
			return root, nil
		case "enter":
			if s.submitting {
				return root, nil
			}
			return root, s.submit(root.ctx)
		case "ctrl+r":
			return root.navigate(routeRegister)
		}
	}

	var cmd tea.Cmd
	if s.focus == 0 {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return root, cmd
}

func (s *loginModel) toggleFocus() {
	if s.focus == 0 {
		s.focus = 1
		s.email.Blur()
		s.password.Focus()
	} else {
		s.focus = 0
		s.password.Blur()
		s.email.Focus()
	}
}

func (s *loginModel) submit(ctx context.Context) tea.Cmd {
	s.submitting = true
	s.errText = ""
	ctrl := s.deps.Ctrl
	email := s.email.Value()
	password := s.password.Value()
	return func() tea.Msg {
		return loginResultMsg{err: ctrl.Login(ctx, email, password)}
	}
}

func loginErrorText(err error) string {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return "login rejected"
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable, try again"
	default:
		return "login failed"
	}
}

func (s *loginModel) view(root Model) string {
	lines := []string{
		titleStyle.Render("ForensicVideo Console — Sign in"),
		"",
		"  " + s.email.View(),
		"  " + s.password.View(),
	}
	if s.submitting {
		lines = append(lines, "", dimStyle.Render("  signing in..."))
	}
	if s.errText != "" {
		lines = append(lines, "", errorStyle.Render("  "+s.errText))
	}
	lines = append(lines, "", helpStyle.Render("  enter sign in · ctrl+r register"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/forensicvideo/console/internal/client/api"
	"github.com/forensicvideo/console/internal/client/models"
)

// register form field indices
const (
	regFieldEmail = iota
	regFieldUsername
	regFieldFullName
	regFieldPassword
	regFieldCount
)

type registerModel struct {
	deps       Deps
	inputs     [regFieldCount]textinput.Model
	focus      int
	submitting bool
	errText    string
}

func newRegisterModel(deps Deps) registerModel {
	s := registerModel{deps: deps}

	placeholders := [regFieldCount]string{"email", "username", "full name", "password"}
	for i := range s.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 255
		s.inputs[i] = in
	}
	s.inputs[regFieldPassword].EchoMode = textinput.EchoPassword
	s.inputs[regFieldPassword].EchoCharacter = '•'
	s.inputs[regFieldEmail].Focus()

	return s
}

func (s *registerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (s *registerModel) update(root Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		s.submitting = false
		if msg.err != nil {
			s.errText = registerErrorText(msg.err)
		}
		// On success the controller navigates to login (no auto-login).
		return root, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			s.setFocus((s.focus + 1) % regFieldCount)
			return root, nil
		case "shift+tab", "up":
			s.setFocus((s.focus + regFieldCount - 1) % regFieldCount)
			return root, nil
		case "enter":
			if s.focus < regFieldCount-1 {
				s.setFocus(s.focus + 1)
				return root, nil
			}
			if s.submitting {
				return root, nil
			}
			return root, s.submit(root.ctx)
		case "esc":
			return root.navigate(routeLogin)
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return root, cmd
}

func (s *registerModel) setFocus(i int) {
	s.inputs[s.focus].Blur()
	s.focus = i
	s.inputs[s.focus].Focus()
}

func (s *registerModel) submit(ctx context.Context) tea.Cmd {
	s.submitting = true
	s.errText = ""
	ctrl := s.deps.Ctrl
	req := models.RegisterRequest{
		Email:    s.inputs[regFieldEmail].Value(),
		Username: s.inputs[regFieldUsername].Value(),
		FullName: s.inputs[regFieldFullName].Value(),
		Password: s.inputs[regFieldPassword].Value(),
	}
	return func() tea.Msg {
		return registerResultMsg{err: ctrl.Register(ctx, req)}
	}
}

func registerErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "server unavailable, try again"
	}
	return "registration failed"
}

func (s *registerModel) view(root Model) string {
	lines := []string{
		titleStyle.Render("ForensicVideo Console — Create account"),
		"",
	}
	for i := range s.inputs {
		lines = append(lines, "  "+s.inputs[i].View())
	}
	if s.submitting {
		lines = append(lines, "", dimStyle.Render("  creating account..."))
	}
	if s.errText != "" {
		lines = append(lines, "", errorStyle.Render("  "+s.errText))
	}
	lines = append(lines, "", helpStyle.Render("  enter next/submit · esc back to sign in"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

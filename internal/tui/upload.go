package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/forensicvideo/console/internal/client/query"
)

// uploadModel drives the upload mutation: pick a local file, stream it up
// with live progress, and on success let the invalidation kick every query
// under the "videos" prefix into a refetch.
type uploadModel struct {
	ctx  context.Context
	deps Deps

	path      textinput.Model
	bar       progress.Model
	uploading bool
	pct       int
	doneText  string
	errText   string
}

func newUploadModel(ctx context.Context, deps Deps) uploadModel {
	path := textinput.New()
	path.Placeholder = "/path/to/footage.mp4"
	path.CharLimit = 500
	path.Focus()

	return uploadModel{
		ctx:  ctx,
		deps: deps,
		path: path,
		bar:  progress.New(progress.WithDefaultGradient()),
	}
}

func (s *uploadModel) Init() tea.Cmd {
	return textinput.Blink
}

func (s *uploadModel) update(root Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadProgressMsg:
		s.pct = msg.pct
		return root, nil

	case uploadDoneMsg:
		s.uploading = false
		s.pct = 0
		if msg.err != nil {
			s.errText = "upload failed"
			return root, nil
		}
		s.doneText = "uploaded " + msg.video.Filename
		return root, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return root, tea.Quit
		case "esc":
			if !s.uploading {
				return root.navigate(routeDashboard)
			}
			return root, nil
		case "enter":
			if s.uploading {
				return root, nil
			}
			return root, s.start()
		}
	}

	var cmd tea.Cmd
	s.path, cmd = s.path.Update(msg)
	return root, cmd
}

func (s *uploadModel) start() tea.Cmd {
	path := strings.TrimSpace(s.path.Value())
	if path == "" {
		s.errText = "enter a file path"
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		s.errText = "cannot open " + path
		return nil
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		s.errText = "cannot stat " + path
		return nil
	}

	s.uploading = true
	s.errText = ""
	s.doneText = ""

	send := s.deps.Send
	up := query.NewUpload(s.deps.Cache, s.deps.Gw, func(pct int) {
		if send != nil {
			send(uploadProgressMsg{pct: pct})
		}
	})

	ctx := s.ctx
	req := query.UploadRequest{Filename: filepath.Base(path), Data: f, Size: info.Size()}
	return func() tea.Msg {
		defer f.Close()
		video, err := up.Do(ctx, req)
		return uploadDoneMsg{video: video, err: err}
	}
}

func (s *uploadModel) view(root Model) string {
	lines := []string{
		titleStyle.Render("Upload footage"),
		"",
		"  " + s.path.View(),
	}
	if s.uploading {
		lines = append(lines, "", "  "+s.bar.ViewAs(float64(s.pct)/100))
	}
	if s.doneText != "" {
		lines = append(lines, "", dimStyle.Render("  "+s.doneText))
	}
	if s.errText != "" {
		lines = append(lines, "", errorStyle.Render("  "+s.errText))
	}
	lines = append(lines, "", helpStyle.Render("  enter upload · esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

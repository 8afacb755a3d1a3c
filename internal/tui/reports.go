package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/query"
)

type reportsModel struct {
	ctx  context.Context
	deps Deps

	ch      <-chan query.Result[[]models.Report]
	reports []models.Report
	loadErr error
	cursor  int
	notice  string
}

func newReportsModel(ctx context.Context, deps Deps) reportsModel {
	return reportsModel{ctx: ctx, deps: deps}
}

func (s *reportsModel) Init() tea.Cmd {
	s.ch = query.Reports(s.deps.Cache, s.deps.Gw).Run(s.ctx)
	return waitFor(s.ch, func(r query.Result[[]models.Report]) tea.Msg { return reportsResultMsg(r) })
}

func (s *reportsModel) update(root Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsResultMsg:
		if msg.Err != nil {
			s.loadErr = msg.Err
		} else {
			s.reports, s.loadErr = msg.Data, nil
			if s.cursor >= len(s.reports) {
				s.cursor = max(0, len(s.reports)-1)
			}
		}
		return root, waitFor(s.ch, func(r query.Result[[]models.Report]) tea.Msg { return reportsResultMsg(r) })

	case reportsNoticeMsg:
		s.notice = msg.text
		return root, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.reports)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.reports) {
				return root, s.download(s.reports[s.cursor])
			}
		}
	}
	return root, nil
}

// download saves the rendered report next to the working directory.
func (s *reportsModel) download(r models.Report) tea.Cmd {
	gw := s.deps.Gw
	ctx := s.ctx
	out := fmt.Sprintf("report-%s.pdf", r.ID)
	return func() tea.Msg {
		f, err := os.Create(out)
		if err != nil {
			return reportsNoticeMsg{text: "could not create " + out}
		}
		defer f.Close()
		if _, err := gw.DownloadReport(ctx, r.ID, f); err != nil {
			return reportsNoticeMsg{text: "download failed"}
		}
		return reportsNoticeMsg{text: "saved " + out}
	}
}

func (s *reportsModel) view(root Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Reports") + "\n\n")

	switch {
	case s.loadErr != nil:
		b.WriteString(errorStyle.Render("  could not load reports") + "\n")
	case len(s.reports) == 0:
		b.WriteString(dimStyle.Render("  no reports yet") + "\n")
	default:
		for i, r := range s.reports {
			line := fmt.Sprintf("%-20s %-12s %s", r.ReportType, r.Status, r.CreatedAt.Format("2006-01-02 15:04"))
			if i == s.cursor {
				b.WriteString(selectedStyle.Render(line) + "\n")
			} else {
				b.WriteString(normalStyle.Render(line) + "\n")
			}
		}
	}

	if s.notice != "" {
		b.WriteString("\n" + dimStyle.Render("  "+s.notice) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  enter download · d dashboard") + "\n")
	return b.String()
}

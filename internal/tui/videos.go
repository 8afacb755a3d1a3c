package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/query"
)

const videosPageSize = 20

type videosModel struct {
	ctx  context.Context
	deps Deps

	page    int
	ch      <-chan query.Result[*models.VideoPage]
	cancel  context.CancelFunc
	result  *models.VideoPage
	loadErr error
	cursor  int
}

func newVideosModel(ctx context.Context, deps Deps) videosModel {
	return videosModel{ctx: ctx, deps: deps, page: 1}
}

func (s *videosModel) Init() tea.Cmd {
	return s.load()
}

// load (re)starts the page query. Switching pages cancels the old query
// first; each page is its own cache key.
func (s *videosModel) load() tea.Cmd {
	if s.cancel != nil {
		s.cancel()
	}
	pageCtx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel

	s.ch = query.Videos(s.deps.Cache, s.deps.Gw, s.page, videosPageSize).Run(pageCtx)
	return waitFor(s.ch, func(r query.Result[*models.VideoPage]) tea.Msg { return videosResultMsg(r) })
}

func (s *videosModel) update(root Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case videosResultMsg:
		if msg.Err != nil {
			s.loadErr = msg.Err
		} else {
			s.result, s.loadErr = msg.Data, nil
			if s.cursor >= len(s.result.Items) {
				s.cursor = max(0, len(s.result.Items)-1)
			}
		}
		return root, waitFor(s.ch, func(r query.Result[*models.VideoPage]) tea.Msg { return videosResultMsg(r) })

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.result != nil && s.cursor < len(s.result.Items)-1 {
				s.cursor++
			}
		case "left", "h":
			if s.page > 1 {
				s.page--
				s.cursor = 0
				return root, s.load()
			}
		case "right", "l":
			if s.result != nil && s.page*videosPageSize < s.result.Total {
				s.page++
				s.cursor = 0
				return root, s.load()
			}
		case "enter":
			if s.result != nil && s.cursor < len(s.result.Items) {
				return root.openVideo(s.result.Items[s.cursor])
			}
		}
	}
	return root, nil
}

func (s *videosModel) view(root Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Videos") + "\n\n")

	switch {
	case s.loadErr != nil:
		b.WriteString(errorStyle.Render("  could not load videos") + "\n")
	case s.result == nil:
		b.WriteString(dimStyle.Render("  loading...") + "\n")
	case len(s.result.Items) == 0:
		b.WriteString(dimStyle.Render("  no videos") + "\n")
	default:
		for i, v := range s.result.Items {
			line := fmt.Sprintf("%-40s %-10s %s",
				truncate(v.Filename, 40),
				formatSize(v.FileSize),
				renderStatus(v.Status, v.Progress))
			if i == s.cursor {
				b.WriteString(selectedStyle.Render(line) + "\n")
			} else {
				b.WriteString(normalStyle.Render(line) + "\n")
			}
		}
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("  page %d · %d total · ←/→ page · enter open", s.page, s.result.Total)) + "\n")
	}
	return b.String()
}

func formatSize(n int64) string {
	switch {
	case n <= 0:
		return "-"
	case n < 1<<20:
		return fmt.Sprintf("%dK", n>>10)
	case n < 1<<30:
		return fmt.Sprintf("%dM", n>>20)
	default:
		return fmt.Sprintf("%.1fG", float64(n)/float64(1<<30))
	}
}

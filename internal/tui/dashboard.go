package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/query"
)

type dashboardModel struct {
	ctx  context.Context
	deps Deps

	statsCh    <-chan query.Result[*models.DashboardStats]
	recentCh   <-chan query.Result[[]models.VideoSummary]
	activityCh <-chan query.Result[[]models.ActivityPoint]

	stats       *models.DashboardStats
	statsErr    error
	recent      []models.VideoSummary
	recentErr   error
	activity    []models.ActivityPoint
	activityErr error

	cursor int
}

func newDashboardModel(ctx context.Context, deps Deps) dashboardModel {
	return dashboardModel{ctx: ctx, deps: deps}
}

func (s *dashboardModel) Init() tea.Cmd {
	s.statsCh = query.DashboardStats(s.deps.Cache, s.deps.Gw).Run(s.ctx)
	s.recentCh = query.RecentVideos(s.deps.Cache, s.deps.Gw, s.deps.Cfg.RecentLimit).Run(s.ctx)
	s.activityCh = query.DashboardActivity(s.deps.Cache, s.deps.Gw, s.deps.Cfg.ActivityDays).Run(s.ctx)

	return tea.Batch(
		waitFor(s.statsCh, func(r query.Result[*models.DashboardStats]) tea.Msg { return statsResultMsg(r) }),
		waitFor(s.recentCh, func(r query.Result[[]models.VideoSummary]) tea.Msg { return recentResultMsg(r) }),
		waitFor(s.activityCh, func(r query.Result[[]models.ActivityPoint]) tea.Msg { return activityResultMsg(r) }),
	)
}

func (s *dashboardModel) update(root Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsResultMsg:
		if msg.Err != nil {
			s.statsErr = msg.Err
		} else {
			s.stats, s.statsErr = msg.Data, nil
		}
		return root, waitFor(s.statsCh, func(r query.Result[*models.DashboardStats]) tea.Msg { return statsResultMsg(r) })

	case recentResultMsg:
		if msg.Err != nil {
			s.recentErr = msg.Err
		} else {
			s.recent, s.recentErr = msg.Data, nil
			if s.cursor >= len(s.recent) {
				s.cursor = max(0, len(s.recent)-1)
			}
		}
		return root, waitFor(s.recentCh, func(r query.Result[[]models.VideoSummary]) tea.Msg { return recentResultMsg(r) })

	case activityResultMsg:
		if msg.Err != nil {
			s.activityErr = msg.Err
		} else {
			s.activity, s.activityErr = msg.Data, nil
		}
		return root, waitFor(s.activityCh, func(r query.Result[[]models.ActivityPoint]) tea.Msg { return activityResultMsg(r) })

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.recent)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.recent) {
				return root.openVideo(s.recent[s.cursor])
			}
		}
	}
	return root, nil
}

func (s *dashboardModel) view(root Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dashboard") + "\n\n")
	b.WriteString(s.cards() + "\n\n")

	b.WriteString(headerStyle.Render("Recent uploads") + "\n")
	if s.recentErr != nil {
		b.WriteString(errorStyle.Render("  could not load recent uploads") + "\n")
	} else if len(s.recent) == 0 {
		b.WriteString(dimStyle.Render("  no uploads yet") + "\n")
	} else {
		for i, v := range s.recent {
			line := fmt.Sprintf("%-40s %s", truncate(v.Filename, 40), renderStatus(v.Status, v.Progress))
			if i == s.cursor {
				b.WriteString(selectedStyle.Render(line) + "\n")
			} else {
				b.WriteString(normalStyle.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n" + headerStyle.Render(fmt.Sprintf("Activity (last %d days)", s.deps.Cfg.ActivityDays)) + "\n")
	if s.activityErr != nil {
		b.WriteString(errorStyle.Render("  could not load activity") + "\n")
	} else {
		for _, p := range s.activity {
			b.WriteString(normalStyle.Render(fmt.Sprintf("%s  uploads %-3d detections %d", p.Date, p.Uploads, p.Detections)) + "\n")
		}
	}

	return b.String()
}

func (s *dashboardModel) cards() string {
	render := func(label string, value int, err error) string {
		v := strconv.Itoa(value)
		if err != nil {
			v = "—"
		}
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			dimStyle.Render(label),
			cardValueStyle.Render(v),
		))
	}

	var stats models.DashboardStats
	if s.stats != nil {
		stats = *s.stats
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render("Total videos", stats.TotalVideos, s.statsErr),
		render("Processing", stats.VideosProcessing, s.statsErr),
		render("Faces today", stats.FacesToday, s.statsErr),
		render("Active alerts", stats.ActiveAlerts, s.statsErr),
	)
}

func renderStatus(status models.VideoStatus, progress float64) string {
	switch status {
	case models.StatusCompleted:
		return statusCompleted.Render("completed")
	case models.StatusFailed:
		return statusFailed.Render("failed")
	case models.StatusProcessing:
		return statusProcessing.Render(fmt.Sprintf("processing %3.0f%%", progress))
	default:
		return statusPending.Render("pending")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

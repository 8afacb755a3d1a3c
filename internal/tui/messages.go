package tui

import (
	"github.com/forensicvideo/console/internal/client/auth"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/query"
	tea "github.com/charmbracelet/bubbletea"
)

// navigateMsg switches the visible screen. The auth controller's Navigator
// sends these through the running program.
type navigateMsg struct {
	route route
}

// statusMsg fans a controller status change into the UI so guards re-run.
type statusMsg struct {
	status auth.Status
}

// StatusChanged wraps a controller status change for delivery into the
// running program. main subscribes it to the controller so that every
// transition (login, logout, forced logout on 401) reaches the guard before
// any navigation message that follows it.
func StatusChanged(s auth.Status) tea.Msg {
	return statusMsg{status: s}
}

// loginResultMsg carries the outcome of a login attempt; err is rendered
// inline next to the form.
type loginResultMsg struct{ err error }

// registerResultMsg carries the outcome of an account creation.
type registerResultMsg struct{ err error }

// Query results, one message type per query unit so each screen can route
// them without reflection.
type statsResultMsg query.Result[*models.DashboardStats]

type activityResultMsg query.Result[[]models.ActivityPoint]

type recentResultMsg query.Result[[]models.VideoSummary]

type videosResultMsg query.Result[*models.VideoPage]

type videoDetailResultMsg query.Result[*models.VideoDetail]

type videoStatusResultMsg query.Result[*models.VideoStatusInfo]

type detectionsResultMsg query.Result[[]models.Detection]

type reportsResultMsg query.Result[[]models.Report]

// uploadProgressMsg reports integer percent-complete while an upload runs.
type uploadProgressMsg struct{ pct int }

// uploadDoneMsg carries the finished upload's outcome.
type uploadDoneMsg struct {
	video *models.VideoSummary
	err   error
}

// reportsNoticeMsg shows a transient line on the reports screen.
type reportsNoticeMsg struct{ text string }

// reportGeneratedMsg carries the outcome of a report-generation request.
type reportGeneratedMsg struct {
	report *models.Report
	err    error
}

// waitFor turns one receive on a query result channel into a tea.Cmd. The
// handler re-issues it after consuming the message; a closed channel (the
// query was cancelled) yields nil, which Bubble Tea discards — no state
// update after unmount.
func waitFor[T any](ch <-chan query.Result[T], wrap func(query.Result[T]) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(r)
	}
}

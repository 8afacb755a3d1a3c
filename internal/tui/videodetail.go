package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/query"
)

// videoDetailModel shows one video and, while it is pending or processing,
// polls its status every 2s. The poll stops by policy at the first terminal
// observation; detections are loaded once the video is completed.
type videoDetailModel struct {
	ctx  context.Context
	deps Deps

	summary models.VideoSummary

	detailCh <-chan query.Result[*models.VideoDetail]
	statusCh <-chan query.Result[*models.VideoStatusInfo]

	detail    *models.VideoDetail
	detailErr error
	status    *models.VideoStatusInfo

	detectionsCh  <-chan query.Result[[]models.Detection]
	detections    []models.Detection
	detectionsErr error

	reportMsg string
}

func newVideoDetailModel(ctx context.Context, deps Deps, v models.VideoSummary) videoDetailModel {
	return videoDetailModel{ctx: ctx, deps: deps, summary: v}
}

func (s *videoDetailModel) Init() tea.Cmd {
	s.detailCh = query.Video(s.deps.Cache, s.deps.Gw, s.summary.ID).Run(s.ctx)
	cmds := []tea.Cmd{
		waitFor(s.detailCh, func(r query.Result[*models.VideoDetail]) tea.Msg { return videoDetailResultMsg(r) }),
	}

	if !s.summary.Status.Terminal() {
		s.statusCh = query.VideoStatus(s.deps.Cache, s.deps.Gw, s.summary.ID).Run(s.ctx)
		cmds = append(cmds, waitFor(s.statusCh, func(r query.Result[*models.VideoStatusInfo]) tea.Msg { return videoStatusResultMsg(r) }))
	} else if s.summary.Status == models.StatusCompleted {
		cmds = append(cmds, s.loadDetections())
	}

	return tea.Batch(cmds...)
}

func (s *videoDetailModel) loadDetections() tea.Cmd {
	s.detectionsCh = query.New(s.deps.Cache, "video/"+s.summary.ID.String()+"/detections",
		func(ctx context.Context) ([]models.Detection, error) {
			return s.deps.Gw.VideoDetections(ctx, s.summary.ID)
		},
		query.Once[[]models.Detection](),
	).Run(s.ctx)
	return waitFor(s.detectionsCh, func(r query.Result[[]models.Detection]) tea.Msg { return detectionsResultMsg(r) })
}

func (s *videoDetailModel) update(root Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case videoDetailResultMsg:
		if msg.Err != nil {
			s.detailErr = msg.Err
		} else {
			s.detail, s.detailErr = msg.Data, nil
		}
		return root, waitFor(s.detailCh, func(r query.Result[*models.VideoDetail]) tea.Msg { return videoDetailResultMsg(r) })

	case videoStatusResultMsg:
		var cmds []tea.Cmd
		if msg.Err == nil && msg.Data != nil {
			prev := s.currentStatus()
			s.status = msg.Data
			if msg.Data.Status == models.StatusCompleted && prev != models.StatusCompleted {
				// Processing just finished; the detail record and the
				// detections are now worth (re)fetching.
				s.deps.Cache.Invalidate("video/" + s.summary.ID.String())
				cmds = append(cmds, s.loadDetections())
			}
		}
		cmds = append(cmds, waitFor(s.statusCh, func(r query.Result[*models.VideoStatusInfo]) tea.Msg { return videoStatusResultMsg(r) }))
		return root, tea.Batch(cmds...)

	case detectionsResultMsg:
		if msg.Err != nil {
			s.detectionsErr = msg.Err
		} else {
			s.detections, s.detectionsErr = msg.Data, nil
		}
		return root, waitFor(s.detectionsCh, func(r query.Result[[]models.Detection]) tea.Msg { return detectionsResultMsg(r) })

	case reportGeneratedMsg:
		if msg.err != nil {
			s.reportMsg = "report generation failed"
		} else {
			s.reportMsg = "report queued: " + msg.report.ID.String()
		}
		return root, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return root.navigate(routeVideos)
		case "g":
			return root, s.generateReport(root.ctx)
		}
	}
	return root, nil
}

func (s *videoDetailModel) generateReport(ctx context.Context) tea.Cmd {
	mut := query.GenerateReport(s.deps.Cache, s.deps.Gw)
	req := models.GenerateReportRequest{
		VideoID:               s.summary.ID,
		ReportType:            "forensic_summary",
		IncludeFaces:          true,
		IncludeChainOfCustody: true,
	}
	return func() tea.Msg {
		report, err := mut.Do(ctx, req)
		return reportGeneratedMsg{report: report, err: err}
	}
}

func (s *videoDetailModel) currentStatus() models.VideoStatus {
	if s.status != nil {
		return s.status.Status
	}
	return s.summary.Status
}

func (s *videoDetailModel) view(root Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Video — "+s.summary.Filename) + "\n\n")

	progress := s.summary.Progress
	if s.status != nil {
		progress = s.status.Progress
	}
	b.WriteString("  " + labelStyle.Render("Status") + renderStatus(s.currentStatus(), progress) + "\n")

	if s.detail != nil {
		d := s.detail
		b.WriteString("  " + labelStyle.Render("Resolution") + orDash(d.Resolution) + "\n")
		b.WriteString("  " + labelStyle.Render("Codec") + orDash(d.Codec) + "\n")
		b.WriteString("  " + labelStyle.Render("Duration") + fmt.Sprintf("%.1fs @ %.1f fps", d.Duration, d.FPS) + "\n")
		b.WriteString("  " + labelStyle.Render("Size") + formatSize(d.FileSize) + "\n")
		b.WriteString("  " + labelStyle.Render("SHA-256") + dimStyle.Render(orDash(d.SHA256Hash)) + "\n")
	} else if s.detailErr != nil {
		b.WriteString(errorStyle.Render("  could not load video details") + "\n")
	}

	if s.currentStatus() == models.StatusCompleted {
		b.WriteString("\n" + headerStyle.Render("Detections") + "\n")
		switch {
		case s.detectionsErr != nil:
			b.WriteString(errorStyle.Render("  could not load detections") + "\n")
		case len(s.detections) == 0:
			b.WriteString(dimStyle.Render("  none") + "\n")
		default:
			for _, d := range s.detections {
				b.WriteString(normalStyle.Render(fmt.Sprintf("%-16s %5.1f%%  frame %d", d.ObjectClass, d.Confidence*100, d.FrameNumber)) + "\n")
			}
		}
	}

	if s.reportMsg != "" {
		b.WriteString("\n" + dimStyle.Render("  "+s.reportMsg) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  g generate report · esc back") + "\n")
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package query

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/forensicvideo/console/internal/client/api"
	"github.com/forensicvideo/console/internal/client/models"
	"github.com/google/uuid"
)

// Refresh cadences. Stats move fastest because the dashboard header is the
// first thing an investigator watches after an upload.
const (
	StatsInterval    = 5 * time.Second
	ActivityInterval = 30 * time.Second
	RecentInterval   = 10 * time.Second
	StatusInterval   = 2 * time.Second
)

// DashboardStats polls the summary aggregate every 5s.
func DashboardStats(cache *Cache, gw api.Gateway) *Query[*models.DashboardStats] {
	return New(cache, "dashboard/stats", gw.DashboardStats, Every[*models.DashboardStats](StatsInterval))
}

// DashboardActivity polls the activity series for the last `days` days
// every 30s.
func DashboardActivity(cache *Cache, gw api.Gateway, days int) *Query[[]models.ActivityPoint] {
	key := fmt.Sprintf("dashboard/activity/%d", days)
	fetch := func(ctx context.Context) ([]models.ActivityPoint, error) {
		return gw.DashboardActivity(ctx, days)
	}
	return New(cache, key, fetch, Every[[]models.ActivityPoint](ActivityInterval))
}

// RecentVideos polls the latest uploads every 10s. The key sits under the
// "videos" prefix so an upload invalidates it.
func RecentVideos(cache *Cache, gw api.Gateway, limit int) *Query[[]models.VideoSummary] {
	key := fmt.Sprintf("videos/recent/%d", limit)
	fetch := func(ctx context.Context) ([]models.VideoSummary, error) {
		return gw.RecentVideos(ctx, limit)
	}
	return New(cache, key, fetch, Every[[]models.VideoSummary](RecentInterval))
}

// Videos fetches one listing page; no interval, refetch on invalidation only.
func Videos(cache *Cache, gw api.Gateway, page, limit int) *Query[*models.VideoPage] {
	key := fmt.Sprintf("videos/page/%d/%d", page, limit)
	fetch := func(ctx context.Context) (*models.VideoPage, error) {
		return gw.Videos(ctx, page, limit)
	}
	return New(cache, key, fetch, Once[*models.VideoPage]())
}

// Video fetches one detail record; refetch on invalidation only.
func Video(cache *Cache, gw api.Gateway, id uuid.UUID) *Query[*models.VideoDetail] {
	fetch := func(ctx context.Context) (*models.VideoDetail, error) {
		return gw.Video(ctx, id)
	}
	return New(cache, "video/"+id.String(), fetch, Once[*models.VideoDetail]())
}

// StatusPolicy keeps polling every 2s while a video is pending or
// processing and stops at the first terminal observation. Errors keep the
// poll alive so a transient failure cannot strand a processing video.
func StatusPolicy(info *models.VideoStatusInfo, err error) time.Duration {
	if err == nil && info != nil && info.Status.Terminal() {
		return Stop
	}
	return StatusInterval
}

// VideoStatus polls a video's processing state per StatusPolicy. The key
// lives outside the "video/<id>" prefix: invalidating the detail record on
// completion must not kick a stopped poll into one more request.
func VideoStatus(cache *Cache, gw api.Gateway, id uuid.UUID) *Query[*models.VideoStatusInfo] {
	fetch := func(ctx context.Context) (*models.VideoStatusInfo, error) {
		return gw.VideoStatus(ctx, id)
	}
	return New(cache, "status/video/"+id.String(), fetch, StatusPolicy)
}

// Reports fetches the report listing; refetch on invalidation only.
func Reports(cache *Cache, gw api.Gateway) *Query[[]models.Report] {
	return New(cache, "reports", gw.Reports, Once[[]models.Report]())
}

// GenerateReport is the report-generation mutation; success invalidates the
// report listing.
func GenerateReport(cache *Cache, gw api.Gateway) *Mutation[models.GenerateReportRequest, *models.Report] {
	return NewMutation(cache, gw.GenerateReport, "reports")
}

// UploadRequest names the inputs of one upload.
type UploadRequest struct {
	Filename string
	Data     io.Reader
	Size     int64
}

// Upload is the video-upload mutation: on success it invalidates every
// cached entry under the "videos" prefix; on both success and failure the
// progress gauge resets to 0.
type Upload struct {
	mutation   *Mutation[UploadRequest, *models.VideoSummary]
	progress   atomic.Int32
	onProgress func(pct int)
}

// NewUpload builds the upload mutation. onProgress may be nil; when set it
// observes every progress change including the final reset.
func NewUpload(cache *Cache, gw api.Gateway, onProgress func(pct int)) *Upload {
	u := &Upload{onProgress: onProgress}
	run := func(ctx context.Context, req UploadRequest) (*models.VideoSummary, error) {
		return gw.UploadVideo(ctx, req.Filename, req.Data, req.Size, u.setProgress)
	}
	u.mutation = NewMutation(cache, run, "videos")
	return u
}

func (u *Upload) setProgress(pct int) {
	u.progress.Store(int32(pct))
	if u.onProgress != nil {
		u.onProgress(pct)
	}
}

// Progress reports the current percent-complete of an in-flight upload.
func (u *Upload) Progress() int { return int(u.progress.Load()) }

func (u *Upload) Do(ctx context.Context, req UploadRequest) (*models.VideoSummary, error) {
	video, err := u.mutation.Do(ctx, req)
	u.setProgress(0)
	return video, err
}

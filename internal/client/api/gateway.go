package api

import (
	"context"
	"io"

	"github.com/forensicvideo/console/internal/client/models"
	"github.com/google/uuid"
)

// Gateway is the full backend surface the console consumes. *Client is the
// production implementation; tests substitute fakes.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*models.AuthTokens, error)
	Register(ctx context.Context, data models.RegisterRequest) (*models.UserProfile, error)
	Me(ctx context.Context) (*models.UserProfile, error)

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	DashboardActivity(ctx context.Context, days int) ([]models.ActivityPoint, error)

	Videos(ctx context.Context, page, limit int) (*models.VideoPage, error)
	RecentVideos(ctx context.Context, limit int) ([]models.VideoSummary, error)
	Video(ctx context.Context, id uuid.UUID) (*models.VideoDetail, error)
	VideoStatus(ctx context.Context, id uuid.UUID) (*models.VideoStatusInfo, error)
	VideoDetections(ctx context.Context, id uuid.UUID) ([]models.Detection, error)
	VideoFaces(ctx context.Context, id uuid.UUID) ([]models.Face, error)
	UploadVideo(ctx context.Context, filename string, r io.Reader, size int64, onProgress func(pct int)) (*models.VideoSummary, error)

	Faces(ctx context.Context, videoID uuid.UUID, page, limit int) (*models.FacePage, error)
	SearchFaces(ctx context.Context, req models.FaceSearchRequest) ([]models.FaceMatch, error)
	MarkFacePOI(ctx context.Context, req models.MarkPOIRequest) error

	GenerateReport(ctx context.Context, req models.GenerateReportRequest) (*models.Report, error)
	Reports(ctx context.Context) ([]models.Report, error)
	Report(ctx context.Context, id uuid.UUID) (*models.Report, error)
	DownloadReport(ctx context.Context, id uuid.UUID, w io.Writer) (int64, error)
}

var _ Gateway = (*Client)(nil)

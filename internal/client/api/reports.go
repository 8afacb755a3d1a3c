package api

import (
	"context"
	"io"
	"net/http"

	"github.com/forensicvideo/console/internal/client/models"
	"github.com/google/uuid"
)

// GenerateReport asks the backend to build a forensic report for a video.
func (c *Client) GenerateReport(ctx context.Context, req models.GenerateReportRequest) (*models.Report, error) {
	var report models.Report
	if err := c.postJSON(ctx, "/api/reports/generate", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Reports lists the caller's reports.
func (c *Client) Reports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := c.getJSON(ctx, "/api/reports", nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Report fetches one report record.
func (c *Client) Report(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := c.getJSON(ctx, "/api/reports/"+id.String(), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// DownloadReport streams the rendered report binary into w and returns the
// number of bytes written.
func (c *Client) DownloadReport(ctx context.Context, id uuid.UUID, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/reports/"+id.String()+"/download", nil), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(w, resp.Body)
}

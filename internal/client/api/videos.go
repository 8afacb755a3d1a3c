package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/forensicvideo/console/internal/client/models"
	"github.com/google/uuid"
)

// Videos fetches one page of the full video listing.
func (c *Client) Videos(ctx context.Context, page, limit int) (*models.VideoPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var result models.VideoPage
	if err := c.getJSON(ctx, "/api/videos", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecentVideos fetches the latest uploads for the dashboard.
func (c *Client) RecentVideos(ctx context.Context, limit int) ([]models.VideoSummary, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var videos []models.VideoSummary
	if err := c.getJSON(ctx, "/api/videos/recent", q, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Video fetches the full detail record for one video.
func (c *Client) Video(ctx context.Context, id uuid.UUID) (*models.VideoDetail, error) {
	var video models.VideoDetail
	if err := c.getJSON(ctx, "/api/videos/"+id.String(), nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// VideoStatus fetches the lightweight processing-state payload polled while
// a video is pending or processing.
func (c *Client) VideoStatus(ctx context.Context, id uuid.UUID) (*models.VideoStatusInfo, error) {
	var status models.VideoStatusInfo
	if err := c.getJSON(ctx, "/api/videos/"+id.String()+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// VideoDetections lists the objects detected in a processed video.
func (c *Client) VideoDetections(ctx context.Context, id uuid.UUID) ([]models.Detection, error) {
	var detections []models.Detection
	if err := c.getJSON(ctx, "/api/videos/"+id.String()+"/detections", nil, &detections); err != nil {
		return nil, err
	}
	return detections, nil
}

// VideoFaces lists the faces extracted from a processed video.
func (c *Client) VideoFaces(ctx context.Context, id uuid.UUID) ([]models.Face, error) {
	var faces []models.Face
	if err := c.getJSON(ctx, "/api/videos/"+id.String()+"/faces", nil, &faces); err != nil {
		return nil, err
	}
	return faces, nil
}

// progressReader reports integer percent-complete values as the body is
// consumed by the transport. Duplicate percentages are suppressed so the
// callback fires at most 100 times.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	lastPct    int
	onProgress func(pct int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 && p.onProgress != nil {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct != p.lastPct {
			p.lastPct = pct
			p.onProgress(pct)
		}
	}
	return n, err
}

// UploadVideo streams a multipart upload of size bytes read from r.
// onProgress, when non-nil, receives integer percentages derived from
// bytes-sent over bytes-total. The progress wrapper sits on the raw file
// reader, not the multipart stream, so the boundary and header framing
// never count towards the percentage.
func (c *Client) UploadVideo(ctx context.Context, filename string, r io.Reader, size int64, onProgress func(pct int)) (*models.VideoSummary, error) {
	src := r
	if size > 0 {
		src = &progressReader{r: r, total: size, onProgress: onProgress}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/videos/upload", nil), pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	var video models.VideoSummary
	if err := decodeJSON(resp, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

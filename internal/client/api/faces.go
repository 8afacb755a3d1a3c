package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/forensicvideo/console/internal/client/models"
	"github.com/google/uuid"
)

// Faces fetches one page of the face catalog, optionally filtered to a video.
func (c *Client) Faces(ctx context.Context, videoID uuid.UUID, page, limit int) (*models.FacePage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if videoID != uuid.Nil {
		q.Set("video_id", videoID.String())
	}

	var result models.FacePage
	if err := c.getJSON(ctx, "/api/faces", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchFaces runs a similarity search against a stored embedding.
func (c *Client) SearchFaces(ctx context.Context, req models.FaceSearchRequest) ([]models.FaceMatch, error) {
	var matches []models.FaceMatch
	if err := c.postJSON(ctx, "/api/faces/search", req, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// MarkFacePOI tags a face as a person of interest.
func (c *Client) MarkFacePOI(ctx context.Context, req models.MarkPOIRequest) error {
	return c.postJSON(ctx, "/api/faces/mark-poi", req, nil)
}

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/forensicvideo/console/internal/client/models"
)

// DashboardStats fetches the summary aggregate. The result is a snapshot;
// consumers replace it wholesale on every poll.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.getJSON(ctx, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DashboardActivity fetches the per-day activity series for the last N days.
func (c *Client) DashboardActivity(ctx context.Context, days int) ([]models.ActivityPoint, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))

	var points []models.ActivityPoint
	if err := c.getJSON(ctx, "/api/dashboard/activity", q, &points); err != nil {
		return nil, err
	}
	return points, nil
}

package models

// DashboardStats is the point-in-time aggregate shown on the summary cards.
// Each refetch replaces the whole value; there are no merge semantics.
type DashboardStats struct {
	TotalVideos      int `json:"total_videos"`
	VideosProcessing int `json:"videos_processing"`
	FacesToday       int `json:"faces_today"`
	ActiveAlerts     int `json:"active_alerts"`
}

// ActivityPoint is one day of the dashboard activity series.
type ActivityPoint struct {
	Date       string `json:"date"`
	Uploads    int    `json:"uploads"`
	Detections int    `json:"detections"`
}

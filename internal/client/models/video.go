package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoStatus is the processing state reported by the backend.
type VideoStatus string

const (
	StatusPending    VideoStatus = "pending"
	StatusProcessing VideoStatus = "processing"
	StatusCompleted  VideoStatus = "completed"
	StatusFailed     VideoStatus = "failed"
)

// Terminal reports whether the status can no longer change, i.e. polling
// for further updates is pointless.
func (s VideoStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// VideoSummary is the list-view snapshot of an uploaded video. The client
// never mutates it; it only polls for newer snapshots.
type VideoSummary struct {
	ID           uuid.UUID   `json:"id"`
	Filename     string      `json:"filename"`
	Status       VideoStatus `json:"status"`
	Progress     float64     `json:"progress,omitempty"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	FileSize     int64       `json:"file_size,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// VideoDetail extends the summary with forensic metadata shown on the
// detail screen.
type VideoDetail struct {
	VideoSummary
	OriginalFilename string     `json:"original_filename,omitempty"`
	Duration         float64    `json:"duration,omitempty"`
	FPS              float64    `json:"fps,omitempty"`
	Resolution       string     `json:"resolution,omitempty"`
	Codec            string     `json:"codec,omitempty"`
	SHA256Hash       string     `json:"sha256_hash,omitempty"`
	UploadedAt       *time.Time `json:"uploaded_at,omitempty"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
}

// VideoPage is one page of the paginated video listing.
type VideoPage struct {
	Items []VideoSummary `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// VideoStatusInfo is the lightweight GET /api/videos/{id}/status payload
// polled while a video is being processed.
type VideoStatusInfo struct {
	ID       uuid.UUID   `json:"id"`
	Status   VideoStatus `json:"status"`
	Progress float64     `json:"progress"`
}

// Detection is one object detected in a processed video.
type Detection struct {
	ID          uuid.UUID `json:"id"`
	ObjectClass string    `json:"object_class"`
	Confidence  float64   `json:"confidence"`
	FrameNumber int       `json:"frame_number"`
	TimestampMs int64     `json:"timestamp_ms"`
}

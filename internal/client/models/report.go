package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a generated forensic report.
type Report struct {
	ID         uuid.UUID `json:"id"`
	VideoID    uuid.UUID `json:"video_id"`
	ReportType string    `json:"report_type"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// GenerateReportRequest asks the backend to build a report for a video.
type GenerateReportRequest struct {
	VideoID               uuid.UUID `json:"video_id"`
	ReportType            string    `json:"report_type"`
	IncludeFaces          bool      `json:"include_faces,omitempty"`
	IncludeChainOfCustody bool      `json:"include_chain_of_custody,omitempty"`
}

package models

import "github.com/google/uuid"

// Face is a face embedding extracted from a video frame.
type Face struct {
	ID           uuid.UUID `json:"id"`
	VideoID      uuid.UUID `json:"video_id"`
	FrameNumber  int       `json:"frame_number"`
	Confidence   float64   `json:"confidence"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsPOI        bool      `json:"is_poi"`
	POILabel     string    `json:"poi_label,omitempty"`
}

// FacePage is one page of the paginated face listing.
type FacePage struct {
	Items []Face `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// FaceSearchRequest asks the backend for faces similar to a stored embedding.
type FaceSearchRequest struct {
	FaceEmbeddingID uuid.UUID `json:"face_embedding_id"`
	Threshold       float64   `json:"threshold"`
	MaxResults      int       `json:"max_results"`
}

// FaceMatch is one similarity-search hit.
type FaceMatch struct {
	Face       Face    `json:"face"`
	Similarity float64 `json:"similarity"`
}

// MarkPOIRequest tags a face as a person of interest.
type MarkPOIRequest struct {
	FaceEmbeddingID uuid.UUID `json:"face_embedding_id"`
	POILabel        string    `json:"poi_label"`
	Notes           string    `json:"notes,omitempty"`
}

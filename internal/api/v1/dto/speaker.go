package dto

import (
	"github.com/P0llen/speaker-detector/internal/api/errors"
	"github.com/P0llen/speaker-detector/internal/app/model"
)

// EnrollResponse is returned after a reference sample was stored.
type EnrollResponse struct {
	Speaker     string `json:"speaker"`
	SampleIndex int    `json:"sample_index"`
	SampleCount int    `json:"sample_count"`
}

// SpeakerListResponse lists the enrolled profiles.
type SpeakerListResponse struct {
	Speakers []model.ProfileInfo `json:"speakers"`
	Total    int                 `json:"total"`
}

// RecordingsResponse maps each speaker to its stored sample filenames.
type RecordingsResponse struct {
	Recordings map[string][]string `json:"recordings"`
	Total      int                 `json:"total"`
}

// RenameRequest renames a speaker profile.
type RenameRequest struct {
	NewID string `json:"new_id" binding:"required,min=1,max=128"`
}

// Validate implements domain validation for RenameRequest
func (r *RenameRequest) Validate() error {
	if r.NewID == model.SpeakerUnknown || r.NewID == model.SpeakerError {
		return errors.NewValidationError("Validation failed",
			map[string]string{"new_id": "is a reserved label"})
	}
	return nil
}

// ImproveResponse reports the freshly rebuilt aggregate.
type ImproveResponse struct {
	Speaker     string `json:"speaker"`
	SampleCount int    `json:"sample_count"`
	Dimension   int    `json:"dimension"`
}

// DeleteSpeakerResponse reports whether the profile existed.
type DeleteSpeakerResponse struct {
	Speaker string `json:"speaker"`
	Deleted bool   `json:"deleted"`
}

// IdentifyResponse carries the match result for one probe.
type IdentifyResponse struct {
	Speaker string  `json:"speaker"`
	Score   float64 `json:"score"`
}

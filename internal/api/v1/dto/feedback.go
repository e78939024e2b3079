package dto

import (
	"github.com/P0llen/speaker-detector/internal/api/errors"
)

// CorrectionRequest reassigns a mislabeled sample to the right speaker.
// DeleteOriginal defaults to true; send false to copy the sample instead of
// moving it.
type CorrectionRequest struct {
	OldSpeaker     string `json:"old_speaker" binding:"required"`
	CorrectSpeaker string `json:"correct_speaker" binding:"required"`
	Filename       string `json:"filename" binding:"required"`
	DeleteOriginal *bool  `json:"delete_original,omitempty"`
}

// ShouldDeleteOriginal resolves the optional flag to its default.
func (r *CorrectionRequest) ShouldDeleteOriginal() bool {
	return r.DeleteOriginal == nil || *r.DeleteOriginal
}

// Validate implements domain validation for CorrectionRequest
func (r *CorrectionRequest) Validate() error {
	if r.OldSpeaker == r.CorrectSpeaker {
		return errors.NewValidationError("Validation failed",
			map[string]string{"correct_speaker": "must differ from old_speaker"})
	}
	return nil
}

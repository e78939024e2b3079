package model

import "time"

// FeedbackRecord is one immutable entry of the correction audit log.
// Records are append-only and never reordered; CreatedAt is informational,
// ordering is defined by append order.
type FeedbackRecord struct {
	OldSpeaker     string    `json:"old_speaker"`
	CorrectSpeaker string    `json:"correct_speaker"`
	Filename       string    `json:"filename"`
	DeleteOriginal bool      `json:"delete_original"`
	CreatedAt      time.Time `json:"created_at"`
}

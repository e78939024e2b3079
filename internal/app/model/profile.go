package model

// ProfileInfo is a single entry of the speaker listing.
type ProfileInfo struct {
	ID          string `json:"id"`
	SampleCount int    `json:"sample_count"`
}

// Identification is the result of matching a probe against the enrolled
// profiles. Speaker is "unknown" when no profile has a valid aggregate and
// "error" when the probe audio itself could not be encoded. Score is the raw
// cosine similarity in [-1, 1], rounded to 3 decimal places.
type Identification struct {
	Speaker string  `json:"speaker"`
	Score   float64 `json:"score"`
}

// SpeakerUnknown and SpeakerError are the reserved identification labels.
const (
	SpeakerUnknown = "unknown"
	SpeakerError   = "error"
)

// ProfileSnapshot is one speaker's entry in an exported profile snapshot.
type ProfileSnapshot struct {
	ID          string      `json:"id"`
	SampleCount int         `json:"sample_count"`
	Dimension   int         `json:"dimension"`
	Aggregate   Fingerprint `json:"aggregate"`
}

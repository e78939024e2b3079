package model

// Segment is one time-coded span of a transcript as returned by the
// transcription backend. Offsets are seconds into the merged audio.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the raw transcription result for one merged recording.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// LabeledSegment is a transcript segment with the speaker label attached by
// the meeting pipeline. Each segment is classified independently; there is no
// smoothing across adjacent segments.
type LabeledSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}

// MeetingSummary is the labeled transcript returned for one meeting.
type MeetingSummary struct {
	MeetingID  string           `json:"meeting_id"`
	Transcript string           `json:"transcript"`
	Segments   []LabeledSegment `json:"segments"`
}

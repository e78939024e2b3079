package model

import "time"

// SummaryRun is one recorded execution of the meeting summary pipeline.
type SummaryRun struct {
	ID           int
	MeetingID    string
	ChunkCount   int
	SegmentCount int
	Transcript   string
	DurationMs   int64
	HasError     int
	ErrorMessage string
	CreatedAt    time.Time
}

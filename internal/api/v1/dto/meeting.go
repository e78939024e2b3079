package dto

// ChunkUploadResponse confirms one stored meeting chunk.
type ChunkUploadResponse struct {
	Meeting string `json:"meeting"`
	Chunk   string `json:"chunk"`
}

// MeetingListResponse lists known meetings.
type MeetingListResponse struct {
	Meetings []string `json:"meetings"`
	Total    int      `json:"total"`
}

// DeleteMeetingResponse reports the outcome of a meeting deletion.
type DeleteMeetingResponse struct {
	Meeting  string `json:"meeting"`
	Deleted  bool   `json:"deleted"`
	Archived bool   `json:"archived"`
}

// HistoryQuery filters the summary run history.
type HistoryQuery struct {
	MeetingID string `form:"meeting_id"`
	Limit     int    `form:"limit"`
}

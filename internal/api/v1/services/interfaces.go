package services

import (
	"context"
	"io"

	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/app/model"
)

// SpeakerService defines the interface for speaker profile operations
type SpeakerService interface {
	Enroll(ctx context.Context, speakerID, audioPath string) (*dto.EnrollResponse, error)
	List(ctx context.Context) (*dto.SpeakerListResponse, error)
	Recordings(ctx context.Context) (*dto.RecordingsResponse, error)
	Rename(ctx context.Context, oldID, newID string) error
	Delete(ctx context.Context, speakerID string) (*dto.DeleteSpeakerResponse, error)
	Improve(ctx context.Context, speakerID, audioPath string) (*dto.ImproveResponse, error)
	Identify(ctx context.Context, audioPath string) (*dto.IdentifyResponse, error)
	ExportJSON(ctx context.Context, w io.Writer) error
	ExportExcel(ctx context.Context, outputPath string) error
}

// MeetingService defines the interface for meeting operations
type MeetingService interface {
	SaveChunk(ctx context.Context, meetingID, chunkName string, data []byte) (*dto.ChunkUploadResponse, error)
	List(ctx context.Context) (*dto.MeetingListResponse, error)
	Summary(ctx context.Context, meetingID string) (*model.MeetingSummary, error)
	Delete(ctx context.Context, meetingID string) (*dto.DeleteMeetingResponse, error)
	History(ctx context.Context, query dto.HistoryQuery) ([]model.SummaryRun, error)
}

// FeedbackService defines the interface for labeling corrections
type FeedbackService interface {
	Correct(ctx context.Context, req dto.CorrectionRequest) (*model.FeedbackRecord, error)
	History(ctx context.Context) ([]model.FeedbackRecord, error)
}

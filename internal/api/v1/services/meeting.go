package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/archive"
	"github.com/P0llen/speaker-detector/internal/app/audio"
	"github.com/P0llen/speaker-detector/internal/app/history"
	"github.com/P0llen/speaker-detector/internal/app/meeting"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/app/store"
	"github.com/P0llen/speaker-detector/internal/observability"
)

const defaultHistoryLimit = 20

// MeetingServiceImpl implements the MeetingService interface
type MeetingServiceImpl struct {
	meetings *store.MeetingStore
	pipeline *meeting.Pipeline
	audio    audio.Processor
	archiver archive.Archiver
	runs     history.SummaryRunDAO
	logger   *zap.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(meetings *store.MeetingStore, pipeline *meeting.Pipeline,
	proc audio.Processor, archiver archive.Archiver, runs history.SummaryRunDAO,
	logger *zap.Logger) MeetingService {
	return &MeetingServiceImpl{
		meetings: meetings,
		pipeline: pipeline,
		audio:    proc,
		archiver: archiver,
		runs:     runs,
		logger:   logger,
	}
}

// SaveChunk converts one uploaded audio chunk to the canonical 16 kHz mono
// WAV form and stores it under the meeting. Browser recorders upload WebM;
// storing the bytes verbatim would leave mislabeled audio for the merge.
func (s *MeetingServiceImpl) SaveChunk(ctx context.Context, meetingID, chunkName string, data []byte) (*dto.ChunkUploadResponse, error) {
	scratch, err := os.MkdirTemp("", "chunk-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	uploaded := filepath.Join(scratch, filepath.Base(chunkName))
	if err := os.WriteFile(uploaded, data, 0o644); err != nil {
		return nil, fmt.Errorf("spool chunk: %w", err)
	}
	converted := filepath.Join(scratch, "converted.wav")
	if err := s.audio.ConvertToWAV(ctx, uploaded, converted); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidAudio, "convert chunk %s: %v", filepath.Base(chunkName), err)
	}
	wav, err := os.ReadFile(converted)
	if err != nil {
		return nil, fmt.Errorf("read converted chunk: %w", err)
	}

	path, err := s.meetings.SaveChunk(meetingID, chunkName, wav)
	if err != nil {
		return nil, err
	}
	return &dto.ChunkUploadResponse{Meeting: meetingID, Chunk: path}, nil
}

// List returns all known meetings
func (s *MeetingServiceImpl) List(ctx context.Context) (*dto.MeetingListResponse, error) {
	ids, err := s.meetings.ListMeetings()
	if err != nil {
		return nil, err
	}
	return &dto.MeetingListResponse{Meetings: ids, Total: len(ids)}, nil
}

// Summary runs the labeling pipeline for one meeting
func (s *MeetingServiceImpl) Summary(ctx context.Context, meetingID string) (*model.MeetingSummary, error) {
	started := time.Now()
	summary, err := s.pipeline.GenerateSummary(ctx, meetingID)
	observability.RecordSummary(err == nil, time.Since(started).Seconds())
	return summary, err
}

// Delete archives the meeting's audio when an archiver is configured, then
// removes it from local storage. Archive failure aborts the delete so the
// local copy survives.
func (s *MeetingServiceImpl) Delete(ctx context.Context, meetingID string) (*dto.DeleteMeetingResponse, error) {
	chunks, err := s.meetings.Chunks(meetingID)
	if err != nil {
		return nil, err
	}

	archived := false
	if len(chunks) > 0 {
		if _, nop := s.archiver.(archive.NopArchiver); !nop {
			if err := s.archiver.ArchiveMeeting(ctx, meetingID, chunks); err != nil {
				return nil, err
			}
			archived = true
		}
	}

	deleted, err := s.meetings.Delete(meetingID)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteMeetingResponse{Meeting: meetingID, Deleted: deleted, Archived: archived}, nil
}

// History returns recent summary runs, optionally filtered by meeting
func (s *MeetingServiceImpl) History(ctx context.Context, query dto.HistoryQuery) ([]model.SummaryRun, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if query.MeetingID != "" {
		return s.runs.RecentByMeeting(query.MeetingID, limit)
	}
	return s.runs.Recent(limit)
}

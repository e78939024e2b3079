package meeting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/audio"
	"github.com/P0llen/speaker-detector/internal/app/history"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/app/store"
	"github.com/P0llen/speaker-detector/internal/app/transcriber"
)

// Identifier labels one audio file with the closest enrolled speaker.
// Satisfied by identify.Engine.
type Identifier interface {
	Identify(ctx context.Context, audioPath string) (model.Identification, error)
}

// Pipeline runs the meeting summary flow: merge the uploaded chunks,
// transcribe the merged audio, then label every transcript segment with a
// speaker. Each run, failed or not, is recorded in the history DAO.
type Pipeline struct {
	meetings    *store.MeetingStore
	audio       audio.Processor
	transcriber transcriber.Transcriber
	identifier  Identifier
	history     history.SummaryRunDAO
	logger      *zap.Logger
}

func NewPipeline(meetings *store.MeetingStore, proc audio.Processor, tr transcriber.Transcriber,
	identifier Identifier, dao history.SummaryRunDAO, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		meetings:    meetings,
		audio:       proc,
		transcriber: tr,
		identifier:  identifier,
		history:     dao,
		logger:      logger,
	}
}

// GenerateSummary produces the labeled transcript for one meeting.
//
// Failure modes surface as sentinels: ErrNoAudio when the meeting has no
// chunks, ErrMergeFailed when ffmpeg cannot concatenate them,
// ErrTranscriptionFailed when the transcription backend errors. A failure
// while labeling a single segment never fails the run; that segment falls
// back to the unknown speaker with score 0.
//
// All scratch artifacts (merged audio and per-segment slices) live in a
// temp directory that is removed on every path out of this function.
func (p *Pipeline) GenerateSummary(ctx context.Context, meetingID string) (*model.MeetingSummary, error) {
	started := time.Now()

	chunks, err := p.meetings.Chunks(meetingID)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	if len(chunks) == 0 {
		err := apperrors.Wrapf(apperrors.ErrNoAudio, "meeting %q has no chunks", meetingID)
		p.recordRun(meetingID, 0, nil, started, err)
		return nil, err
	}

	scratch, err := os.MkdirTemp("", "summary-"+filepath.Base(meetingID)+"-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			p.logger.Warn("scratch cleanup failed", zap.String("dir", scratch), zap.Error(rmErr))
		}
	}()

	merged := filepath.Join(scratch, "merged.wav")
	if err := p.audio.Concat(ctx, chunks, merged); err != nil {
		p.recordRun(meetingID, len(chunks), nil, started, err)
		return nil, err
	}
	p.logger.Info("chunks merged",
		zap.String("meeting", meetingID),
		zap.Int("chunks", len(chunks)))

	transcript, err := p.transcriber.Transcribe(ctx, merged)
	if err != nil {
		p.recordRun(meetingID, len(chunks), nil, started, err)
		return nil, err
	}

	summary := &model.MeetingSummary{
		MeetingID:  meetingID,
		Transcript: transcript.Text,
		Segments:   make([]model.LabeledSegment, 0, len(transcript.Segments)),
	}
	for i, seg := range transcript.Segments {
		summary.Segments = append(summary.Segments, p.labelSegment(ctx, scratch, merged, i, seg))
	}

	p.recordRun(meetingID, len(chunks), summary, started, nil)
	p.logger.Info("summary generated",
		zap.String("meeting", meetingID),
		zap.Int("segments", len(summary.Segments)),
		zap.Duration("took", time.Since(started)))
	return summary, nil
}

// labelSegment slices one segment span out of the merged audio and runs
// identification on it. Any failure degrades the segment to unknown/0.
func (p *Pipeline) labelSegment(ctx context.Context, scratch, merged string, index int, seg model.Segment) model.LabeledSegment {
	labeled := model.LabeledSegment{
		Start:   seg.Start,
		End:     seg.End,
		Speaker: model.SpeakerUnknown,
		Score:   0,
		Text:    seg.Text,
	}

	end := seg.End
	if end < seg.Start {
		end = seg.Start
	}

	slice := filepath.Join(scratch, fmt.Sprintf("segment_%04d.wav", index))
	if err := p.audio.ExtractSpan(ctx, merged, seg.Start, end, slice); err != nil {
		p.logger.Warn("segment slice failed",
			zap.Int("segment", index), zap.Error(err))
		return labeled
	}

	ident, err := p.identifier.Identify(ctx, slice)
	if err != nil || ident.Speaker == model.SpeakerError {
		p.logger.Warn("segment identification failed",
			zap.Int("segment", index), zap.Error(err))
		return labeled
	}

	labeled.Speaker = ident.Speaker
	labeled.Score = ident.Score
	return labeled
}

// recordRun writes a history row. History failures are logged, never fatal.
func (p *Pipeline) recordRun(meetingID string, chunkCount int, summary *model.MeetingSummary, started time.Time, runErr error) {
	run := model.SummaryRun{
		MeetingID:  meetingID,
		ChunkCount: chunkCount,
		DurationMs: time.Since(started).Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if runErr != nil {
		run.HasError = 1
		run.ErrorMessage = runErr.Error()
	} else if summary != nil {
		run.SegmentCount = len(summary.Segments)
		run.Transcript = summary.Transcript
	}
	if err := p.history.Record(run); err != nil {
		p.logger.Warn("history record failed",
			zap.String("meeting", meetingID), zap.Error(err))
	}
}

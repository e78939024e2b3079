package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/audio"
	"github.com/P0llen/speaker-detector/internal/app/export"
	"github.com/P0llen/speaker-detector/internal/app/identify"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/app/store"
	"github.com/P0llen/speaker-detector/internal/observability"
)

// CorrectionSource yields the correction audit history for exports.
type CorrectionSource interface {
	History() ([]model.FeedbackRecord, error)
}

// SpeakerServiceImpl implements the SpeakerService interface
type SpeakerServiceImpl struct {
	profiles    *store.ProfileStore
	engine      *identify.Engine
	audio       audio.Processor
	corrections CorrectionSource
}

// NewSpeakerService creates a new speaker service
func NewSpeakerService(profiles *store.ProfileStore, engine *identify.Engine, proc audio.Processor, corrections CorrectionSource) SpeakerService {
	return &SpeakerServiceImpl{
		profiles:    profiles,
		engine:      engine,
		audio:       proc,
		corrections: corrections,
	}
}

// Enroll normalizes the uploaded audio, stores it as the next reference
// sample and refreshes the speaker's aggregate.
func (s *SpeakerServiceImpl) Enroll(ctx context.Context, speakerID, audioPath string) (*dto.EnrollResponse, error) {
	normalized, cleanup, err := s.normalize(ctx, audioPath)
	if err != nil {
		observability.RecordEnrollment(false)
		return nil, err
	}
	defer cleanup()

	index, err := s.profiles.AddSample(ctx, speakerID, normalized)
	if err != nil {
		observability.RecordEnrollment(false)
		return nil, err
	}
	if _, err := s.profiles.RebuildAggregate(ctx, speakerID); err != nil {
		observability.RecordEnrollment(false)
		return nil, err
	}

	samples, err := s.profiles.Samples(speakerID)
	if err != nil {
		return nil, err
	}

	observability.RecordEnrollment(true)
	return &dto.EnrollResponse{
		Speaker:     speakerID,
		SampleIndex: index,
		SampleCount: len(samples),
	}, nil
}

// List returns all enrolled profiles
func (s *SpeakerServiceImpl) List(ctx context.Context) (*dto.SpeakerListResponse, error) {
	infos, err := s.profiles.ListProfiles()
	if err != nil {
		return nil, err
	}
	return &dto.SpeakerListResponse{Speakers: infos, Total: len(infos)}, nil
}

// Recordings maps each enrolled speaker to its sample filenames
func (s *SpeakerServiceImpl) Recordings(ctx context.Context) (*dto.RecordingsResponse, error) {
	infos, err := s.profiles.ListProfiles()
	if err != nil {
		return nil, err
	}
	recordings := make(map[string][]string, len(infos))
	total := 0
	for _, info := range infos {
		samples, err := s.profiles.Samples(info.ID)
		if err != nil {
			return nil, err
		}
		recordings[info.ID] = samples
		total += len(samples)
	}
	return &dto.RecordingsResponse{Recordings: recordings, Total: total}, nil
}

// Rename renames a profile
func (s *SpeakerServiceImpl) Rename(ctx context.Context, oldID, newID string) error {
	return s.profiles.Rename(oldID, newID)
}

// Delete removes a profile and its samples
func (s *SpeakerServiceImpl) Delete(ctx context.Context, speakerID string) (*dto.DeleteSpeakerResponse, error) {
	deleted, err := s.profiles.Delete(speakerID)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteSpeakerResponse{Speaker: speakerID, Deleted: deleted}, nil
}

// Improve enrolls one more reference sample for an existing speaker and
// rebuilds the aggregate from everything stored
func (s *SpeakerServiceImpl) Improve(ctx context.Context, speakerID, audioPath string) (*dto.ImproveResponse, error) {
	if !s.profiles.Exists(speakerID) {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "speaker %s", speakerID)
	}

	normalized, cleanup, err := s.normalize(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if _, err := s.profiles.AddSample(ctx, speakerID, normalized); err != nil {
		return nil, err
	}
	fp, err := s.profiles.RebuildAggregate(ctx, speakerID)
	if err != nil {
		return nil, err
	}
	samples, err := s.profiles.Samples(speakerID)
	if err != nil {
		return nil, err
	}
	return &dto.ImproveResponse{
		Speaker:     speakerID,
		SampleCount: len(samples),
		Dimension:   fp.Dimension(),
	}, nil
}

// Identify matches the uploaded probe against the enrolled profiles
func (s *SpeakerServiceImpl) Identify(ctx context.Context, audioPath string) (*dto.IdentifyResponse, error) {
	normalized, cleanup, err := s.normalize(ctx, audioPath)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAudio) {
			observability.RecordIdentification(model.SpeakerError)
			return &dto.IdentifyResponse{Speaker: model.SpeakerError, Score: 0}, nil
		}
		return nil, err
	}
	defer cleanup()

	ident, err := s.engine.Identify(ctx, normalized)
	if err != nil {
		return nil, err
	}

	switch ident.Speaker {
	case model.SpeakerUnknown, model.SpeakerError:
		observability.RecordIdentification(ident.Speaker)
	default:
		observability.RecordIdentification("matched")
	}
	return &dto.IdentifyResponse{Speaker: ident.Speaker, Score: ident.Score}, nil
}

// ExportJSON writes the full profile snapshot
func (s *SpeakerServiceImpl) ExportJSON(ctx context.Context, w io.Writer) error {
	snapshots, err := s.profiles.Export()
	if err != nil {
		return err
	}
	return export.ToJSON(snapshots, w)
}

// ExportExcel writes the profile summary spreadsheet with the correction
// history on a second sheet
func (s *SpeakerServiceImpl) ExportExcel(ctx context.Context, outputPath string) error {
	snapshots, err := s.profiles.Export()
	if err != nil {
		return err
	}
	corrections, err := s.corrections.History()
	if err != nil {
		return err
	}
	return export.ToExcel(snapshots, corrections, outputPath)
}

// normalize converts an upload to the canonical 16 kHz mono WAV form in a
// scratch file. A conversion failure means the audio is unusable.
func (s *SpeakerServiceImpl) normalize(ctx context.Context, audioPath string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "normalized-*.wav")
	if err != nil {
		return "", nil, fmt.Errorf("create scratch file: %w", err)
	}
	tmp.Close()

	cleanup := func() { os.Remove(tmp.Name()) }
	if err := s.audio.ConvertToWAV(ctx, audioPath, tmp.Name()); err != nil {
		cleanup()
		return "", nil, apperrors.Wrapf(apperrors.ErrInvalidAudio, "normalize %s: %v", filepath.Base(audioPath), err)
	}
	return tmp.Name(), cleanup, nil
}

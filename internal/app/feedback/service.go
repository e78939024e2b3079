package feedback

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/app/store"
)

// Service applies labeling corrections: a sample that was attributed to the
// wrong speaker is reassigned to the right one and both profiles relearn
// their aggregate from what is actually on disk afterwards.
type Service struct {
	profiles *store.ProfileStore
	log      *AuditLog
	logger   *zap.Logger
}

func NewService(profiles *store.ProfileStore, log *AuditLog, logger *zap.Logger) *Service {
	return &Service{profiles: profiles, log: log, logger: logger}
}

// Correct reassigns filename from oldSpeaker to correctSpeaker, keeping the
// filename, then rebuilds the affected aggregates. With deleteOriginal false
// the sample is copied instead of moved and the old profile keeps it. The
// audit record is appended only after everything else succeeded, so the
// journal never claims a correction that did not happen. An oldSpeaker left
// without samples simply loses its aggregate; that is not an error.
func (s *Service) Correct(ctx context.Context, oldSpeaker, correctSpeaker, filename string, deleteOriginal bool) (*model.FeedbackRecord, error) {
	if oldSpeaker == correctSpeaker {
		return nil, apperrors.Newf("old and correct speaker are both %q", oldSpeaker)
	}
	filename = filepath.Base(filename)

	if err := s.profiles.MoveSample(oldSpeaker, correctSpeaker, filename, deleteOriginal); err != nil {
		return nil, err
	}

	if _, err := s.profiles.RebuildAggregate(ctx, correctSpeaker); err != nil {
		return nil, fmt.Errorf("rebuild gaining profile: %w", err)
	}
	if deleteOriginal {
		if _, err := s.profiles.RebuildAggregate(ctx, oldSpeaker); err != nil && !errors.Is(err, apperrors.ErrEmptyProfile) {
			return nil, fmt.Errorf("rebuild losing profile: %w", err)
		}
	}

	record := model.FeedbackRecord{
		OldSpeaker:     oldSpeaker,
		CorrectSpeaker: correctSpeaker,
		Filename:       filename,
		DeleteOriginal: deleteOriginal,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.log.Append(record); err != nil {
		return nil, err
	}

	s.logger.Info("correction applied",
		zap.String("from", oldSpeaker),
		zap.String("to", correctSpeaker),
		zap.String("sample", filename))
	return &record, nil
}

// History returns all recorded corrections, oldest first.
func (s *Service) History() ([]model.FeedbackRecord, error) {
	return s.log.Records()
}

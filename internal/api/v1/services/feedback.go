package services

import (
	"context"

	"github.com/P0llen/speaker-detector/internal/api/v1/dto"
	"github.com/P0llen/speaker-detector/internal/app/feedback"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/observability"
)

// FeedbackServiceImpl implements the FeedbackService interface
type FeedbackServiceImpl struct {
	corrections *feedback.Service
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(corrections *feedback.Service) FeedbackService {
	return &FeedbackServiceImpl{corrections: corrections}
}

// Correct applies one labeling correction
func (s *FeedbackServiceImpl) Correct(ctx context.Context, req dto.CorrectionRequest) (*model.FeedbackRecord, error) {
	record, err := s.corrections.Correct(ctx, req.OldSpeaker, req.CorrectSpeaker, req.Filename, req.ShouldDeleteOriginal())
	if err != nil {
		return nil, err
	}
	observability.RecordCorrection()
	return record, nil
}

// History returns the applied corrections in append order
func (s *FeedbackServiceImpl) History(ctx context.Context) ([]model.FeedbackRecord, error) {
	return s.corrections.History()
}

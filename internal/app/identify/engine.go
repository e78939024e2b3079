package identify

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/encoder"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/app/similarity"
)

// AggregateSource yields a consistent snapshot of all cached aggregate
// fingerprints, keyed by speaker id.
type AggregateSource interface {
	Aggregates() (map[string]model.Fingerprint, error)
}

// Engine matches a probe fingerprint against the enrolled aggregates by
// cosine similarity. One comparison per speaker, so identification cost is
// O(enrolled speakers) regardless of per-speaker sample counts. The engine
// applies no threshold; callers decide what score is a confident match.
type Engine struct {
	encoder encoder.Encoder
	source  AggregateSource
	logger  *zap.Logger
}

// NewEngine creates an identification engine.
func NewEngine(enc encoder.Encoder, source AggregateSource, logger *zap.Logger) *Engine {
	return &Engine{encoder: enc, source: source, logger: logger}
}

// Identify encodes the probe audio and returns the best-matching speaker with
// its similarity score. The result is always structured:
//   - unreadable/empty probe audio → {"error", 0}
//   - empty store or no valid aggregates → {"unknown", 0}
//
// The error return is reserved for store access failures.
func (e *Engine) Identify(ctx context.Context, audioPath string) (model.Identification, error) {
	probe, err := e.encoder.Encode(ctx, audioPath)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAudio) {
			e.logger.Warn("probe audio rejected", zap.String("path", audioPath), zap.Error(err))
			return model.Identification{Speaker: model.SpeakerError, Score: 0}, nil
		}
		return model.Identification{}, fmt.Errorf("encode probe: %w", err)
	}

	return e.Match(probe)
}

// Match compares an already-computed probe fingerprint against the snapshot.
// Ties break towards the first speaker in sorted-id order; near-ties should
// be treated as ambiguous by callers.
func (e *Engine) Match(probe model.Fingerprint) (model.Identification, error) {
	aggregates, err := e.source.Aggregates()
	if err != nil {
		return model.Identification{}, fmt.Errorf("load aggregates: %w", err)
	}
	if len(aggregates) == 0 {
		return model.Identification{Speaker: model.SpeakerUnknown, Score: 0}, nil
	}

	ids := lo.Keys(aggregates)
	sort.Strings(ids)

	best := model.Identification{Speaker: model.SpeakerUnknown, Score: 0}
	found := false
	for _, id := range ids {
		score, err := similarity.Cosine(probe, aggregates[id])
		if err != nil {
			e.logger.Warn("skipping incomparable aggregate",
				zap.String("speaker", id), zap.Error(err))
			continue
		}
		if !found || score > best.Score {
			best = model.Identification{Speaker: id, Score: score}
			found = true
		}
	}
	if !found {
		return model.Identification{Speaker: model.SpeakerUnknown, Score: 0}, nil
	}

	best.Score = similarity.Round3(best.Score)
	return best, nil
}

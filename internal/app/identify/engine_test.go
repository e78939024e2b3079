package identify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/P0llen/speaker-detector/internal/app/encoder"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/app/store"
)

type stubSource struct {
	aggregates map[string]model.Fingerprint
}

func (s *stubSource) Aggregates() (map[string]model.Fingerprint, error) {
	return s.aggregates, nil
}

func writeAudio(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIdentifyEmptyStore(t *testing.T) {
	engine := NewEngine(encoder.NewMockEncoder(16), &stubSource{aggregates: map[string]model.Fingerprint{}}, zap.NewNop())

	result, err := engine.Identify(context.Background(), writeAudio(t, "probe.wav", "anyone"))
	require.NoError(t, err)
	assert.Equal(t, model.Identification{Speaker: model.SpeakerUnknown, Score: 0}, result)
}

func TestIdentifyInvalidAudioDegrades(t *testing.T) {
	source := &stubSource{aggregates: map[string]model.Fingerprint{"alice": {1, 0}}}
	engine := NewEngine(encoder.NewMockEncoder(2), source, zap.NewNop())

	result, err := engine.Identify(context.Background(), writeAudio(t, "empty.wav", ""))
	require.NoError(t, err, "invalid audio must yield a structured result, not an error")
	assert.Equal(t, model.Identification{Speaker: model.SpeakerError, Score: 0}, result)
}

func TestIdentifyExactMatchScoresOne(t *testing.T) {
	enc := encoder.NewMockEncoder(64)
	probe := writeAudio(t, "alice.wav", "the voice of alice")

	fp, err := enc.Encode(context.Background(), probe)
	require.NoError(t, err)

	engine := NewEngine(enc, &stubSource{aggregates: map[string]model.Fingerprint{"alice": fp}}, zap.NewNop())

	result, err := engine.Identify(context.Background(), probe)
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Speaker)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestMatchPicksHighestSimilarity(t *testing.T) {
	source := &stubSource{aggregates: map[string]model.Fingerprint{
		"alice": {0, 1, 0},
		"bob":   {1, 0.1, 0},
	}}
	engine := NewEngine(encoder.NewMockEncoder(3), source, zap.NewNop())

	result, err := engine.Match(model.Fingerprint{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, "bob", result.Speaker)
	assert.Greater(t, result.Score, 0.9)
}

func TestMatchTieBreaksDeterministically(t *testing.T) {
	source := &stubSource{aggregates: map[string]model.Fingerprint{
		"zoe":   {1, 0},
		"alice": {2, 0},
	}}
	engine := NewEngine(encoder.NewMockEncoder(2), source, zap.NewNop())

	// Both aggregates are colinear with the probe; the first id in sorted
	// order wins the tie, every time.
	for i := 0; i < 5; i++ {
		result, err := engine.Match(model.Fingerprint{3, 0})
		require.NoError(t, err)
		assert.Equal(t, "alice", result.Speaker)
	}
}

func TestMatchSkipsIncomparableAggregates(t *testing.T) {
	source := &stubSource{aggregates: map[string]model.Fingerprint{
		"broken": {1, 0, 0, 0},
		"alice":  {1, 0},
	}}
	engine := NewEngine(encoder.NewMockEncoder(2), source, zap.NewNop())

	result, err := engine.Match(model.Fingerprint{1, 0})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Speaker)
}

func TestMatchScoreRoundedTo3Decimals(t *testing.T) {
	source := &stubSource{aggregates: map[string]model.Fingerprint{
		"alice": {1, 1, 0},
	}}
	engine := NewEngine(encoder.NewMockEncoder(3), source, zap.NewNop())

	result, err := engine.Match(model.Fingerprint{1, 0, 0})
	require.NoError(t, err)
	// cos = 1/sqrt(2) = 0.70710..., reported as 0.707
	assert.Equal(t, 0.707, result.Score)
}

func TestIdentifyAgainstProfileStoreSurvivesRename(t *testing.T) {
	ctx := context.Background()
	enc := encoder.NewMockEncoder(32)
	profiles, err := store.NewProfileStore(t.TempDir(), enc, zap.NewNop())
	require.NoError(t, err)

	probe := writeAudio(t, "voice.wav", "a very distinctive voice")
	_, err = profiles.AddSample(ctx, "alice", probe)
	require.NoError(t, err)
	_, err = profiles.RebuildAggregate(ctx, "alice")
	require.NoError(t, err)

	engine := NewEngine(enc, profiles, zap.NewNop())

	before, err := engine.Identify(ctx, probe)
	require.NoError(t, err)
	assert.Equal(t, "alice", before.Speaker)

	require.NoError(t, profiles.Rename("alice", "alicia"))

	after, err := engine.Identify(ctx, probe)
	require.NoError(t, err)
	assert.Equal(t, "alicia", after.Speaker)
	assert.Equal(t, before.Score, after.Score, "rename must not change the score")
}

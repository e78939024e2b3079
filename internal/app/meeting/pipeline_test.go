package meeting

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/model"
	"github.com/P0llen/speaker-detector/internal/app/store"
	"github.com/P0llen/speaker-detector/internal/app/transcriber"
)

type span struct {
	start, end float64
}

// fakeProcessor fabricates output files without shelling out to ffmpeg.
type fakeProcessor struct {
	concatErr  error
	extractErr map[int]error

	mergedPath string
	spans      []span
}

func (f *fakeProcessor) ConvertToWAV(_ context.Context, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func (f *fakeProcessor) Concat(_ context.Context, inputPaths []string, outputPath string) error {
	if f.concatErr != nil {
		return f.concatErr
	}
	f.mergedPath = outputPath
	var merged []byte
	for _, p := range inputPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		merged = append(merged, data...)
	}
	return os.WriteFile(outputPath, merged, 0o644)
}

func (f *fakeProcessor) ExtractSpan(_ context.Context, _ string, start, end float64, outputPath string) error {
	index := len(f.spans)
	f.spans = append(f.spans, span{start: start, end: end})
	if err, ok := f.extractErr[index]; ok {
		return err
	}
	return os.WriteFile(outputPath, []byte(fmt.Sprintf("slice %d", index)), 0o644)
}

func (f *fakeProcessor) Duration(context.Context, string) (int, error) {
	return 1, nil
}

// fakeIdentifier returns canned identifications keyed by call order.
type fakeIdentifier struct {
	results []model.Identification
	errs    []error
	calls   int
}

func (f *fakeIdentifier) Identify(context.Context, string) (model.Identification, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var res model.Identification
	if i < len(f.results) {
		res = f.results[i]
	}
	return res, err
}

type recordingDAO struct {
	runs []model.SummaryRun
	err  error
}

func (d *recordingDAO) Close() error { return nil }

func (d *recordingDAO) Record(run model.SummaryRun) error {
	if d.err != nil {
		return d.err
	}
	d.runs = append(d.runs, run)
	return nil
}

func (d *recordingDAO) RecentByMeeting(string, int) ([]model.SummaryRun, error) { return nil, nil }

func (d *recordingDAO) Recent(int) ([]model.SummaryRun, error) { return nil, nil }

func newMeetingStore(t *testing.T) *store.MeetingStore {
	t.Helper()
	s, err := store.NewMeetingStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func saveChunks(t *testing.T, s *store.MeetingStore, meetingID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := s.SaveChunk(meetingID, fmt.Sprintf("chunk_%03d.wav", i), []byte(fmt.Sprintf("audio %d", i)))
		require.NoError(t, err)
	}
}

func TestGenerateSummaryNoChunks(t *testing.T) {
	dao := &recordingDAO{}
	p := NewPipeline(newMeetingStore(t), &fakeProcessor{}, &transcriber.MockTranscriber{}, &fakeIdentifier{}, dao, zap.NewNop())

	_, err := p.GenerateSummary(context.Background(), "empty-meeting")
	assert.ErrorIs(t, err, apperrors.ErrNoAudio)

	require.Len(t, dao.runs, 1)
	assert.Equal(t, 1, dao.runs[0].HasError)
	assert.Equal(t, 0, dao.runs[0].ChunkCount)
}

func TestGenerateSummaryMergeFailure(t *testing.T) {
	s := newMeetingStore(t)
	saveChunks(t, s, "m1", 2)

	dao := &recordingDAO{}
	proc := &fakeProcessor{concatErr: apperrors.Wrap(apperrors.ErrMergeFailed, "ffmpeg concat")}
	p := NewPipeline(s, proc, &transcriber.MockTranscriber{}, &fakeIdentifier{}, dao, zap.NewNop())

	_, err := p.GenerateSummary(context.Background(), "m1")
	assert.ErrorIs(t, err, apperrors.ErrMergeFailed)

	require.Len(t, dao.runs, 1)
	assert.Equal(t, 1, dao.runs[0].HasError)
	assert.Equal(t, 2, dao.runs[0].ChunkCount)
	assert.Contains(t, dao.runs[0].ErrorMessage, "merge")
}

func TestGenerateSummaryTranscriptionFailure(t *testing.T) {
	s := newMeetingStore(t)
	saveChunks(t, s, "m1", 1)

	dao := &recordingDAO{}
	tr := &transcriber.MockTranscriber{Err: apperrors.Wrap(apperrors.ErrTranscriptionFailed, "backend down")}
	proc := &fakeProcessor{}
	p := NewPipeline(s, proc, tr, &fakeIdentifier{}, dao, zap.NewNop())

	_, err := p.GenerateSummary(context.Background(), "m1")
	assert.ErrorIs(t, err, apperrors.ErrTranscriptionFailed)

	require.Len(t, dao.runs, 1)
	assert.Equal(t, 1, dao.runs[0].HasError)

	// the merged scratch file must be gone even on the failure path
	assert.NoFileExists(t, proc.mergedPath)
}

func TestGenerateSummaryLabelsSegments(t *testing.T) {
	s := newMeetingStore(t)
	saveChunks(t, s, "standup", 3)

	tr := &transcriber.MockTranscriber{Transcript: &model.Transcript{
		Text: "hello world goodbye",
		Segments: []model.Segment{
			{Start: 0, End: 2.5, Text: "hello world"},
			{Start: 2.5, End: 4, Text: "goodbye"},
		},
	}}
	ident := &fakeIdentifier{results: []model.Identification{
		{Speaker: "alice", Score: 0.912},
		{Speaker: "bob", Score: 0.734},
	}}
	proc := &fakeProcessor{}
	dao := &recordingDAO{}
	p := NewPipeline(s, proc, tr, ident, dao, zap.NewNop())

	summary, err := p.GenerateSummary(context.Background(), "standup")
	require.NoError(t, err)

	assert.Equal(t, "standup", summary.MeetingID)
	assert.Equal(t, "hello world goodbye", summary.Transcript)
	require.Len(t, summary.Segments, 2)
	assert.Equal(t, model.LabeledSegment{Start: 0, End: 2.5, Speaker: "alice", Score: 0.912, Text: "hello world"}, summary.Segments[0])
	assert.Equal(t, "bob", summary.Segments[1].Speaker)

	// each segment is sliced from the merged audio at its own span
	require.Len(t, proc.spans, 2)
	assert.Equal(t, span{0, 2.5}, proc.spans[0])

	require.Len(t, dao.runs, 1)
	assert.Equal(t, 0, dao.runs[0].HasError)
	assert.Equal(t, 3, dao.runs[0].ChunkCount)
	assert.Equal(t, 2, dao.runs[0].SegmentCount)
	assert.Equal(t, "hello world goodbye", dao.runs[0].Transcript)

	assert.NoFileExists(t, proc.mergedPath)
}

func TestGenerateSummarySegmentFailuresDegrade(t *testing.T) {
	s := newMeetingStore(t)
	saveChunks(t, s, "m1", 1)

	tr := &transcriber.MockTranscriber{Transcript: &model.Transcript{
		Text: "a b c",
		Segments: []model.Segment{
			{Start: 0, End: 1, Text: "a"},
			{Start: 1, End: 2, Text: "b"},
			{Start: 2, End: 3, Text: "c"},
		},
	}}
	// segment 0 fails to slice, segment 1 fails to identify, segment 2
	// comes back as an unreadable probe
	proc := &fakeProcessor{extractErr: map[int]error{0: fmt.Errorf("ffmpeg exploded")}}
	ident := &fakeIdentifier{
		results: []model.Identification{
			{},
			{Speaker: model.SpeakerError, Score: 0},
		},
		errs: []error{fmt.Errorf("aggregates unreadable"), nil},
	}
	dao := &recordingDAO{}
	p := NewPipeline(s, proc, tr, ident, dao, zap.NewNop())

	summary, err := p.GenerateSummary(context.Background(), "m1")
	require.NoError(t, err)

	require.Len(t, summary.Segments, 3)
	for i, seg := range summary.Segments {
		assert.Equal(t, model.SpeakerUnknown, seg.Speaker, "segment %d", i)
		assert.Zero(t, seg.Score, "segment %d", i)
	}
	// transcript text survives even when labeling degrades
	assert.Equal(t, "b", summary.Segments[1].Text)
}

func TestGenerateSummaryClampsInvertedSpan(t *testing.T) {
	s := newMeetingStore(t)
	saveChunks(t, s, "m1", 1)

	tr := &transcriber.MockTranscriber{Transcript: &model.Transcript{
		Text:     "x",
		Segments: []model.Segment{{Start: 5, End: 4.2, Text: "x"}},
	}}
	proc := &fakeProcessor{}
	p := NewPipeline(s, proc, tr, &fakeIdentifier{results: []model.Identification{{Speaker: "alice", Score: 0.9}}}, &recordingDAO{}, zap.NewNop())

	summary, err := p.GenerateSummary(context.Background(), "m1")
	require.NoError(t, err)

	require.Len(t, proc.spans, 1)
	assert.Equal(t, span{5, 5}, proc.spans[0])
	// reported offsets keep the backend's values
	assert.Equal(t, 5.0, summary.Segments[0].Start)
	assert.Equal(t, 4.2, summary.Segments[0].End)
}

func TestGenerateSummaryHistoryFailureIsNotFatal(t *testing.T) {
	s := newMeetingStore(t)
	saveChunks(t, s, "m1", 1)

	tr := &transcriber.MockTranscriber{Transcript: &model.Transcript{Text: "ok"}}
	dao := &recordingDAO{err: fmt.Errorf("db gone")}
	p := NewPipeline(s, &fakeProcessor{}, tr, &fakeIdentifier{}, dao, zap.NewNop())

	summary, err := p.GenerateSummary(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "ok", summary.Transcript)
}

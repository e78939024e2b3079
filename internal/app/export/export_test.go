package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

func sampleSnapshots() []model.ProfileSnapshot {
	return []model.ProfileSnapshot{
		{ID: "alice", SampleCount: 3, Dimension: 4, Aggregate: model.Fingerprint{0.1, 0.2, 0.3, 0.4}},
		{ID: "bob", SampleCount: 1, Dimension: 4, Aggregate: model.Fingerprint{0.5, 0.6, 0.7, 0.8}},
		{ID: "pending", SampleCount: 2},
	}
}

func TestToJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToJSON(sampleSnapshots(), &buf))

	var decoded []model.ProfileSnapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "alice", decoded[0].ID)
	assert.Equal(t, model.Fingerprint{0.1, 0.2, 0.3, 0.4}, decoded[0].Aggregate)
	assert.Empty(t, decoded[2].Aggregate)
}

func TestToExcelWritesOneRowPerSpeaker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speakers.xlsx")
	require.NoError(t, ToExcel(sampleSnapshots(), nil, path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Speakers", sheet.Name)
	require.Len(t, sheet.Rows, 4) // header + 3 speakers

	assert.Equal(t, "Speaker", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "alice", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "3", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "(none)", sheet.Rows[3].Cells[3].Value)
}

func TestToExcelAddsCorrectionSheet(t *testing.T) {
	corrections := []model.FeedbackRecord{
		{OldSpeaker: "unknown", CorrectSpeaker: "alice", Filename: "2.wav",
			CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)},
	}

	path := filepath.Join(t.TempDir(), "speakers.xlsx")
	require.NoError(t, ToExcel(sampleSnapshots(), corrections, path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)

	sheet := file.Sheets[1]
	assert.Equal(t, "Corrections", sheet.Name)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "2026-03-14 10:30:00", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "unknown", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "alice", sheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "2.wav", sheet.Rows[1].Cells[3].Value)
}

func TestAggregatePreviewTruncates(t *testing.T) {
	long := make(model.Fingerprint, 16)
	for i := range long {
		long[i] = 0.5
	}
	preview := aggregatePreview(long)
	assert.Contains(t, preview, "...")

	short := aggregatePreview(model.Fingerprint{0.25})
	assert.Equal(t, "0.2500", short)
}

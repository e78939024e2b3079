package pg

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P0llen/speaker-detector/internal/app/history"
	"github.com/P0llen/speaker-detector/internal/app/model"
)

func TestPostgresDB_Interface(t *testing.T) {
	var _ history.SummaryRunDAO = (*PostgresDB)(nil)
}

func TestPostgresDB_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pdb := NewWithDB(db)
	now := time.Now()

	run := model.SummaryRun{
		MeetingID:    "standup-0830",
		ChunkCount:   3,
		SegmentCount: 12,
		Transcript:   "full transcript text",
		DurationMs:   5400,
		HasError:     0,
		ErrorMessage: "",
		CreatedAt:    now,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO summary_runs`)).
		WithArgs("standup-0830", 3, 12, "full transcript text", int64(5400), 0, "", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = pdb.Record(run)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_RecordFailedRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pdb := NewWithDB(db)
	now := time.Now()

	run := model.SummaryRun{
		MeetingID:    "standup-0830",
		HasError:     1,
		ErrorMessage: "transcription failed",
		CreatedAt:    now,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO summary_runs`)).
		WithArgs("standup-0830", 0, 0, "", int64(0), 1, "transcription failed", now).
		WillReturnResult(sqlmock.NewResult(2, 1))

	assert.NoError(t, pdb.Record(run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_RecentByMeeting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pdb := NewWithDB(db)
	now := time.Now()

	columns := []string{"id", "meeting_id", "chunk_count", "segment_count", "transcript", "duration_ms", "has_error", "error_message", "created_at"}
	rows := sqlmock.NewRows(columns).
		AddRow(2, "standup-0830", 3, 12, "second run", int64(5100), 0, "", now).
		AddRow(1, "standup-0830", 3, 0, "", int64(800), 1, "no audio chunks", now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM summary_runs`)).
		WithArgs("standup-0830", 10).
		WillReturnRows(rows)

	runs, err := pdb.RecentByMeeting("standup-0830", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second run", runs[0].Transcript)
	assert.Equal(t, 1, runs[1].HasError)
	assert.Equal(t, "no audio chunks", runs[1].ErrorMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_RecentEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pdb := NewWithDB(db)

	columns := []string{"id", "meeting_id", "chunk_count", "segment_count", "transcript", "duration_ms", "has_error", "error_message", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM summary_runs`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(columns))

	runs, err := pdb.Recent(5)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS summary_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	meeting_id TEXT NOT NULL,
	chunk_count INTEGER NOT NULL,
	segment_count INTEGER NOT NULL,
	transcript TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL,
	has_error INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summary_runs_meeting ON summary_runs(meeting_id);
`

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (creating if needed) the history database at dbFilePath
// and ensures the schema exists.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", filepath.Clean(dbFilePath)))
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Record(run model.SummaryRun) error {
	insertSQL := `INSERT INTO summary_runs (meeting_id, chunk_count, segment_count, transcript, duration_ms, has_error, error_message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.Exec(insertSQL, run.MeetingID, run.ChunkCount, run.SegmentCount, run.Transcript,
		run.DurationMs, run.HasError, run.ErrorMessage, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert failed: %v", err)
	}
	return nil
}

func (sdb *SQLiteDB) RecentByMeeting(meetingID string, limit int) ([]model.SummaryRun, error) {
	sqlStr := `
		SELECT id, meeting_id, chunk_count, segment_count, transcript, duration_ms, has_error, error_message, created_at
		FROM summary_runs
		WHERE meeting_id = ?
		ORDER BY created_at DESC
		LIMIT ?;`
	rows, err := sdb.db.Query(sqlStr, meetingID, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %v", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (sdb *SQLiteDB) Recent(limit int) ([]model.SummaryRun, error) {
	sqlStr := `
		SELECT id, meeting_id, chunk_count, segment_count, transcript, duration_ms, has_error, error_message, created_at
		FROM summary_runs
		ORDER BY created_at DESC
		LIMIT ?;`
	rows, err := sdb.db.Query(sqlStr, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %v", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]model.SummaryRun, error) {
	runs := make([]model.SummaryRun, 0)
	for rows.Next() {
		var r model.SummaryRun
		err := rows.Scan(&r.ID, &r.MeetingID, &r.ChunkCount, &r.SegmentCount, &r.Transcript,
			&r.DurationMs, &r.HasError, &r.ErrorMessage, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %v", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %v", err)
	}
	return runs, nil
}

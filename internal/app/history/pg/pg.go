package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	return &PostgresDB{db: db}, nil
}

// NewWithDB wraps an existing connection. Used by tests.
func NewWithDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) Record(run model.SummaryRun) error {
	insertSQL := `INSERT INTO summary_runs (meeting_id, chunk_count, segment_count, transcript, duration_ms, has_error, error_message, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := pdb.db.Exec(insertSQL, run.MeetingID, run.ChunkCount, run.SegmentCount, run.Transcript,
		run.DurationMs, run.HasError, run.ErrorMessage, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert failed: %v", err)
	}
	return nil
}

func (pdb *PostgresDB) RecentByMeeting(meetingID string, limit int) ([]model.SummaryRun, error) {
	query := `
		SELECT id, meeting_id, chunk_count, segment_count, transcript, duration_ms, has_error, error_message, created_at
		FROM summary_runs
		WHERE meeting_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := pdb.db.Query(query, meetingID, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %v", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (pdb *PostgresDB) Recent(limit int) ([]model.SummaryRun, error) {
	query := `
		SELECT id, meeting_id, chunk_count, segment_count, transcript, duration_ms, has_error, error_message, created_at
		FROM summary_runs
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := pdb.db.Query(query, limit)
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

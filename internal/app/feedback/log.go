package feedback

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/P0llen/speaker-detector/internal/app/model"
)

const logFilename = "feedback.log"

// AuditLog is the append-only correction journal, one JSON object per line.
// Existing lines are never rewritten.
type AuditLog struct {
	mu   sync.Mutex
	path string
}

func NewAuditLog(dataDir string) *AuditLog {
	return &AuditLog{path: filepath.Join(dataDir, logFilename)}
}

// Append writes one record to the end of the journal.
func (l *AuditLog) Append(record model.FeedbackRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal feedback record: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open feedback log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append feedback record: %w", err)
	}
	return f.Sync()
}

// Records reads the whole journal in append order. A missing journal is an
// empty one. Unparseable lines are skipped so one bad write cannot hide the
// rest of the history.
func (l *AuditLog) Records() ([]model.FeedbackRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.FeedbackRecord{}, nil
		}
		return nil, fmt.Errorf("open feedback log: %w", err)
	}
	defer f.Close()

	records := make([]model.FeedbackRecord, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record model.FeedbackRecord
		if err := json.Unmarshal(line, &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feedback log: %w", err)
	}
	return records, nil
}

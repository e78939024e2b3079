package history

import (
	"github.com/P0llen/speaker-detector/internal/app/model"
)

// SummaryRunDAO persists one row per meeting summary pipeline execution,
// successful or failed.
type SummaryRunDAO interface {
	Close() error

	Record(run model.SummaryRun) error

	RecentByMeeting(meetingID string, limit int) ([]model.SummaryRun, error)

	Recent(limit int) ([]model.SummaryRun, error)
}

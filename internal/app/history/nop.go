package history

import (
	"github.com/P0llen/speaker-detector/internal/app/model"
)

// NopDAO discards every run. Used when no history backend is configured.
type NopDAO struct{}

func NewNopDAO() *NopDAO { return &NopDAO{} }

func (NopDAO) Close() error { return nil }

func (NopDAO) Record(model.SummaryRun) error { return nil }

func (NopDAO) RecentByMeeting(string, int) ([]model.SummaryRun, error) {
	return []model.SummaryRun{}, nil
}

func (NopDAO) Recent(int) ([]model.SummaryRun, error) {
	return []model.SummaryRun{}, nil
}

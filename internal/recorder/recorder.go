package recorder

import (
	"time"

	"DailyMarketBot/internal/model"
)

// Run status values.
const (
	RunOK     = "OK"
	RunFailed = "FAILED"
)

// RunRecord summarizes one scheduled batch.
type RunRecord struct {
	RunID     string
	AsOf      string
	StartedAt time.Time
	Tickers   []string
	Status    string
	Error     string
}

// StoredNote is a payload read back from history.
type StoredNote struct {
	RunID      string
	RecordedAt time.Time
	Payload    model.DailyPayload
}

// Recorder persists scheduled runs for later analysis.
type Recorder interface {
	RecordRun(run *RunRecord) error
	RecordDailyNote(runID string, p *model.DailyPayload) error
	RecentNotes(ticker string, limit int) ([]StoredNote, error)
	Close() error
}

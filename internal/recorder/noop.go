package recorder

import "DailyMarketBot/internal/model"

// NoopRecorder is used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunRecord) error                          { return nil }
func (n *NoopRecorder) RecordDailyNote(_ string, _ *model.DailyPayload) error { return nil }
func (n *NoopRecorder) RecentNotes(_ string, _ int) ([]StoredNote, error)     { return nil, nil }
func (n *NoopRecorder) Close() error                                          { return nil }

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"DailyMarketBot/internal/collector"
	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/model"
	"DailyMarketBot/internal/notifier"
	"DailyMarketBot/internal/recorder"
)

// DateLayout is the as-of date format.
const DateLayout = "2006-01-02"

// Notes computes daily payloads. daily.Service implements it.
type Notes interface {
	Payload(ctx context.Context, ticker, asOf string) (*model.DailyPayload, error)
	Batch(ctx context.Context, tickers []string, asOf string) (*model.DailyBatch, error)
}

// Sender delivers formatted messages. *notifier.TelegramNotifier implements it.
type Sender interface {
	SendAll(ctx context.Context, messages []string, maxRetries int) error
}

// Scheduler runs the daily batch on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Notes    Notes
	Notifier Sender // nil disables delivery
	Recorder recorder.Recorder
	Ctx      context.Context
	Now      func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, notes Notes, sender Sender, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Notes:    notes,
		Notifier: sender,
		Recorder: rec,
		Ctx:      ctx,
		Now:      time.Now,
	}
}

// Register adds the daily batch job.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

func (s *Scheduler) asOf() string {
	return s.Now().Format(DateLayout)
}

func (s *Scheduler) dailyTask() {
	if _, err := s.RunDaily(s.Ctx); err != nil {
		logger.Error("daily run failed", zap.Error(err))
	}
}

// RunDaily computes the batch for the default tickers, records every payload
// under a fresh run id and sends the digest.
func (s *Scheduler) RunDaily(ctx context.Context) (string, error) {
	runID := uuid.NewString()
	run := &recorder.RunRecord{
		RunID:     runID,
		AsOf:      s.asOf(),
		StartedAt: s.Now(),
		Status:    recorder.RunOK,
	}
	logger.Info("running daily batch", zap.String("run_id", runID), zap.String("as_of", run.AsOf))

	batch, err := s.Notes.Batch(ctx, nil, run.AsOf)
	if err != nil {
		run.Status = recorder.RunFailed
		run.Error = err.Error()
		s.recordRun(run)
		s.trySend(ctx, []string{fmt.Sprintf("❌ Daily run %s failed: %v", run.AsOf, err)})
		return runID, fmt.Errorf("daily batch: %w", err)
	}
	run.Tickers = batch.Tickers

	for i := range batch.Data {
		if err := s.Recorder.RecordDailyNote(runID, &batch.Data[i]); err != nil {
			logger.Error("record daily note failed",
				zap.String("run_id", runID),
				zap.String("ticker", batch.Data[i].Ticker),
				zap.Error(err))
		}
	}
	s.recordRun(run)
	s.trySend(ctx, notifier.FormatDailyDigest(batch))

	logger.Info("daily batch done", zap.String("run_id", runID), zap.Int("tickers", len(batch.Data)))
	return runID, nil
}

// HandleCommand processes a chat command and returns the reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Commands sent in groups carry the bot name: /note@my_bot AAPL.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch name {
	case "/note":
		if len(fields) < 2 {
			return "Usage: /note TICKER"
		}
		p, err := s.Notes.Payload(s.Ctx, fields[1], s.asOf())
		if err != nil {
			return commandError(fields[1], err)
		}
		return notifier.FormatNote(p)
	case "/report":
		batch, err := s.Notes.Batch(s.Ctx, nil, s.asOf())
		if err != nil {
			return fmt.Sprintf("❌ Report failed: %v", err)
		}
		msgs := notifier.FormatDailyDigest(batch)
		if len(msgs) > 1 {
			s.trySend(s.Ctx, msgs[:len(msgs)-1])
		}
		return msgs[len(msgs)-1]
	case "/history":
		if len(fields) < 2 {
			return "Usage: /history TICKER"
		}
		ticker := strings.ToUpper(fields[1])
		notes, err := s.Recorder.RecentNotes(ticker, 5)
		if err != nil {
			logger.Error("read history failed", zap.String("ticker", ticker), zap.Error(err))
			return "❌ History unavailable."
		}
		return notifier.FormatHistory(ticker, notes)
	default:
		return notifier.FormatHelp()
	}
}

func commandError(ticker string, err error) string {
	if errors.Is(err, collector.ErrUnknownTicker) {
		return fmt.Sprintf("Unknown ticker: %s", strings.ToUpper(ticker))
	}
	return fmt.Sprintf("❌ %s failed: %v", strings.ToUpper(ticker), err)
}

func (s *Scheduler) recordRun(run *recorder.RunRecord) {
	if err := s.Recorder.RecordRun(run); err != nil {
		logger.Error("record run failed", zap.String("run_id", run.RunID), zap.Error(err))
	}
}

func (s *Scheduler) trySend(ctx context.Context, messages []string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendAll(ctx, messages, 3); err != nil {
		logger.Error("send notification failed", zap.Error(err))
	}
}

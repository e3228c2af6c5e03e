// Package llm composes the short per-ticker note, either through an external
// text generator or through a deterministic fallback that always succeeds.
package llm

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/model"
)

// MaxHeadlines is how many headlines are handed to a generator.
const MaxHeadlines = 5

// Risk flags marking a note produced by the fallback path.
const (
	FlagFallbackNoKey = "llm_fallback_no_key"
	FlagFallbackError = "llm_fallback_error"
)

// DefaultTimeout bounds a single external generation call.
const DefaultTimeout = 20 * time.Second

// Request carries the merged metrics bundle and headlines for one ticker.
type Request struct {
	Ticker    string
	AsOf      string
	Metrics   model.Metrics
	Range     *model.RangeRating // nil when no deterministic rating was computed
	Sentiment model.Sentiment    // empty when no deterministic sentiment was computed
	Headlines []model.Headline
}

// DeterministicRating returns the engine's rating, if one was supplied.
func (r Request) DeterministicRating() (model.Rating, bool) {
	if r.Range == nil || r.Range.Rating == "" {
		return "", false
	}
	return r.Range.Rating, true
}

// Generator produces a note from a request.
type Generator interface {
	Produce(ctx context.Context, req Request) (model.Note, error)
	Name() string
}

// Composer runs the configured generator and absorbs any failure into the
// deterministic fallback, so Compose never fails.
type Composer struct {
	generator Generator
	timeout   time.Duration
}

// NewComposer wraps g. A nil generator always uses the fallback.
func NewComposer(g Generator, timeout time.Duration) *Composer {
	if g == nil {
		g = NewFallback(FlagFallbackNoKey)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Composer{generator: g, timeout: timeout}
}

// GeneratorName reports which variant the composer tries first.
func (c *Composer) GeneratorName() string { return c.generator.Name() }

// Compose produces the note for req.
func (c *Composer) Compose(ctx context.Context, req Request) model.Note {
	if len(req.Headlines) > MaxHeadlines {
		req.Headlines = req.Headlines[:MaxHeadlines]
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	note, err := c.generator.Produce(callCtx, req)
	if err != nil {
		logger.Warn("note generation failed, using fallback",
			zap.String("generator", c.generator.Name()),
			zap.String("ticker", req.Ticker),
			zap.Error(err))
		note, _ = NewFallback(FlagFallbackError).Produce(ctx, req)
	}
	return finalize(note, req)
}

// finalize enforces the output contract on any generator's note: the
// deterministic rating and sentiment win, out-of-set values are clamped and
// missing lists become empty.
func finalize(note model.Note, req Request) model.Note {
	note.Ticker = req.Ticker
	note.AsOf = req.AsOf

	if det, ok := req.DeterministicRating(); ok {
		note.Rating = det
	} else if !note.Rating.Valid() {
		note.Rating = model.RatingHold
	}

	if req.Sentiment.Valid() {
		note.Sentiment = req.Sentiment
	} else if !note.Sentiment.Valid() {
		note.Sentiment = model.SentimentNeutral
	}

	if note.Rationale == nil {
		note.Rationale = []string{}
	}
	if note.RiskFlags == nil {
		note.RiskFlags = []string{}
	}
	note.Text = truncate(note.Text, model.MaxNoteLength)
	return note
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

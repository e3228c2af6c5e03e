package llm

import (
	"context"
	"fmt"
	"math"
	"strings"

	"DailyMarketBot/internal/model"
)

// Fallback builds the note from metrics and headlines alone.
type Fallback struct {
	flag string
}

// NewFallback creates a fallback that tags its notes with flag.
func NewFallback(flag string) *Fallback {
	return &Fallback{flag: flag}
}

func (f *Fallback) Name() string { return "fallback" }

// Produce never returns an error.
func (f *Fallback) Produce(_ context.Context, req Request) (model.Note, error) {
	titles := make([]string, 0, MaxHeadlines)
	for i, h := range req.Headlines {
		if i == MaxHeadlines {
			break
		}
		source := h.Source
		if source == "" {
			source = "?"
		}
		titles = append(titles, fmt.Sprintf("%s: %s", source, h.Title))
	}

	direction := "up"
	if req.Metrics.Ret1d < 0 {
		direction = "down"
	}
	rating, ok := req.DeterministicRating()
	if !ok {
		rating = model.RatingHold
	}
	sentiment := req.Sentiment
	if !sentiment.Valid() {
		sentiment = model.SentimentNeutral
	}
	headlines := "none available"
	if len(titles) > 0 {
		headlines = strings.Join(titles, "; ")
	}

	text := fmt.Sprintf("%s %s %.2f%% today. Vol vs 30d avg: %.2fx. Rating: %s. Headlines: %s.",
		req.Ticker, direction, math.Abs(req.Metrics.Ret1d)*100, req.Metrics.VolVs30d, rating, headlines)

	return model.Note{
		Ticker:    req.Ticker,
		AsOf:      req.AsOf,
		Text:      text,
		Sentiment: sentiment,
		Rating:    rating,
		Rationale: titles,
		RiskFlags: []string{f.flag},
	}, nil
}

package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"DailyMarketBot/internal/model"
)

const (
	DefaultClaudeModel = "claude-3-5-sonnet-20240620"
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultMaxTokens   = 300
)

// The derivation rule below disagrees with the range engine. It only
// applies when no rating is supplied, and the composer always echoes the
// engine's rating when there is one.
const systemPrompt = "You are a concise, neutral market analyst. Write at most 3 sentences. No hype. " +
	"Return ONLY compact JSON with keys: " +
	"ticker_note (<= 350 chars), sentiment in {bullish, bearish, neutral}, " +
	"rationale (list of short bullet strings), risk_flags (list), rating in {buy, hold, sell}. " +
	"If a 'rating' is provided in the input metrics, ECHO that rating exactly. " +
	"If rating is not provided, derive it using: " +
	"below 52-week average -> buy; near average -> hold; above average -> sell. " +
	"Do not include any extra fields or text."

// metricsBundle is the merged view of everything the engine computed.
type metricsBundle struct {
	model.Metrics
	*model.RangeRating
	Sentiment model.Sentiment `json:"sentiment,omitempty"`
}

func buildUserPrompt(req Request) (string, error) {
	metrics, err := json.Marshal(metricsBundle{
		Metrics:     req.Metrics,
		RangeRating: req.Range,
		Sentiment:   req.Sentiment,
	})
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}

	headlines := req.Headlines
	if headlines == nil {
		headlines = []model.Headline{}
	}
	news, err := json.Marshal(headlines)
	if err != nil {
		return "", fmt.Errorf("marshal headlines: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "As-of: %s\nTicker: %s\n", req.AsOf, req.Ticker)
	fmt.Fprintf(&sb, "Metrics: %s\n", metrics)
	fmt.Fprintf(&sb, "Headlines: %s\n", news)
	sb.WriteString("Respond with JSON only.")
	return sb.String(), nil
}

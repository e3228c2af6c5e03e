package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"DailyMarketBot/internal/logger"
)

// Options selects and configures the generator variant.
type Options struct {
	Provider        string // claude, gemini or none
	AnthropicAPIKey string
	GeminiAPIKey    string
	Model           string
	MaxTokens       int
}

// NewGenerator picks a variant by provider and credential presence. A
// missing credential yields the deterministic fallback.
func NewGenerator(ctx context.Context, opts Options) Generator {
	switch strings.ToLower(opts.Provider) {
	case "none", "off", "fallback":
		return NewFallback(FlagFallbackNoKey)
	case "gemini":
		if opts.GeminiAPIKey == "" {
			logger.Info("no Gemini API key, notes use the deterministic fallback")
			return NewFallback(FlagFallbackNoKey)
		}
		g, err := NewGeminiGenerator(ctx, opts.GeminiAPIKey, opts.Model, opts.MaxTokens)
		if err != nil {
			logger.Warn("gemini client unavailable, using fallback", zap.Error(err))
			return NewFallback(FlagFallbackError)
		}
		return g
	default:
		if opts.AnthropicAPIKey == "" {
			logger.Info("no Anthropic API key, notes use the deterministic fallback")
			return NewFallback(FlagFallbackNoKey)
		}
		return NewClaudeGenerator(opts.AnthropicAPIKey, opts.Model, opts.MaxTokens)
	}
}

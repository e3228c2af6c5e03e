package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "HTTPS_PROXY", "SQLITE_PATH"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, DefaultTickers, cfg.Market.DefaultTickers)
	assert.Equal(t, "data", cfg.Market.DataDir)
	assert.Equal(t, "data/prices", cfg.Market.PricesDir())
	assert.Equal(t, "data/news", cfg.Market.NewsDir())
	assert.Equal(t, "yahoo", cfg.Market.Source)
	assert.Equal(t, 0.25, cfg.Rating.PctLow)
	assert.Equal(t, 0.75, cfg.Rating.PctHigh)
	assert.Equal(t, 20, cfg.Rating.SMAWindow)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.DailyCron)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Telegram.Enabled())
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
server:
  addr: ":7000"
market:
  default_tickers: [aapl, msft]
  data_dir: /srv/data/
  source: CSV
rating:
  pct_low: 0.2
  pct_high: 0.8
llm:
  provider: gemini
  timeout: 5s
telegram:
  bot_token: from-file
  chat_id: "42"
schedule:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o644))

	t.Setenv("DMB_SERVER_ADDR", ":9000")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Market.DefaultTickers)
	assert.Equal(t, "/srv/data", cfg.Market.DataDir)
	assert.Equal(t, "csv", cfg.Market.Source)
	assert.Equal(t, 0.2, cfg.Rating.PctLow)
	assert.Equal(t, 0.8, cfg.Rating.PctHigh)
	assert.Equal(t, 5, cfg.Rating.MomentumDays)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gem-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "from-env", cfg.Telegram.BotToken)
	assert.True(t, cfg.Telegram.Enabled())
	assert.True(t, cfg.Schedule.Enabled)
}

func TestLoadTickersFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DMB_MARKET_DEFAULT_TICKERS", "nvda, tsm,,sony")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "TSM", "SONY"}, cfg.Market.DefaultTickers)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown source", func(c *Config) { c.Market.Source = "bloomberg" }},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "gpt" }},
		{"inverted thresholds", func(c *Config) { c.Rating.PctLow, c.Rating.PctHigh = 0.8, 0.2 }},
		{"zero lookback", func(c *Config) { c.Rating.SlopeLookback = -1 }},
		{"bad cron", func(c *Config) { c.Schedule.Enabled = true; c.Schedule.DailyCron = "every day" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

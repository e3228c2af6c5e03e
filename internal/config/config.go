package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"DailyMarketBot/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. DMB_SERVER_ADDR.
// Credentials also accept the bare name, e.g. ANTHROPIC_API_KEY.
const EnvPrefix = "DMB"

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// DefaultTickers is the ticker set used when a request names none.
var DefaultTickers = []string{"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "TSM", "SAP", "ASML", "SONY"}

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig       `yaml:"server" envconfig:"SERVER"`
	Market   MarketConfig       `yaml:"market" envconfig:"MARKET"`
	Rating   model.RatingParams `yaml:"rating" envconfig:"RATING"`
	LLM      LLMConfig          `yaml:"llm" envconfig:"LLM"`
	Telegram TelegramConfig     `yaml:"telegram" envconfig:"TELEGRAM"`
	Schedule ScheduleConfig     `yaml:"schedule" envconfig:"SCHEDULE"`
	Database DatabaseConfig     `yaml:"database" envconfig:"DATABASE"`
	Logging  LoggingConfig      `yaml:"logging" envconfig:"LOGGING"`
	Proxy    string             `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" split_words:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true"`
}

type MarketConfig struct {
	DefaultTickers    []string `yaml:"default_tickers" split_words:"true"`
	DataDir           string   `yaml:"data_dir" split_words:"true"`
	Source            string   `yaml:"source" split_words:"true"` // yahoo or csv
	HistoryDays       int      `yaml:"history_days" split_words:"true"`
	RequestsPerSecond int      `yaml:"requests_per_second" split_words:"true"`
	BatchConcurrency  int      `yaml:"batch_concurrency" split_words:"true"`
}

// PricesDir is where CSV price files live.
func (m MarketConfig) PricesDir() string { return m.DataDir + "/prices" }

// NewsDir is where daily headline files live.
func (m MarketConfig) NewsDir() string { return m.DataDir + "/news" }

type LLMConfig struct {
	Provider        string        `yaml:"provider" split_words:"true"` // claude, gemini or none
	AnthropicAPIKey string        `yaml:"anthropic_api_key" envconfig:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string        `yaml:"gemini_api_key" envconfig:"GEMINI_API_KEY"`
	Model           string        `yaml:"model" split_words:"true"`
	MaxTokens       int           `yaml:"max_tokens" split_words:"true"`
	Timeout         time.Duration `yaml:"timeout" split_words:"true"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
}

// Enabled reports whether both credentials are present.
func (t TelegramConfig) Enabled() bool { return t.BotToken != "" && t.ChatID != "" }

type ScheduleConfig struct {
	Enabled    bool   `yaml:"enabled" split_words:"true"`
	DailyCron  string `yaml:"daily_cron" split_words:"true"`
	RunOnStart bool   `yaml:"run_on_start" split_words:"true"`
}

type DatabaseConfig struct {
	SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
}

type LoggingConfig struct {
	Level string `yaml:"level" split_words:"true"`
	File  string `yaml:"file" split_words:"true"`
}

// Path returns CONFIG_PATH or the default location.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies .env and environment
// overrides, then fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 120 * time.Second
	}

	c.Market.DefaultTickers = normalizeTickers(c.Market.DefaultTickers)
	if len(c.Market.DefaultTickers) == 0 {
		c.Market.DefaultTickers = append([]string(nil), DefaultTickers...)
	}
	if c.Market.DataDir == "" {
		c.Market.DataDir = "data"
	}
	c.Market.DataDir = strings.TrimRight(c.Market.DataDir, "/")
	if c.Market.Source == "" {
		c.Market.Source = "yahoo"
	}
	c.Market.Source = strings.ToLower(c.Market.Source)
	if c.Market.HistoryDays == 0 {
		c.Market.HistoryDays = 300
	}
	if c.Market.RequestsPerSecond == 0 {
		c.Market.RequestsPerSecond = 2
	}
	if c.Market.BatchConcurrency == 0 {
		c.Market.BatchConcurrency = 4
	}

	defaults := model.DefaultRatingParams()
	if c.Rating.PctLow == 0 && c.Rating.PctHigh == 0 {
		c.Rating.PctLow = defaults.PctLow
		c.Rating.PctHigh = defaults.PctHigh
	}
	if c.Rating.MomentumDays == 0 {
		c.Rating.MomentumDays = defaults.MomentumDays
	}
	if c.Rating.SMAWindow == 0 {
		c.Rating.SMAWindow = defaults.SMAWindow
	}
	if c.Rating.SlopeLookback == 0 {
		c.Rating.SlopeLookback = defaults.SlopeLookback
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "claude"
	}
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 20 * time.Second
	}

	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/daily_market_bot.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	switch c.Market.Source {
	case "yahoo", "csv":
	default:
		return fmt.Errorf("market.source must be yahoo or csv, got %q", c.Market.Source)
	}
	switch c.LLM.Provider {
	case "claude", "gemini", "none":
	default:
		return fmt.Errorf("llm.provider must be claude, gemini or none, got %q", c.LLM.Provider)
	}
	if c.Rating.PctLow < 0 || c.Rating.PctHigh > 1 || c.Rating.PctLow >= c.Rating.PctHigh {
		return fmt.Errorf("rating thresholds must satisfy 0 <= pct_low < pct_high <= 1")
	}
	if c.Rating.MomentumDays < 1 || c.Rating.SMAWindow < 1 || c.Rating.SlopeLookback < 1 {
		return fmt.Errorf("rating lookbacks must be positive")
	}
	if c.Market.HistoryDays < 2 {
		return fmt.Errorf("market.history_days must be at least 2")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	if c.Schedule.Enabled {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(c.Schedule.DailyCron); err != nil {
			return fmt.Errorf("schedule.daily_cron: %w", err)
		}
	}
	return nil
}

func normalizeTickers(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, t := range strings.Split(entry, ",") {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

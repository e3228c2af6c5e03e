// Command daily prints one ticker's daily payload as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"DailyMarketBot/internal/app"
	"DailyMarketBot/internal/config"
	"DailyMarketBot/internal/logger"
)

func main() {
	ticker := flag.String("ticker", "AAPL", "ticker symbol")
	asOf := flag.String("as-of", time.Now().Format("2006-01-02"), "as-of date, YYYY-MM-DD")
	configPath := flag.String("config", config.Path(), "config file")
	flag.Parse()

	if _, err := time.Parse("2006-01-02", *asOf); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -as-of %q: expected YYYY-MM-DD\n", *asOf)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the JSON, so console logs go to stderr.
	if err := logger.InitWriter(cfg.Logging.Level, cfg.Logging.File, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	svc, err := app.NewService(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	p, err := svc.Payload(ctx, *ticker, *asOf)
	if err != nil {
		logger.Error("daily payload failed", zap.String("ticker", *ticker), zap.Error(err))
		fmt.Fprintf(os.Stderr, "%s: %v\n", *ticker, err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}

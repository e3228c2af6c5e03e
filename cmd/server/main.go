package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"DailyMarketBot/internal/app"
	"DailyMarketBot/internal/config"
	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/notifier"
	"DailyMarketBot/internal/recorder"
	"DailyMarketBot/internal/scheduler"
	"DailyMarketBot/internal/server"
)

func main() {
	if err := logger.Init("info", ""); err != nil {
		panic(err)
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		logger.Fatal("init logger", zap.Error(err))
	}
	defer logger.Sync()
	logger.Info("DailyMarketBot starting...")

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc, err := app.NewService(ctx, cfg)
	if err != nil {
		logger.Fatal("init daily service", zap.Error(err))
	}

	if cfg.Schedule.Enabled {
		sched, tn := startScheduler(ctx, cfg, svc)
		defer sched.Stop()
		if tn != nil {
			go tn.StartPolling(ctx, sched.HandleCommand)
			logger.Info("telegram polling started")
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(svc).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	logger.Info("DailyMarketBot stopped")
}

// startScheduler registers the daily job. The returned notifier is nil when
// Telegram is not configured.
func startScheduler(ctx context.Context, cfg *config.Config, notes scheduler.Notes) (*scheduler.Scheduler, *notifier.TelegramNotifier) {
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			go func() {
				<-ctx.Done()
				sr.Close()
			}()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	var (
		tn     *notifier.TelegramNotifier
		sender scheduler.Sender
	)
	if cfg.Telegram.Enabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		logger.Info("telegram not configured, digests are not sent")
	}

	sched := scheduler.NewScheduler(ctx, notes, sender, rec)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		logger.Fatal("register cron task", zap.Error(err))
	}
	sched.Start()

	if cfg.Schedule.RunOnStart || os.Getenv("RUN_ON_START") == "true" {
		logger.Info("run on start enabled, executing daily batch now")
		go func() {
			if _, err := sched.RunDaily(ctx); err != nil {
				logger.Error("daily run failed", zap.Error(err))
			}
		}()
	}
	return sched, tn
}

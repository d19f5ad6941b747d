package main

import (
	"NotifyHub/internal/adapters/notify"
	"NotifyHub/internal/board"
	"NotifyHub/internal/board/watchers"
	"NotifyHub/internal/shared/config"
	"NotifyHub/internal/shared/logger"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode, cfg.LogLevel)
	baseLogger.Info().Msg("Logger initialized")

	// 3. Print loaded config
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Dur("tick_interval", cfg.TickInterval).
		Float64("alert_threshold", cfg.AlertThreshold).
		Strs("assets", cfg.Assets).
		Msg("Configuration loaded")

	// 4. Initialize the notification core and the rate board on top of it
	registry := notify.NewRegistry(&baseLogger)
	rateBoard := board.NewRateBoard(registry, &baseLogger)

	// 5. Attach watchers
	journal := watchers.NewJournalWatcher(&baseLogger)
	rateBoard.Watch(journal)

	alerts := watchers.NewThresholdWatcher(watchers.RelativeMove(cfg.AlertThreshold), &baseLogger)
	alertHandle := rateBoard.Watch(alerts)

	baseLogger.Info().Msg("All services initialized successfully")

	// 6. Seed initial quotes
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, asset := range cfg.Assets {
		if err := rateBoard.SetRate(ctx, asset, 100); err != nil {
			baseLogger.Error().Err(err).Str("asset", asset).Msg("Failed to seed initial rate")
		}
	}

	// 7. Drive simulated rate moves until we are told to stop
	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rateBoard.Unwatch(alertHandle)
			baseLogger.Info().
				Int("journal_entries", len(journal.Entries())).
				Int("alerts_fired", alerts.Fired()).
				Msg("Shutting down")
			return
		case <-ticker.C:
			asset := cfg.Assets[rand.Intn(len(cfg.Assets))]
			current, _ := rateBoard.Rate(asset)
			// Random drift of up to +/- 10% per tick
			next := current * (1 + (rand.Float64()-0.5)*0.2)
			if err := rateBoard.SetRate(ctx, asset, next); err != nil {
				baseLogger.Error().Err(err).Str("asset", asset).Msg("Failed to apply rate update")
			}
		}
	}
}

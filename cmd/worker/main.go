package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cablecrm_backend/internal/consistency"
	"cablecrm_backend/internal/events"
	"cablecrm_backend/internal/pricing"
	"cablecrm_backend/internal/quotes"
	"cablecrm_backend/internal/scheduler"
	"cablecrm_backend/internal/settings"
	"cablecrm_backend/platform/config"
	"cablecrm_backend/platform/db"
	"cablecrm_backend/platform/logger"
	"cablecrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	// Worker-side analysis wiring (no HTTP handlers required).
	pricingModule := pricing.NewModule(pool, val)
	settingsModule := settings.NewModule(pool, val)
	quotesModule := quotes.NewModule(pool, eventBus, log, val)
	consistencyModule := consistency.NewModule(pool, cfg, log, val)

	quotesModule.Service().SetPriceLookup(pricingModule.Service())
	quotesModule.Service().SetDayRateProvider(settingsModule.Service())
	consistencyModule.Service().SetDayRateProvider(settingsModule.Service())

	schedClient, err := scheduler.NewClient(cfg, log)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = schedClient.Close() }()

	reportInterval := getDurationEnv("CONSISTENCY_REPORT_INTERVAL", 24*time.Hour)
	dispatcher := scheduler.NewReportDispatcher(schedClient, log, reportInterval)
	go dispatcher.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}
	worker.SetAnalysisProcessor(quotesModule.Service())
	worker.SetReportRunner(consistencyModule.Service())

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}

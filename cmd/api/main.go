package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cablecrm_backend/internal/consistency"
	"cablecrm_backend/internal/customers"
	"cablecrm_backend/internal/events"
	apphttp "cablecrm_backend/internal/http"
	"cablecrm_backend/internal/http/router"
	"cablecrm_backend/internal/pricing"
	"cablecrm_backend/internal/quotes"
	"cablecrm_backend/internal/scheduler"
	"cablecrm_backend/internal/settings"
	"cablecrm_backend/migrations"
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
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	customersModule := customers.NewModule(pool, val)
	pricingModule := pricing.NewModule(pool, val)
	settingsModule := settings.NewModule(pool, val)
	quotesModule := quotes.NewModule(pool, eventBus, log, val)
	consistencyModule := consistency.NewModule(pool, cfg, log, val)

	// Wire catalog lookup: quotes pricing rollup → pricing catalog
	quotesModule.Service().SetPriceLookup(pricingModule.Service())

	// Wire day rate: quotes prompts + consistency labor comparison → settings
	quotesModule.Service().SetDayRateProvider(settingsModule.Service())
	consistencyModule.Service().SetDayRateProvider(settingsModule.Service())

	// Wire historical context: quote prompts → consistency engine
	quotesModule.Service().SetContextProvider(consistencyModule.Service())

	// Scheduler client hands async analysis ingestion to the background worker.
	if cfg.GetRedisURL() != "" {
		schedClient, err := scheduler.NewClient(cfg, log)
		if err != nil {
			log.Error("failed to initialize scheduler client", "error", err)
			panic("failed to initialize scheduler client: " + err.Error())
		}
		defer func() { _ = schedClient.Close() }()
		schedClient.RegisterHandlers(eventBus)
	} else {
		log.Warn("REDIS_URL not configured; async analysis ingestion disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			customersModule,
			pricingModule,
			settingsModule,
			quotesModule,
			consistencyModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
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

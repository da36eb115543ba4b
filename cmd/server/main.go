package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sword9322/bezer-sub000/internal/config"
	"github.com/sword9322/bezer-sub000/internal/handler"
	"github.com/sword9322/bezer-sub000/internal/infra"
	"github.com/sword9322/bezer-sub000/internal/middleware"
	"github.com/sword9322/bezer-sub000/internal/repository"
	"github.com/sword9322/bezer-sub000/internal/router"
	"github.com/sword9322/bezer-sub000/internal/service"
	"github.com/sword9322/bezer-sub000/internal/sheet"
	"github.com/sword9322/bezer-sub000/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Spreadsheet backend. Without SPREADSHEET_ID the server falls back to an
	// in-memory store, which is only useful for local development.
	var (
		store  sheet.RowStore
		pinger handler.Pinger
		cb     *infra.CircuitBreaker
	)
	if cfg.SpreadsheetID != "" {
		svc, err := infra.NewSheetsService(ctx, cfg.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialise sheets client")
		}
		cb = infra.NewCircuitBreaker(infra.DefaultCBConfig())
		gs := sheet.NewGoogleStore(svc, cfg.SpreadsheetID, cb)
		store, pinger = gs, gs
	} else {
		log.Warn().Msg("SPREADSHEET_ID not set — using in-memory store")
		store = sheet.NewMemory()
	}

	locks := sheet.NewLocker()
	activityRepo := repository.NewActivity(store, locks)

	// Audit pipeline: redis-queued with a worker pool by default, synchronous
	// when AUDIT_SYNC=true (or when redis is unreachable at boot).
	var (
		audit service.AuditSink
		rdb   *redis.Client
	)
	if cfg.AuditSync {
		audit = service.NewDirectSink(activityRepo)
	} else {
		rdb, err = infra.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable — falling back to synchronous audit writes")
			audit = service.NewDirectSink(activityRepo)
		} else {
			audit = worker.NewAuditDispatcher(rdb)
			worker.StartAuditPool(ctx, rdb, activityRepo, cfg.WorkerPoolSize)
		}
	}

	// Background sweep for rows stranded in both the live and trash tables by
	// an interrupted move.
	reconciler := worker.NewReconciler(repository.NewProducts(store, locks))
	reconciler.Start(ctx, cfg.ReconcileInterval)

	middleware.StartRateLimiterJanitor(5 * time.Minute)

	r := router.New(cfg, store, locks, rdb, audit, pinger, cb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("bezer backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

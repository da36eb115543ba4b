package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sword9322/bezer-sub000/internal/config"
	"github.com/sword9322/bezer-sub000/internal/infra"
	"github.com/sword9322/bezer-sub000/internal/repository"
	"github.com/sword9322/bezer-sub000/internal/sheet"
	"github.com/sword9322/bezer-sub000/internal/worker"
)

// One-shot reconciliation: report every product ref present in both the live
// and trash tables. Intended for cron or manual operator use; it never mutates
// rows, resolution of a stranded pair is a deliberate human decision.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.SpreadsheetID == "" {
		log.Fatal().Msg("SPREADSHEET_ID is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	svc, err := infra.NewSheetsService(ctx, cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise sheets client")
	}
	store := sheet.NewGoogleStore(svc, cfg.SpreadsheetID, infra.NewCircuitBreaker(infra.DefaultCBConfig()))

	reconciler := worker.NewReconciler(repository.NewProducts(store, sheet.NewLocker()))
	dups, err := reconciler.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliation failed")
	}

	if len(dups) == 0 {
		log.Info().Msg("no stranded rows found")
		return
	}
	log.Warn().Strs("refs", dups).Msg("refs present in both live and trash tables")
	os.Exit(1)
}

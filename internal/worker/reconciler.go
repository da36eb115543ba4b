package worker

// reconciler.go
// Background goroutine that periodically sweeps the inventory pair for keys
// present in BOTH the primary and trash tables — the footprint of a
// soft-delete or restore that crashed between its append and delete steps.
// Duplicates are reported, never repaired automatically: deciding the
// canonical copy is an operator call.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/repository"
)

// Reconciler sweeps a keyed primary/trash pair for duplicate keys.
type Reconciler struct {
	products *repository.Keyed[model.Product]
}

func NewReconciler(products *repository.Keyed[model.Product]) *Reconciler {
	return &Reconciler{products: products}
}

// Start launches the periodic sweep. It respects the context for graceful
// shutdown.
func (r *Reconciler) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("reconciler: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconciler: shutting down")
				return
			case <-ticker.C:
				if _, err := r.Run(ctx); err != nil {
					log.Error().Err(err).Msg("reconciler: sweep failed")
				}
			}
		}
	}()
}

// Run performs one sweep and returns the duplicate keys it found.
func (r *Reconciler) Run(ctx context.Context) ([]string, error) {
	dupes, err := r.products.DuplicateKeys(ctx)
	if err != nil {
		return nil, err
	}
	for _, key := range dupes {
		log.Warn().
			Str("key", key).
			Msg("reconciler: record present in both primary and trash — manual repair needed")
	}
	if len(dupes) == 0 {
		log.Debug().Msg("reconciler: no duplicates")
	}
	return dupes, nil
}

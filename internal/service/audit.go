package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/repository"
)

// AuditSink receives one log entry per user-visible mutation. Logging is
// best-effort by decision: a failed audit write never fails or rolls back
// the mutation that triggered it, so Record returns nothing.
type AuditSink interface {
	Record(ctx context.Context, e model.LogEntry)
}

// DirectSink appends synchronously to the ActivityLogs table. Used when the
// deployment runs without redis (AUDIT_SYNC=true) and in tests.
type DirectSink struct {
	repo *repository.Activity
}

func NewDirectSink(repo *repository.Activity) *DirectSink {
	return &DirectSink{repo: repo}
}

func (s *DirectSink) Record(ctx context.Context, e model.LogEntry) {
	if err := s.repo.Append(ctx, e); err != nil {
		log.Error().
			Str("entity", e.EntityType).
			Str("entity_id", e.EntityID).
			Err(err).
			Msg("audit append failed (entry dropped)")
	}
}

// newLogEntry stamps a fresh audit entry. The id is a UUID; ordering on the
// read side always goes by the timestamp column.
func newLogEntry(action, entityType, entityID string, before, after interface{}, actor model.Actor) model.LogEntry {
	return model.LogEntry{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    model.Changes{Before: before, After: after},
		Actor:      actor,
	}
}

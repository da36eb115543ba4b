package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/repository"
)

const (
	QueueAudit = "jobs:audit"

	// maxAuditAttempts bounds retries of one log append before the entry is
	// parked in the DLQ for manual inspection.
	maxAuditAttempts = 3
)

// auditJob is the queue envelope for one audit entry.
type auditJob struct {
	Entry    model.LogEntry `json:"entry"`
	Attempts int            `json:"attempts"`
}

// Pusher is the slice of the redis command set the audit pipeline writes
// through. Production passes the real client; tests an in-memory fake.
type Pusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// appender is satisfied by the activity repository.
type appender interface {
	Append(ctx context.Context, e model.LogEntry) error
}

// AuditDispatcher enqueues audit entries into a Redis list; the worker pool
// drains it via BRPOP and appends to the ActivityLogs table. Decoupling the
// append from the triggering mutation keeps audit logging best-effort: an
// enqueue failure is logged and swallowed, never propagated.
type AuditDispatcher struct {
	q Pusher
}

func NewAuditDispatcher(q Pusher) *AuditDispatcher {
	return &AuditDispatcher{q: q}
}

func (d *AuditDispatcher) Record(ctx context.Context, e model.LogEntry) {
	data, err := json.Marshal(auditJob{Entry: e})
	if err != nil {
		log.Error().Str("entity_id", e.EntityID).Err(err).Msg("audit: marshal entry")
		return
	}
	if err := d.q.LPush(ctx, QueueAudit, data).Err(); err != nil {
		log.Error().Str("entity_id", e.EntityID).Err(err).Msg("audit: enqueue failed (entry dropped)")
	}
}

// StartAuditPool launches numWorkers goroutines consuming the audit queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartAuditPool(ctx context.Context, rdb *redis.Client, activity *repository.Activity, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runAuditWorker(ctx, rdb, activity, i)
	}
	log.Info().Int("workers", numWorkers).Msg("audit worker pool started")
}

func runAuditWorker(ctx context.Context, rdb *redis.Client, activity *repository.Activity, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("audit worker shutting down")
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueAudit).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processAuditJob(ctx, rdb, activity, result[1])
		}
	}
}

func processAuditJob(ctx context.Context, q Pusher, logs appender, raw string) {
	var job auditJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("audit: failed to unmarshal job")
		// Quote the blob: Payload must hold valid JSON or the DLQ entry
		// itself would fail to marshal.
		payload, _ := json.Marshal(raw)
		SendToDLQ(ctx, q, QueueAudit, "audit", payload, "unmarshal: "+err.Error(), 0)
		return
	}

	if err := logs.Append(ctx, job.Entry); err != nil {
		job.Attempts++
		if job.Attempts >= maxAuditAttempts {
			payload, _ := json.Marshal(job.Entry)
			SendToDLQ(ctx, q, QueueAudit, "audit", payload, err.Error(), job.Attempts)
			return
		}
		// Requeue for another attempt
		data, mErr := json.Marshal(job)
		if mErr != nil {
			log.Error().Err(mErr).Msg("audit: re-marshal job")
			return
		}
		if pErr := q.LPush(ctx, QueueAudit, data).Err(); pErr != nil {
			log.Error().Err(pErr).Str("entry_id", job.Entry.ID).Msg("audit: requeue failed (entry dropped)")
		}
		return
	}
}

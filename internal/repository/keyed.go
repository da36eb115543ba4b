package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// KeyedConfig describes one keyed table (plus optional trash pair) to a
// Keyed repository. The business key must be the first column of the layout.
type KeyedConfig[T any] struct {
	Primary sheet.Table
	Trash   *sheet.Table // nil → no soft delete; Delete removes rows for good
	Key     func(T) string
	Encode  func(T) sheet.Row
	Decode  func(sheet.Row) (T, error)
	Unique  bool // pre-check scan on Create
}

// Keyed is a generic CRUD + soft-delete/restore repository over a RowStore.
//
// The backend has no locking, so every mutating operation serializes behind
// the per-table lock and re-resolves the target row index by scanning inside
// the critical section — an index computed before any suspension point is
// stale the moment another writer touches the table.
//
// Soft delete and restore are two-step moves ordered append-then-delete: a
// failure after the append never loses data, it leaves a duplicate that is
// reported as ErrInconsistentState for manual (or reconciler) repair.
type Keyed[T any] struct {
	store sheet.RowStore
	locks *sheet.Locker
	cfg   KeyedConfig[T]
}

func NewKeyed[T any](store sheet.RowStore, locks *sheet.Locker, cfg KeyedConfig[T]) *Keyed[T] {
	return &Keyed[T]{store: store, locks: locks, cfg: cfg}
}

// Create appends the record. With Unique set, an existing active key is
// rejected at check time; trashed copies under the same key do not count.
func (r *Keyed[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	key := r.cfg.Key(rec)
	if key == "" {
		return zero, fmt.Errorf("%w: empty key", ErrValidation)
	}

	unlock := r.locks.Lock(r.cfg.Primary.Name)
	defer unlock()

	if r.cfg.Unique {
		rows, err := r.store.ReadRange(ctx, r.cfg.Primary)
		if err != nil {
			return zero, err
		}
		if locate(rows, key) >= 0 {
			return zero, fmt.Errorf("%w: %q in %s", ErrDuplicateKey, key, r.cfg.Primary.Name)
		}
	}

	if err := r.store.AppendRows(ctx, r.cfg.Primary, []sheet.Row{r.cfg.Encode(rec)}); err != nil {
		return zero, err
	}
	return rec, nil
}

// FindByKey scans the primary table. Absence is (nil, nil), not an error.
func (r *Keyed[T]) FindByKey(ctx context.Context, key string) (*T, error) {
	return r.find(ctx, r.cfg.Primary, key)
}

// FindInTrash scans the trash table.
func (r *Keyed[T]) FindInTrash(ctx context.Context, key string) (*T, error) {
	if r.cfg.Trash == nil {
		return nil, nil
	}
	return r.find(ctx, *r.cfg.Trash, key)
}

func (r *Keyed[T]) find(ctx context.Context, t sheet.Table, key string) (*T, error) {
	rows, err := r.store.ReadRange(ctx, t)
	if err != nil {
		return nil, err
	}
	idx := locate(rows, key)
	if idx < 0 {
		return nil, nil
	}
	rec, err := r.cfg.Decode(rows[idx])
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List decodes every row of the primary table.
func (r *Keyed[T]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.cfg.Primary)
}

// ListTrash decodes every row of the trash table.
func (r *Keyed[T]) ListTrash(ctx context.Context) ([]T, error) {
	if r.cfg.Trash == nil {
		return nil, nil
	}
	return r.list(ctx, *r.cfg.Trash)
}

func (r *Keyed[T]) list(ctx context.Context, t sheet.Table) ([]T, error) {
	rows, err := r.store.ReadRange(ctx, t)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := r.cfg.Decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Update rewrites the whole row for key. The backend has no partial update:
// any field missing from rec is gone after this call, so callers (the
// service layer) must read-merge-write.
func (r *Keyed[T]) Update(ctx context.Context, key string, rec T) (T, error) {
	var zero T

	unlock := r.locks.Lock(r.cfg.Primary.Name)
	defer unlock()

	rows, err := r.store.ReadRange(ctx, r.cfg.Primary)
	if err != nil {
		return zero, err
	}
	idx := locate(rows, key)
	if idx < 0 {
		return zero, fmt.Errorf("%w: %q in %s", ErrNotFound, key, r.cfg.Primary.Name)
	}
	if err := r.store.UpdateRowRange(ctx, r.cfg.Primary, idx, []sheet.Row{r.cfg.Encode(rec)}); err != nil {
		return zero, err
	}
	return rec, nil
}

// SoftDelete moves the record into the trash table: append there, then
// delete here, with the delete index re-resolved after the append.
func (r *Keyed[T]) SoftDelete(ctx context.Context, key string) error {
	if r.cfg.Trash == nil {
		return fmt.Errorf("%w: %s has no trash table", ErrValidation, r.cfg.Primary.Name)
	}
	return r.move(ctx, key, r.cfg.Primary, *r.cfg.Trash)
}

// Restore is the inverse move: trash back into the primary table.
func (r *Keyed[T]) Restore(ctx context.Context, key string) error {
	if r.cfg.Trash == nil {
		return fmt.Errorf("%w: %s has no trash table", ErrValidation, r.cfg.Primary.Name)
	}
	return r.move(ctx, key, *r.cfg.Trash, r.cfg.Primary)
}

// move appends the row for key to dst, then deletes it from src. Both table
// locks are held for the whole saga so no same-process writer can shift the
// source rows between the two steps; the re-resolution before the delete
// still guards against the append itself having changed anything and keeps
// the retry of a half-finished move safe.
func (r *Keyed[T]) move(ctx context.Context, key string, src, dst sheet.Table) error {
	unlock := r.locks.Lock(src.Name, dst.Name)
	defer unlock()

	rows, err := r.store.ReadRange(ctx, src)
	if err != nil {
		return err
	}
	idx := locate(rows, key)
	if idx < 0 {
		return fmt.Errorf("%w: %q in %s", ErrNotFound, key, src.Name)
	}

	// Restoring into the primary table must not plant a second active copy:
	// the key may have been recreated since the soft delete. The trash side
	// stays unchecked — it legitimately accumulates copies of a reused key.
	if r.cfg.Unique && dst.Name == r.cfg.Primary.Name {
		active, err := r.store.ReadRange(ctx, dst)
		if err != nil {
			return err
		}
		if locate(active, key) >= 0 {
			return fmt.Errorf("%w: %q already active in %s", ErrDuplicateKey, key, dst.Name)
		}
	}

	if err := r.store.AppendRows(ctx, dst, []sheet.Row{rows[idx].Clone()}); err != nil {
		return fmt.Errorf("move %q %s→%s: append: %w", key, src.Name, dst.Name, err)
	}

	if err := r.deleteByKey(ctx, src, key); err != nil {
		// First step landed, second did not: the record now exists in both
		// tables. Deliberately no rollback — report and let the operator or
		// the reconciler pick the canonical copy.
		log.Error().
			Str("key", key).
			Str("from", src.Name).
			Str("to", dst.Name).
			Err(err).
			Msg("row move left a duplicate")
		return fmt.Errorf("%w: %q appended to %s but not removed from %s: %v",
			ErrInconsistentState, key, dst.Name, src.Name, err)
	}
	return nil
}

// Purge permanently deletes the record from the trash table. Terminal: a
// purged key is gone, and purging an active (non-trashed) record is refused
// by construction — only the trash table is consulted.
func (r *Keyed[T]) Purge(ctx context.Context, key string) error {
	if r.cfg.Trash == nil {
		return fmt.Errorf("%w: %s has no trash table", ErrValidation, r.cfg.Primary.Name)
	}
	unlock := r.locks.Lock(r.cfg.Trash.Name)
	defer unlock()
	return r.deleteByKey(ctx, *r.cfg.Trash, key)
}

// Delete hard-deletes from the primary table (tables without a trash pair).
func (r *Keyed[T]) Delete(ctx context.Context, key string) error {
	unlock := r.locks.Lock(r.cfg.Primary.Name)
	defer unlock()
	return r.deleteByKey(ctx, r.cfg.Primary, key)
}

// deleteByKey resolves the row index as the last step before the delete and,
// when the delete reports the row gone from under it, re-scans and retries
// exactly once. Callers must hold the table lock.
func (r *Keyed[T]) deleteByKey(ctx context.Context, t sheet.Table, key string) error {
	for attempt := 0; attempt < 2; attempt++ {
		rows, err := r.store.ReadRange(ctx, t)
		if err != nil {
			return err
		}
		idx := locate(rows, key)
		if idx < 0 {
			return fmt.Errorf("%w: %q in %s", ErrNotFound, key, t.Name)
		}
		err = r.store.DeleteRowRange(ctx, t, idx, 1)
		if err == nil {
			return nil
		}
		if attempt == 0 {
			log.Warn().Str("table", t.Name).Str("key", key).Err(err).
				Msg("delete failed, re-resolving row index")
			continue
		}
		return err
	}
	return nil
}

// DuplicateKeys returns keys present in both the primary and trash tables —
// the footprint of a move that failed between its append and delete steps.
func (r *Keyed[T]) DuplicateKeys(ctx context.Context) ([]string, error) {
	if r.cfg.Trash == nil {
		return nil, nil
	}
	primary, err := r.store.ReadRange(ctx, r.cfg.Primary)
	if err != nil {
		return nil, err
	}
	trash, err := r.store.ReadRange(ctx, *r.cfg.Trash)
	if err != nil {
		return nil, err
	}
	active := make(map[string]bool, len(primary))
	for _, row := range primary {
		if len(row) > 0 {
			active[row[0]] = true
		}
	}
	var dupes []string
	seen := make(map[string]bool)
	for _, row := range trash {
		if len(row) > 0 && active[row[0]] && !seen[row[0]] {
			seen[row[0]] = true
			dupes = append(dupes, row[0])
		}
	}
	return dupes, nil
}

// locate returns the data index of the first row whose key column matches,
// or -1. The key is the first column by contract.
func locate(rows []sheet.Row, key string) int {
	for i, row := range rows {
		if len(row) > 0 && row[0] == key {
			return i
		}
	}
	return -1
}

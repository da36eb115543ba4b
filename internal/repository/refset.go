package repository

import (
	"context"
	"fmt"

	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// ReferenceSet manages a flat lookup list (brands, typologies, racks) in
// insertion order. Uniqueness is best-effort whole-entry equality: for the
// two-column rack table that naturally scopes ids per warehouse, since
// (id, "1") and (id, "2") are different entries.
type ReferenceSet struct {
	store sheet.RowStore
	locks *sheet.Locker
	table sheet.Table
}

func NewReferenceSet(store sheet.RowStore, locks *sheet.Locker, table sheet.Table) *ReferenceSet {
	return &ReferenceSet{store: store, locks: locks, table: table}
}

// List returns all entries in stored order.
func (s *ReferenceSet) List(ctx context.Context) ([]sheet.Row, error) {
	return s.store.ReadRange(ctx, s.table)
}

// Add appends the entry. The duplicate check and the append run under the
// table lock, so writers in this process cannot race each other; an external
// concurrent writer can still violate uniqueness (documented risk).
func (s *ReferenceSet) Add(ctx context.Context, entry sheet.Row) error {
	if len(entry) == 0 || entry[0] == "" {
		return fmt.Errorf("%w: empty entry", ErrValidation)
	}
	if len(entry) != s.table.Width() {
		return fmt.Errorf("%w: %s entry needs %d columns, got %d",
			ErrValidation, s.table.Name, s.table.Width(), len(entry))
	}

	unlock := s.locks.Lock(s.table.Name)
	defer unlock()

	rows, err := s.store.ReadRange(ctx, s.table)
	if err != nil {
		return err
	}
	if matchEntry(rows, entry) >= 0 {
		return fmt.Errorf("%w: %v in %s", ErrDuplicateKey, entry, s.table.Name)
	}
	return s.store.AppendRows(ctx, s.table, []sheet.Row{entry})
}

// Remove deletes the entry, resolving its row index against the table state
// read inside the lock — never against an index from an earlier call.
func (s *ReferenceSet) Remove(ctx context.Context, entry sheet.Row) error {
	unlock := s.locks.Lock(s.table.Name)
	defer unlock()

	rows, err := s.store.ReadRange(ctx, s.table)
	if err != nil {
		return err
	}
	idx := matchEntry(rows, entry)
	if idx < 0 {
		return fmt.Errorf("%w: %v in %s", ErrNotFound, entry, s.table.Name)
	}
	return s.store.DeleteRowRange(ctx, s.table, idx, 1)
}

// matchEntry finds the first row equal to entry across all its columns.
func matchEntry(rows []sheet.Row, entry sheet.Row) int {
	for i, row := range rows {
		if equalEntry(row, entry) {
			return i
		}
	}
	return -1
}

func equalEntry(a, b sheet.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

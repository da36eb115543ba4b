// Package repository builds keyed-record semantics on top of the sheet
// RowStore: unique business keys, soft-delete/restore via paired trash
// tables, reference sets and the append-only activity log.
package repository

import "errors"

var (
	// ErrNotFound — the key is absent where an operation requires it to exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey — create detected an existing key at check time.
	// Best-effort only: a concurrent writer in another process can still
	// slip a duplicate in between check and append.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrValidation — a required field is missing or malformed before the
	// call reaches the store.
	ErrValidation = errors.New("validation failed")

	// ErrInconsistentState — a two-step move completed its append but failed
	// its delete, leaving the record in both tables. Surfaced so an operator
	// (or the reconciler) can repair it; never rolled back automatically.
	ErrInconsistentState = errors.New("inconsistent state")
)

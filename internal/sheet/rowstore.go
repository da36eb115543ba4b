// Package sheet adapts a remote spreadsheet into a set of named logical
// tables. The backend offers no row identity, no field-level update and no
// server-side queries: everything above this package is built on whole-range
// reads and index-based row operations, and a row index is only valid at the
// instant it was read.
package sheet

import (
	"context"
	"errors"
)

// Row is one table row in fixed column order.
type Row []string

// Clone returns a copy so callers can mutate without aliasing store memory.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Table names a logical table and its wire column layout.
type Table struct {
	Name   string
	Header Row
}

// Width returns the number of columns in the table layout.
func (t Table) Width() int { return len(t.Header) }

// ErrBackendUnavailable covers transport, auth and rate-limit failures
// talking to the spreadsheet backend.
var ErrBackendUnavailable = errors.New("sheet backend unavailable")

// RowStore is the thin adapter over the spreadsheet backend.
//
// Row indices are 0-based data indices: the header row is excluded and index
// 0 is the first data row. DeleteRowRange shifts every subsequent row up,
// which invalidates any index computed before the call.
type RowStore interface {
	// ReadRange returns all data rows of the table. An empty table yields an
	// empty slice, not an error.
	ReadRange(ctx context.Context, t Table) ([]Row, error)

	// AppendRows adds rows after the last populated row, provisioning the
	// header first if the table is empty.
	AppendRows(ctx context.Context, t Table, rows []Row) error

	// UpdateRowRange overwrites whole rows starting at index. Partial-field
	// update is not supported; callers must supply complete rows.
	UpdateRowRange(ctx context.Context, t Table, index int, rows []Row) error

	// DeleteRowRange removes count rows starting at start and shifts all
	// subsequent rows up by count.
	DeleteRowRange(ctx context.Context, t Table, start, count int) error

	// EnsureHeader writes the header row when the table has none.
	EnsureHeader(ctx context.Context, t Table) error
}

package sheet

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-memory RowStore with the same shift-on-delete semantics as
// the spreadsheet backend. It backs tests and local development; production
// wiring injects the Google Sheets implementation instead.
type Memory struct {
	mu      sync.Mutex
	headers map[string]Row
	rows    map[string][]Row

	// Before, when set, runs ahead of every operation and can inject a
	// failure. Tests use it to break the second step of a two-step saga.
	Before func(op, table string) error
}

func NewMemory() *Memory {
	return &Memory{
		headers: make(map[string]Row),
		rows:    make(map[string][]Row),
	}
}

var _ RowStore = (*Memory)(nil)

func (m *Memory) hook(op, table string) error {
	if m.Before == nil {
		return nil
	}
	return m.Before(op, table)
}

func (m *Memory) ReadRange(ctx context.Context, t Table) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.hook("read", t.Name); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.rows[t.Name]
	out := make([]Row, len(src))
	for i, r := range src {
		out[i] = r.Clone()
	}
	return out, nil
}

func (m *Memory) AppendRows(ctx context.Context, t Table, rows []Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.hook("append", t.Name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureHeaderLocked(t)
	for _, r := range rows {
		m.rows[t.Name] = append(m.rows[t.Name], r.Clone())
	}
	return nil
}

func (m *Memory) UpdateRowRange(ctx context.Context, t Table, index int, rows []Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.hook("update", t.Name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.rows[t.Name]
	if index < 0 || index+len(rows) > len(existing) {
		return fmt.Errorf("update %s: row range [%d,%d) out of bounds (%d rows)",
			t.Name, index, index+len(rows), len(existing))
	}
	for i, r := range rows {
		existing[index+i] = r.Clone()
	}
	return nil
}

func (m *Memory) DeleteRowRange(ctx context.Context, t Table, start, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.hook("delete", t.Name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.rows[t.Name]
	if start < 0 || count < 1 || start+count > len(existing) {
		return fmt.Errorf("delete %s: row range [%d,%d) out of bounds (%d rows)",
			t.Name, start, start+count, len(existing))
	}
	m.rows[t.Name] = append(existing[:start], existing[start+count:]...)
	return nil
}

func (m *Memory) EnsureHeader(ctx context.Context, t Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureHeaderLocked(t)
	return nil
}

func (m *Memory) ensureHeaderLocked(t Table) {
	if _, ok := m.headers[t.Name]; !ok {
		m.headers[t.Name] = t.Header.Clone()
	}
}

// Header reports the provisioned header for a table, if any.
func (m *Memory) Header(table string) (Row, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.headers[table]
	return h, ok
}

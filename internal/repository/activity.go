package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// LogFilter narrows a log query. Zero values mean "no constraint".
type LogFilter struct {
	Action     string    // added | edited | deleted
	EntityType string    // product | brand | typology | rack | campaign
	ActorQuery string    // case-insensitive substring over actor name/email
	From, To   time.Time // inclusive timestamp bounds
}

// Activity is the append-only audit trail. The backend cannot filter or sort
// server-side, so every query loads the whole table — the accepted cost of
// the design.
type Activity struct {
	store sheet.RowStore
	locks *sheet.Locker
}

func NewActivity(store sheet.RowStore, locks *sheet.Locker) *Activity {
	return &Activity{store: store, locks: locks}
}

// Append writes one flattened log row. Entries are never updated or removed.
func (a *Activity) Append(ctx context.Context, e model.LogEntry) error {
	row, err := e.Row()
	if err != nil {
		return err
	}
	unlock := a.locks.Lock(sheet.ActivityLogs.Name)
	defer unlock()
	return a.store.AppendRows(ctx, sheet.ActivityLogs, []sheet.Row{row})
}

// Query loads the full log, filters, sorts by timestamp descending and
// windows the result. Returns the page plus the total matching count.
func (a *Activity) Query(ctx context.Context, f LogFilter, page, pageSize int) ([]model.LogEntry, int, error) {
	rows, err := a.store.ReadRange(ctx, sheet.ActivityLogs)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]model.LogEntry, 0, len(rows))
	for _, row := range rows {
		e, err := model.LogEntryFromRow(row)
		if err != nil {
			// One bad historical row must not break the whole audit view.
			continue
		}
		if f.matches(e) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := len(matched)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []model.LogEntry{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f LogFilter) matches(e model.LogEntry) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.EntityType != "" && e.EntityType != f.EntityType {
		return false
	}
	if f.ActorQuery != "" {
		q := strings.ToLower(f.ActorQuery)
		if !strings.Contains(strings.ToLower(e.Actor.Name), q) &&
			!strings.Contains(strings.ToLower(e.Actor.Email), q) {
			return false
		}
	}
	if !f.From.IsZero() && e.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Timestamp.After(f.To) {
		return false
	}
	return true
}

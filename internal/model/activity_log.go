package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// Audit action types.
const (
	ActionAdded   = "added"
	ActionEdited  = "edited"
	ActionDeleted = "deleted"
)

// Actor identifies who performed a mutation. It is supplied by the caller
// (auth claims) — the store never invents one.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Changes is the free-form before/after snapshot. Either side may be nil
// (added entries have no before, deleted entries no after).
type Changes struct {
	Before interface{} `json:"before"`
	After  interface{} `json:"after"`
}

// LogEntry is one row of the append-only audit trail. Entries are never
// mutated or deleted by normal operation.
type LogEntry struct {
	ID         string
	Timestamp  time.Time
	Action     string // ActionAdded | ActionEdited | ActionDeleted
	EntityType string // product | brand | typology | rack | campaign
	EntityID   string
	Changes    Changes
	Actor      Actor
}

// Row flattens the entry into the ActivityLogs column order. The changes
// snapshot is serialized into a single JSON cell. The timestamp keeps
// nanosecond precision: it is the sole sort key on the read side, and
// second-granularity would tie every entry written in the same second.
func (e LogEntry) Row() (sheet.Row, error) {
	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return nil, fmt.Errorf("log entry %s: marshal changes: %w", e.ID, err)
	}
	return sheet.Row{
		e.ID,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.Action,
		e.EntityType,
		e.EntityID,
		string(changes),
		e.Actor.ID,
		e.Actor.Name,
		e.Actor.Email,
		e.Actor.Role,
	}, nil
}

// LogEntryFromRow decodes an ActivityLogs row. A malformed changes cell is
// tolerated and left empty: the audit read side must not choke on one bad
// historical row.
func LogEntryFromRow(r sheet.Row) (LogEntry, error) {
	r = padded(r, sheet.ActivityLogs.Width())
	ts, err := time.Parse(time.RFC3339Nano, r[1])
	if err != nil {
		return LogEntry{}, fmt.Errorf("log entry %q: timestamp: %w", r[0], err)
	}
	e := LogEntry{
		ID:         r[0],
		Timestamp:  ts,
		Action:     r[2],
		EntityType: r[3],
		EntityID:   r[4],
		Actor:      Actor{ID: r[6], Name: r[7], Email: r[8], Role: r[9]},
	}
	if r[5] != "" {
		_ = json.Unmarshal([]byte(r[5]), &e.Changes)
	}
	return e, nil
}

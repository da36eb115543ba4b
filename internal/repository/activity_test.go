package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/sheet"
)

func newActivityRepo() (*Activity, *sheet.Memory) {
	store := sheet.NewMemory()
	return NewActivity(store, sheet.NewLocker()), store
}

func logEntry(id string, ts time.Time, action, entity string, actor model.Actor) model.LogEntry {
	return model.LogEntry{
		ID:         id,
		Timestamp:  ts,
		Action:     action,
		EntityType: entity,
		EntityID:   "REF-" + id,
		Actor:      actor,
	}
}

var (
	alice = model.Actor{ID: "u1", Name: "Alice Ferreira", Email: "alice@example.com", Role: "manager"}
	bruno = model.Actor{ID: "u2", Name: "Bruno Costa", Email: "bruno@example.com", Role: "operator"}
)

func TestActivityAppendAndQuery(t *testing.T) {
	repo, _ := newActivityRepo()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		e := logEntry(fmt.Sprintf("e%d", i), base.Add(time.Duration(i)*time.Minute), model.ActionAdded, "product", alice)
		require.NoError(t, repo.Append(ctx, e))
	}

	entries, total, err := repo.Query(ctx, LogFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, entries, 5)

	// Newest first
	assert.Equal(t, "e4", entries[0].ID)
	assert.Equal(t, "e0", entries[4].ID)
}

func TestActivityFilterByActionAndEntity(t *testing.T) {
	repo, _ := newActivityRepo()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, logEntry("e1", base, model.ActionAdded, "product", alice)))
	require.NoError(t, repo.Append(ctx, logEntry("e2", base.Add(time.Minute), model.ActionDeleted, "product", alice)))
	require.NoError(t, repo.Append(ctx, logEntry("e3", base.Add(2*time.Minute), model.ActionAdded, "brand", bruno)))

	entries, total, err := repo.Query(ctx, LogFilter{Action: model.ActionAdded}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	entries, total, err = repo.Query(ctx, LogFilter{Action: model.ActionAdded, EntityType: "brand"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "e3", entries[0].ID)
}

func TestActivityFilterByActorSubstring(t *testing.T) {
	repo, _ := newActivityRepo()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, logEntry("e1", base, model.ActionAdded, "product", alice)))
	require.NoError(t, repo.Append(ctx, logEntry("e2", base.Add(time.Minute), model.ActionAdded, "product", bruno)))

	// Case-insensitive, matches name or email
	_, total, err := repo.Query(ctx, LogFilter{ActorQuery: "FERREIRA"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = repo.Query(ctx, LogFilter{ActorQuery: "bruno@"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = repo.Query(ctx, LogFilter{ActorQuery: "nobody"}, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestActivityFilterByTimeRange(t *testing.T) {
	repo, _ := newActivityRepo()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Append(ctx, logEntry(fmt.Sprintf("e%d", i), base.Add(time.Duration(i)*time.Hour), model.ActionEdited, "product", alice)))
	}

	entries, total, err := repo.Query(ctx, LogFilter{
		From: base.Add(time.Hour),
		To:   base.Add(2 * time.Hour),
	}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, "e1", entries[1].ID)
}

func TestActivityPagination(t *testing.T) {
	repo, _ := newActivityRepo()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Append(ctx, logEntry(fmt.Sprintf("e%02d", i), base.Add(time.Duration(i)*time.Minute), model.ActionAdded, "product", alice)))
	}

	page1, total, err := repo.Query(ctx, LogFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, page1, 10)
	assert.Equal(t, "e24", page1[0].ID)

	page3, total, err := repo.Query(ctx, LogFilter{}, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, page3, 5)
	assert.Equal(t, "e00", page3[4].ID)

	// Page past the end is empty, not an error
	pageN, total, err := repo.Query(ctx, LogFilter{}, 9, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, pageN)
}

// Entries written within the same second must still come back newest-first:
// the stored timestamp keeps sub-second precision through the row round trip.
func TestActivitySameSecondOrdering(t *testing.T) {
	repo, _ := newActivityRepo()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		e := logEntry(fmt.Sprintf("e%d", i), base.Add(time.Duration(i)*time.Millisecond), model.ActionAdded, "product", alice)
		require.NoError(t, repo.Append(ctx, e))
	}

	entries, total, err := repo.Query(ctx, LogFilter{}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, "e1", entries[1].ID)
	assert.Equal(t, "e0", entries[2].ID)
}

// A historical row with an unparseable timestamp is skipped, not fatal.
func TestActivityQuerySkipsBadRows(t *testing.T) {
	repo, store := newActivityRepo()
	ctx := context.Background()

	require.NoError(t, store.AppendRows(ctx, sheet.ActivityLogs, []sheet.Row{
		{"bad", "not-a-timestamp", "added", "product", "REF-X", "", "u1", "A", "a@x.com", "manager"},
	}))
	require.NoError(t, repo.Append(ctx, logEntry("good", time.Now().UTC(), model.ActionAdded, "product", alice)))

	entries, total, err := repo.Query(ctx, LogFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "good", entries[0].ID)
}

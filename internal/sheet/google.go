package sheet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/sword9322/bezer-sub000/internal/infra"
)

const maxRetries = 3

// GoogleStore implements RowStore over the Google Sheets API v4.
//
// Reads, updates and deletes are retried a bounded number of times on
// transient errors (429, 5xx, transport). Appends are NOT retried: a timed
// out append may have landed, and a blind retry would duplicate the row.
// Every remote call goes through the circuit breaker so a downed or
// rate-limited backend fast-fails instead of stalling callers.
type GoogleStore struct {
	svc           *sheets.Service
	spreadsheetID string
	cb            *infra.CircuitBreaker

	mu        sync.Mutex
	sheetIDs  map[string]int64 // tab title → numeric sheet id, for DeleteDimension
	headersOK map[string]bool  // tables whose header has been verified this process
}

func NewGoogleStore(svc *sheets.Service, spreadsheetID string, cb *infra.CircuitBreaker) *GoogleStore {
	return &GoogleStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		cb:            cb,
		sheetIDs:      make(map[string]int64),
		headersOK:     make(map[string]bool),
	}
}

var _ RowStore = (*GoogleStore)(nil)

// Breaker exposes the circuit breaker state for the health endpoint.
func (g *GoogleStore) Breaker() *infra.CircuitBreaker { return g.cb }

func (g *GoogleStore) ReadRange(ctx context.Context, t Table) ([]Row, error) {
	rng := fmt.Sprintf("%s!A2:%s", t.Name, columnLetter(t.Width()))
	var resp *sheets.ValueRange
	err := g.call(ctx, true, func() error {
		var err error
		resp, err = g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.Name, err)
	}
	rows := make([]Row, 0, len(resp.Values))
	for _, raw := range resp.Values {
		rows = append(rows, toRow(raw, t.Width()))
	}
	return rows, nil
}

func (g *GoogleStore) AppendRows(ctx context.Context, t Table, rows []Row) error {
	if err := g.EnsureHeader(ctx, t); err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: toValues(rows)}
	err := g.call(ctx, false, func() error {
		_, err := g.svc.Spreadsheets.Values.
			Append(g.spreadsheetID, t.Name+"!A1", vr).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("append %s: %w", t.Name, err)
	}
	return nil
}

func (g *GoogleStore) UpdateRowRange(ctx context.Context, t Table, index int, rows []Row) error {
	// Data index 0 is spreadsheet row 2: row 1 holds the header.
	rng := fmt.Sprintf("%s!A%d:%s%d", t.Name, index+2, columnLetter(t.Width()), index+1+len(rows))
	vr := &sheets.ValueRange{Values: toValues(rows)}
	err := g.call(ctx, true, func() error {
		_, err := g.svc.Spreadsheets.Values.
			Update(g.spreadsheetID, rng, vr).
			ValueInputOption("RAW").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("update %s[%d]: %w", t.Name, index, err)
	}
	return nil
}

func (g *GoogleStore) DeleteRowRange(ctx context.Context, t Table, start, count int) error {
	sheetID, err := g.sheetID(ctx, t.Name)
	if err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(start + 1), // +1 skips the header row
					EndIndex:   int64(start + 1 + count),
				},
			},
		}},
	}
	err = g.call(ctx, true, func() error {
		_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete %s[%d:%d]: %w", t.Name, start, start+count, err)
	}
	return nil
}

// EnsureHeader verifies the header row once per table per process: headers
// never disappear after provisioning, and re-reading A1 before every append
// would cost a round trip against a rate-limited backend.
func (g *GoogleStore) EnsureHeader(ctx context.Context, t Table) error {
	g.mu.Lock()
	ok := g.headersOK[t.Name]
	g.mu.Unlock()
	if ok {
		return nil
	}

	rng := fmt.Sprintf("%s!A1:%s1", t.Name, columnLetter(t.Width()))
	var resp *sheets.ValueRange
	err := g.call(ctx, true, func() error {
		var err error
		resp, err = g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("ensure header %s: %w", t.Name, err)
	}
	if len(resp.Values) == 0 {
		vr := &sheets.ValueRange{Values: toValues([]Row{t.Header})}
		err = g.call(ctx, true, func() error {
			_, err := g.svc.Spreadsheets.Values.
				Update(g.spreadsheetID, rng, vr).
				ValueInputOption("RAW").
				Context(ctx).Do()
			return err
		})
		if err != nil {
			return fmt.Errorf("ensure header %s: %w", t.Name, err)
		}
	}

	g.mu.Lock()
	g.headersOK[t.Name] = true
	g.mu.Unlock()
	return nil
}

// Ping verifies the spreadsheet is reachable (health endpoint).
func (g *GoogleStore) Ping(ctx context.Context) error {
	return g.call(ctx, false, func() error {
		_, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
		return err
	})
}

// sheetID resolves the numeric id of a tab, caching the result. Tab ids are
// stable across row mutations, so one lookup per process is enough.
func (g *GoogleStore) sheetID(ctx context.Context, name string) (int64, error) {
	g.mu.Lock()
	if id, ok := g.sheetIDs[name]; ok {
		g.mu.Unlock()
		return id, nil
	}
	g.mu.Unlock()

	var doc *sheets.Spreadsheet
	err := g.call(ctx, true, func() error {
		var err error
		doc, err = g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("resolve sheet id %s: %w", name, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, s := range doc.Sheets {
		if s.Properties != nil {
			g.sheetIDs[s.Properties.Title] = s.Properties.SheetId
		}
	}
	id, ok := g.sheetIDs[name]
	if !ok {
		return 0, fmt.Errorf("%w: tab %q not found", ErrBackendUnavailable, name)
	}
	return id, nil
}

// call runs fn through the circuit breaker, with bounded exponential retry
// when retryable is true. Only breaker-open and transient failures (429,
// 5xx, transport) surface as ErrBackendUnavailable; other API errors — bad
// range, permission denied — are config or programmer mistakes, and mapping
// them to "unavailable, retry later" would send clients retrying a request
// that can never succeed.
func (g *GoogleStore) call(ctx context.Context, retryable bool, fn func() error) error {
	attempt := func() error {
		err := g.cb.Execute(fn)
		if err == nil {
			return nil
		}
		if errors.Is(err, infra.ErrCircuitOpen) || !retryable || !transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second

	err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx))
	if err == nil {
		return nil
	}
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	if errors.Is(err, infra.ErrCircuitOpen) || transient(err) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return err
}

// transient reports whether an API error is worth retrying.
func transient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	// Non-API errors are transport-level (connection reset, DNS, timeout).
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func toRow(raw []interface{}, width int) Row {
	row := make(Row, width)
	for i := 0; i < width && i < len(raw); i++ {
		row[i] = fmt.Sprint(raw[i])
	}
	return row
}

func toValues(rows []Row) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		cells := make([]interface{}, len(r))
		for j, c := range r {
			cells[j] = c
		}
		out[i] = cells
	}
	return out
}

// columnLetter converts a 1-based column count to its A1 letter. Tables here
// top out at 12 columns, so single letters suffice.
func columnLetter(n int) string {
	return string(rune('A' + n - 1))
}

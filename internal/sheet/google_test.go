package sheet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sword9322/bezer-sub000/internal/infra"
)

func newTestBreaker() *infra.CircuitBreaker {
	return infra.NewCircuitBreaker(infra.DefaultCBConfig())
}

// ── Error taxonomy ───────────────────────────────────────────────────────────

// A 4xx API error is a config or programmer mistake; it must reach the
// caller as-is, never disguised as backend unavailability.
func TestCallNonTransientAPIErrorPropagatesUnwrapped(t *testing.T) {
	g := NewGoogleStore(nil, "doc", newTestBreaker())
	apiErr := &googleapi.Error{Code: 403, Message: "The caller does not have permission"}

	calls := 0
	err := g.call(context.Background(), true, func() error {
		calls++
		return apiErr
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBackendUnavailable)
	var got *googleapi.Error
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 403, got.Code)
	assert.Equal(t, 1, calls, "non-transient errors are not retried")
}

// Rate limiting on a non-retryable call (append) fails fast as unavailable:
// the outcome of the attempt is unknown, so no blind retry.
func TestCallRateLimitOnNonRetryable(t *testing.T) {
	g := NewGoogleStore(nil, "doc", newTestBreaker())

	calls := 0
	err := g.call(context.Background(), false, func() error {
		calls++
		return &googleapi.Error{Code: 429}
	})

	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, 1, calls)
}

func TestCallBreakerOpenIsUnavailable(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: 0})
	// Trip the breaker
	_ = cb.Execute(func() error { return &googleapi.Error{Code: 500} })
	g := NewGoogleStore(nil, "doc", cb)

	called := false
	err := g.call(context.Background(), true, func() error { called = true; return nil })

	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.False(t, called, "open breaker fast-fails without reaching the API")
}

func TestTransientClassification(t *testing.T) {
	assert.True(t, transient(&googleapi.Error{Code: 429}))
	assert.True(t, transient(&googleapi.Error{Code: 503}))
	assert.False(t, transient(&googleapi.Error{Code: 400}))
	assert.False(t, transient(&googleapi.Error{Code: 404}))
	assert.False(t, transient(context.Canceled))
	assert.False(t, transient(context.DeadlineExceeded))
}

// ── Header caching ───────────────────────────────────────────────────────────

// The header check costs a round trip; once verified it must not be repeated
// on every append.
func TestAppendVerifiesHeaderOnlyOnce(t *testing.T) {
	var headerReads, appends int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			headerReads++
			fmt.Fprint(w, `{"range":"Brands!A1:A1","values":[["name"]]}`)
		case http.MethodPost:
			appends++
			fmt.Fprint(w, `{}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := sheets.NewService(ctx,
		option.WithoutAuthentication(),
		option.WithEndpoint(srv.URL),
	)
	require.NoError(t, err)

	g := NewGoogleStore(svc, "doc", newTestBreaker())

	require.NoError(t, g.AppendRows(ctx, Brands, []Row{{"Acme"}}))
	require.NoError(t, g.AppendRows(ctx, Brands, []Row{{"Globex"}}))

	assert.Equal(t, 2, appends)
	assert.Equal(t, 1, headerReads, "header verified once per table per process")
}

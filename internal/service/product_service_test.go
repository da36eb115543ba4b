package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sword9322/bezer-sub000/internal/dto"
	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/repository"
	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// ── Recording audit sink ─────────────────────────────────────────────────────

type recordingSink struct {
	entries []model.LogEntry
}

func (s *recordingSink) Record(_ context.Context, e model.LogEntry) {
	s.entries = append(s.entries, e)
}

var _ AuditSink = (*recordingSink)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

var manager = model.Actor{ID: "u1", Name: "Alice Ferreira", Email: "alice@example.com", Role: "manager"}

func newProductSvc() (ProductService, *recordingSink) {
	sink := &recordingSink{}
	repo := repository.NewProducts(sheet.NewMemory(), sheet.NewLocker())
	return NewProductService(repo, sink), sink
}

func createReq(ref string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Ref:       ref,
		Height:    decimal.NewFromInt(200),
		Width:     decimal.NewFromInt(80),
		Brand:     "Acme",
		Campaign:  "Summer 2026",
		Date:      "2026-06-01",
		Stock:     12,
		Location:  "A-03",
		Typology:  "Display",
		Warehouse: model.Warehouse1,
	}
}

// ── Create / Get ─────────────────────────────────────────────────────────────

func TestProductCreate(t *testing.T) {
	svc, sink := newProductSvc()

	resp, err := svc.Create(context.Background(), manager, createReq("REF-001"))
	require.NoError(t, err)
	assert.Equal(t, "REF-001", resp.Ref)
	assert.Equal(t, "Acme", resp.Brand)

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	assert.Equal(t, model.ActionAdded, e.Action)
	assert.Equal(t, "product", e.EntityType)
	assert.Equal(t, "REF-001", e.EntityID)
	assert.Equal(t, "u1", e.Actor.ID)
	assert.Nil(t, e.Changes.Before)
	assert.NotNil(t, e.Changes.After)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
}

func TestProductCreateDuplicate(t *testing.T) {
	svc, sink := newProductSvc()
	ctx := context.Background()

	_, err := svc.Create(ctx, manager, createReq("REF-001"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, manager, createReq("REF-001"))
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
	// The failed attempt is not audited
	assert.Len(t, sink.entries, 1)
}

func TestProductCreateBlankRef(t *testing.T) {
	svc, _ := newProductSvc()

	_, err := svc.Create(context.Background(), manager, createReq("   "))
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestProductGetAbsent(t *testing.T) {
	svc, _ := newProductSvc()

	_, err := svc.Get(context.Background(), "NOPE")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// ── Update (read-merge-write) ────────────────────────────────────────────────

func TestProductUpdatePreservesOmittedFields(t *testing.T) {
	svc, sink := newProductSvc()
	ctx := context.Background()

	_, err := svc.Create(ctx, manager, createReq("REF-001"))
	require.NoError(t, err)

	stock := 3
	resp, err := svc.Update(ctx, manager, "REF-001", dto.UpdateProductRequest{Stock: &stock})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Stock)
	// Everything the request omitted survives the whole-row write
	assert.Equal(t, "Acme", resp.Brand)
	assert.Equal(t, "Summer 2026", resp.Campaign)
	assert.Equal(t, "A-03", resp.Location)
	assert.True(t, resp.Height.Equal(decimal.NewFromInt(200)))

	require.Len(t, sink.entries, 2)
	e := sink.entries[1]
	assert.Equal(t, model.ActionEdited, e.Action)
	assert.NotNil(t, e.Changes.Before)
	assert.NotNil(t, e.Changes.After)
}

func TestProductUpdateAbsent(t *testing.T) {
	svc, _ := newProductSvc()

	stock := 1
	_, err := svc.Update(context.Background(), manager, "NOPE", dto.UpdateProductRequest{Stock: &stock})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// ── Soft delete / Restore / Purge ────────────────────────────────────────────

func TestProductDeleteRestorePurgeFlow(t *testing.T) {
	svc, sink := newProductSvc()
	ctx := context.Background()

	_, err := svc.Create(ctx, manager, createReq("REF-001"))
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, manager, "REF-001"))
	_, err = svc.Get(ctx, "REF-001")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	trash, err := svc.ListTrash(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, trash.Data, 1)

	require.NoError(t, svc.Restore(ctx, manager, "REF-001"))
	got, err := svc.Get(ctx, "REF-001")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Brand)

	require.NoError(t, svc.SoftDelete(ctx, manager, "REF-001"))
	require.NoError(t, svc.Purge(ctx, manager, "REF-001"))
	assert.ErrorIs(t, svc.Purge(ctx, manager, "REF-001"), repository.ErrNotFound)

	// create, delete, restore, delete, purge
	require.Len(t, sink.entries, 5)
	assert.Equal(t, model.ActionDeleted, sink.entries[1].Action)
	assert.NotNil(t, sink.entries[1].Changes.Before)
	assert.Nil(t, sink.entries[1].Changes.After)
	assert.Equal(t, model.ActionAdded, sink.entries[2].Action)
	assert.Equal(t, model.ActionDeleted, sink.entries[4].Action)
}

// ── List: filtering and pagination ───────────────────────────────────────────

func seedProducts(t *testing.T, svc ProductService, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		req := createReq(fmt.Sprintf("REF-%03d", i))
		if i%2 == 1 {
			req.Warehouse = model.Warehouse2
			req.Brand = "Globex"
		}
		_, err := svc.Create(ctx, manager, req)
		require.NoError(t, err)
	}
}

func TestProductListPagination(t *testing.T) {
	svc, _ := newProductSvc()
	seedProducts(t, svc, 25)

	page1, err := svc.List(context.Background(), dto.ProductFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Len(t, page1.Data, 10)

	page3, err := svc.List(context.Background(), dto.ProductFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Data, 5)

	// Past the end: empty page, same total
	page9, err := svc.List(context.Background(), dto.ProductFilter{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page9.Data)
	assert.Equal(t, 25, page9.Total)
}

func TestProductListWarehousePartition(t *testing.T) {
	svc, _ := newProductSvc()
	seedProducts(t, svc, 10)

	w1, err := svc.List(context.Background(), dto.ProductFilter{Warehouse: model.Warehouse1, Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 5, w1.Total)
	for _, p := range w1.Data {
		assert.Equal(t, model.Warehouse1, p.Warehouse)
	}
}

func TestProductListSubstringFilters(t *testing.T) {
	svc, _ := newProductSvc()
	seedProducts(t, svc, 10)

	// Case-insensitive substring on brand
	res, err := svc.List(context.Background(), dto.ProductFilter{Brand: "glob", Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)

	// Ref substring
	res, err = svc.List(context.Background(), dto.ProductFilter{Ref: "ref-00", Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Total)

	// Stock matched as text
	res, err = svc.List(context.Background(), dto.ProductFilter{Stock: "12", Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Total)

	// Filters combine with AND
	res, err = svc.List(context.Background(), dto.ProductFilter{Brand: "glob", Warehouse: model.Warehouse1, Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

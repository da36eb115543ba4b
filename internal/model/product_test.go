package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// The backend trims trailing empty cells from a row; decoding must pad.
func TestProductFromShortRow(t *testing.T) {
	p, err := ProductFromRow(sheet.Row{"REF-001", "", "200", "80"})
	require.NoError(t, err)
	assert.Equal(t, "REF-001", p.Ref)
	assert.Equal(t, "200", p.Height.String())
	assert.Zero(t, p.Stock)
	assert.Empty(t, p.Warehouse)
}

func TestProductFromRowEmptyNumericCells(t *testing.T) {
	p, err := ProductFromRow(sheet.Row{"REF-001", "", "", "", "Acme", "", "", "", "", "", "", "1"})
	require.NoError(t, err)
	assert.True(t, p.Height.IsZero())
	assert.Zero(t, p.Stock)
	assert.Equal(t, Warehouse1, p.Warehouse)
}

func TestProductFromRowMalformedStock(t *testing.T) {
	row := sheet.Row{"REF-001", "", "200", "80", "", "", "", "twelve", "", "", "", "1"}
	_, err := ProductFromRow(row)
	assert.Error(t, err)
}

func TestProductRowRoundTrip(t *testing.T) {
	p := Product{Ref: "REF-001", Brand: "Acme", Stock: 7, Warehouse: Warehouse2}
	decoded, err := ProductFromRow(p.Row())
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

// A malformed changes JSON cell is tolerated: the entry decodes with empty
// changes instead of failing the whole query.
func TestLogEntryTolerantChangesDecode(t *testing.T) {
	e, err := LogEntryFromRow(sheet.Row{
		"id1", "2026-08-01T10:00:00Z", "edited", "product", "REF-001",
		"{broken json", "u1", "Alice", "alice@example.com", "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", e.Action)
	assert.Nil(t, e.Changes.Before)
	assert.Nil(t, e.Changes.After)
}

package model

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// Warehouse tags as stored in the sheet. Display names are presentation
// logic and live in the clients.
const (
	Warehouse1 = "1"
	Warehouse2 = "2"
)

// Product is one inventory record. Identity is the Ref column — never the
// row position, which is invalidated by any insert or delete above it.
type Product struct {
	Ref       string
	Image     string
	Height    decimal.Decimal
	Width     decimal.Decimal
	Brand     string
	Campaign  string
	Date      string // YYYY-MM-DD
	Stock     int
	Location  string
	Typology  string
	Notes     string
	Warehouse string // Warehouse1 | Warehouse2
}

func (p Product) Key() string { return p.Ref }

// Row flattens the product into the Inventory column order.
func (p Product) Row() sheet.Row {
	return sheet.Row{
		p.Ref,
		p.Image,
		p.Height.String(),
		p.Width.String(),
		p.Brand,
		p.Campaign,
		p.Date,
		strconv.Itoa(p.Stock),
		p.Location,
		p.Typology,
		p.Notes,
		p.Warehouse,
	}
}

// ProductFromRow decodes an Inventory row. Short rows are tolerated (the
// backend trims trailing empty cells); malformed numeric cells are not.
func ProductFromRow(r sheet.Row) (Product, error) {
	r = padded(r, sheet.Inventory.Width())
	height, err := parseDecimal(r[2])
	if err != nil {
		return Product{}, fmt.Errorf("product %q: height: %w", r[0], err)
	}
	width, err := parseDecimal(r[3])
	if err != nil {
		return Product{}, fmt.Errorf("product %q: width: %w", r[0], err)
	}
	stock, err := parseInt(r[7])
	if err != nil {
		return Product{}, fmt.Errorf("product %q: stock: %w", r[0], err)
	}
	return Product{
		Ref:       r[0],
		Image:     r[1],
		Height:    height,
		Width:     width,
		Brand:     r[4],
		Campaign:  r[5],
		Date:      r[6],
		Stock:     stock,
		Location:  r[8],
		Typology:  r[9],
		Notes:     r[10],
		Warehouse: r[11],
	}, nil
}

func padded(r sheet.Row, width int) sheet.Row {
	if len(r) >= width {
		return r
	}
	out := make(sheet.Row, width)
	copy(out, r)
	return out
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

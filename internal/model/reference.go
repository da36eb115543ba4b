package model

import "github.com/sword9322/bezer-sub000/internal/sheet"

// Rack is a storage rack entry. Rack ids are unique per warehouse, not
// globally — the same id may exist once in each warehouse.
type Rack struct {
	ID        string
	Warehouse string
}

func (r Rack) Row() sheet.Row { return sheet.Row{r.ID, r.Warehouse} }

func RackFromRow(row sheet.Row) Rack {
	row = padded(row, sheet.Racks.Width())
	return Rack{ID: row[0], Warehouse: row[1]}
}

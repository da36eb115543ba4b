package model

import "github.com/sword9322/bezer-sub000/internal/sheet"

// Campaign statuses as stored in the sheet (kept in Portuguese — they are
// the wire contract with the existing spreadsheet and its exports).
const (
	CampaignActive   = "Ativo"
	CampaignInactive = "Inativo"
	CampaignPlanned  = "Planejado"
	CampaignClosed   = "Encerrado"
)

// ValidCampaignStatus reports whether s is one of the known statuses.
func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignActive, CampaignInactive, CampaignPlanned, CampaignClosed:
		return true
	}
	return false
}

// Campaign is a marketing campaign. Product.Campaign references the Name as
// a display value — the store does not enforce it as a foreign key.
type Campaign struct {
	ID          string
	Name        string
	BrandID     string
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
	Description string
	Status      string
}

func (c Campaign) Key() string { return c.ID }

func (c Campaign) Row() sheet.Row {
	return sheet.Row{c.ID, c.Name, c.BrandID, c.StartDate, c.EndDate, c.Description, c.Status}
}

func CampaignFromRow(r sheet.Row) (Campaign, error) {
	r = padded(r, sheet.Campaigns.Width())
	return Campaign{
		ID:          r[0],
		Name:        r[1],
		BrandID:     r[2],
		StartDate:   r[3],
		EndDate:     r[4],
		Description: r[5],
		Status:      r[6],
	}, nil
}

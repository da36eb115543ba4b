package repository

import (
	"github.com/sword9322/bezer-sub000/internal/model"
	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// NewProducts builds the inventory repository: unique refs, paired trash
// table for soft delete.
func NewProducts(store sheet.RowStore, locks *sheet.Locker) *Keyed[model.Product] {
	trash := sheet.InventoryTrash
	return NewKeyed(store, locks, KeyedConfig[model.Product]{
		Primary: sheet.Inventory,
		Trash:   &trash,
		Key:     model.Product.Key,
		Encode:  model.Product.Row,
		Decode:  model.ProductFromRow,
		Unique:  true,
	})
}

// NewCampaigns builds the campaign repository. Campaigns have no trash pair:
// deleting one removes the row for good.
func NewCampaigns(store sheet.RowStore, locks *sheet.Locker) *Keyed[model.Campaign] {
	return NewKeyed(store, locks, KeyedConfig[model.Campaign]{
		Primary: sheet.Campaigns,
		Key:     model.Campaign.Key,
		Encode:  model.Campaign.Row,
		Decode:  model.CampaignFromRow,
		Unique:  true,
	})
}

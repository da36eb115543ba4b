package sheet

// inventoryHeader is shared by the primary table and its trash pair — soft
// delete moves whole rows between the two, so the layouts must stay identical.
var inventoryHeader = Row{
	"ref", "image", "height", "width", "brand", "campaign",
	"date", "stock", "location", "typology", "notes", "warehouse",
}

// Logical tables and their wire column order. These names are the contract
// with the spreadsheet: each one is a tab in the configured document.
var (
	Inventory      = Table{Name: "Inventory", Header: inventoryHeader}
	InventoryTrash = Table{Name: "InventoryTrash", Header: inventoryHeader}

	Brands     = Table{Name: "Brands", Header: Row{"name"}}
	Typologies = Table{Name: "Typologies", Header: Row{"name"}}
	Racks      = Table{Name: "Racks", Header: Row{"id", "warehouse"}}

	Campaigns = Table{Name: "Campaigns", Header: Row{
		"id", "name", "brandId", "startDate", "endDate", "description", "status",
	}}

	ActivityLogs = Table{Name: "ActivityLogs", Header: Row{
		"id", "timestamp", "actionType", "entityType", "entityId",
		"changesJSON", "userId", "userName", "userEmail", "userRole",
	}}
)

package ecommerce

// SquareListCatalogResponse is the catalog listing envelope
type SquareListCatalogResponse struct {
	Cursor  string               `json:"cursor"`
	Objects []SquareCatalogEntry `json:"objects"`
	Errors  []SquareError        `json:"errors"`
}

// SquareCatalogEntry is one object in a catalog listing; only ITEM
// objects carry item data.
type SquareCatalogEntry struct {
	Type              string                   `json:"type"`
	ID                string                   `json:"id"`
	ItemData          *SquareItemData          `json:"item_data"`
	ItemVariationData *SquareItemVariationData `json:"item_variation_data"`
}

// SquareItemData is the item payload of an ITEM catalog object
type SquareItemData struct {
	Name       string               `json:"name"`
	Variations []SquareCatalogEntry `json:"variations"`
}

// SquareItemVariationData is set on ITEM_VARIATION catalog objects
// nested under an item.
type SquareItemVariationData struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	SKU    string `json:"sku"`
}

// SquareBatchRetrieveCountsRequest asks for inventory counts of a set
// of catalog objects.
type SquareBatchRetrieveCountsRequest struct {
	CatalogObjectIDs []string `json:"catalog_object_ids"`
	Cursor           string   `json:"cursor,omitempty"`
}

// SquareBatchRetrieveCountsResponse carries inventory counts per
// catalog object and state.
type SquareBatchRetrieveCountsResponse struct {
	Cursor string                 `json:"cursor"`
	Counts []SquareInventoryCount `json:"counts"`
	Errors []SquareError          `json:"errors"`
}

// SquareInventoryCount is the counted quantity of one variation in one
// state at one location. Quantity is a decimal string.
type SquareInventoryCount struct {
	CatalogObjectID string `json:"catalog_object_id"`
	State           string `json:"state"`
	LocationID      string `json:"location_id"`
	Quantity        string `json:"quantity"`
}

// SquareError is an error entry in a Square API response
type SquareError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

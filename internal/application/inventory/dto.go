package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/inventory"
)

// AdjustRequest represents a request to set the absolute quantity at a
// location, optionally reconfiguring the location's minimum stock level
type AdjustRequest struct {
	ProductID     uuid.UUID `json:"product_id" binding:"required"`
	LocationID    uuid.UUID `json:"location_id" binding:"required"`
	NewQuantity   int64     `json:"new_quantity"`
	MinStockLevel *int64    `json:"min_stock_level" binding:"omitempty,min=0"`
	Reason        string    `json:"reason"`
	Notes         string    `json:"notes"`
}

// TransferRequest represents a request to move stock between locations
type TransferRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	FromLocationID uuid.UUID `json:"from_location_id" binding:"required"`
	ToLocationID   uuid.UUID `json:"to_location_id" binding:"required"`
	Quantity       int64     `json:"quantity" binding:"required"`
}

// AddProductionRequest represents a request to record produced stock
type AddProductionRequest struct {
	ProductID  uuid.UUID `json:"product_id" binding:"required"`
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required"`
	BatchRef   string    `json:"batch_ref"`
}

// RecordSaleRequest represents a request to record a sale
type RecordSaleRequest struct {
	ProductID  uuid.UUID                   `json:"product_id" binding:"required"`
	LocationID uuid.UUID                   `json:"location_id" binding:"required"`
	Quantity   int64                       `json:"quantity" binding:"required"`
	Source     inventory.TransactionSource `json:"source" binding:"required"`
	OrderRef   string                      `json:"order_ref"`
}

// MutationResponse reports the stock state after a mutation
type MutationResponse struct {
	ProductID     uuid.UUID  `json:"product_id"`
	LocationID    uuid.UUID  `json:"location_id"`
	Quantity      int64      `json:"quantity"`
	TotalQuantity int64      `json:"total_quantity"`
	TransactionID *uuid.UUID `json:"transaction_id,omitempty"`
}

// LocationStock is the stock position at one location. IsLowStock is set
// when the location has a minimum configured and the quantity is at or
// below it.
type LocationStock struct {
	LocationID    uuid.UUID `json:"location_id"`
	LocationName  string    `json:"location_name"`
	Quantity      int64     `json:"quantity"`
	MinStockLevel int64     `json:"min_stock_level,omitempty"`
	IsLowStock    bool      `json:"is_low_stock"`
}

// ProductInventoryStatus summarizes a product's stock position
type ProductInventoryStatus struct {
	ProductID     uuid.UUID       `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Locations     []LocationStock `json:"locations"`
	TotalQuantity int64           `json:"total_quantity"`
	LowStock      bool            `json:"low_stock"`
	Threshold     int64           `json:"threshold"`
}

// TransactionListFilter represents filter options for the ledger
type TransactionListFilter struct {
	ProductID  *uuid.UUID `form:"product_id"`
	LocationID *uuid.UUID `form:"location_id"`
	Type       string     `form:"type" binding:"omitempty,oneof=sale production adjustment transfer"`
	Source     string     `form:"source" binding:"omitempty,oneof=shopify square amazon manual webhook"`
	Reference  string     `form:"reference"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID               uuid.UUID  `json:"id"`
	Type             string     `json:"type"`
	ProductID        uuid.UUID  `json:"product_id"`
	ProductName      string     `json:"product_name"`
	ProductSKU       string     `json:"product_sku"`
	Quantity         int64      `json:"quantity"`
	FromLocationID   *uuid.UUID `json:"from_location_id,omitempty"`
	FromLocationName string     `json:"from_location_name,omitempty"`
	ToLocationID     *uuid.UUID `json:"to_location_id,omitempty"`
	ToLocationName   string     `json:"to_location_name,omitempty"`
	Source           string     `json:"source"`
	Reference        string     `json:"reference,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToTransactionResponse maps a ledger entry to its API representation
func ToTransactionResponse(tx *inventory.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:               tx.ID,
		Type:             tx.Type.String(),
		ProductID:        tx.ProductID,
		ProductName:      tx.ProductName,
		ProductSKU:       tx.ProductSKU,
		Quantity:         tx.Quantity,
		FromLocationID:   tx.FromLocationID,
		FromLocationName: tx.FromLocationName,
		ToLocationID:     tx.ToLocationID,
		ToLocationName:   tx.ToLocationName,
		Source:           tx.Source.String(),
		Reference:        tx.Reference,
		Notes:            tx.Notes,
		CreatedAt:        tx.CreatedAt,
	}
}

// ToTransactionResponses maps a slice of ledger entries
func ToTransactionResponses(txs []inventory.InventoryTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}

package bundle

import (
	"context"

	"github.com/google/uuid"

	inventoryapp "github.com/omnistock/backend/internal/application/inventory"
)

// ComponentInput names one product included in a bundle
type ComponentInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// DefineBundleRequest turns an existing product into a bundle. IsActive
// defaults to true; an inactive bundle keeps its definition but cannot
// be sold.
type DefineBundleRequest struct {
	Components []ComponentInput `json:"components" binding:"required,min=1,dive"`
	IsActive   *bool            `json:"is_active"`
}

// BundleSaleRequest records a sale of a bundle. When LocationID is nil the
// components are deducted at the primary location.
type BundleSaleRequest struct {
	Quantity   int64      `json:"quantity" binding:"required,min=1"`
	LocationID *uuid.UUID `json:"location_id"`
	Source     string     `json:"source" binding:"omitempty,oneof=shopify square amazon manual webhook"`
	OrderRef   string     `json:"order_ref"`
}

// ComponentDeduction reports a component successfully deducted during a
// bundle sale
type ComponentDeduction struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  int64     `json:"quantity"`
	Remaining int64     `json:"remaining"`
}

// ComponentFailure reports a component that could not be deducted
type ComponentFailure struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  int64     `json:"quantity"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
}

// BundleSaleResult reports the outcome of a bundle sale. Deductions are
// applied component by component without rollback, so a partial result
// lists both what went through and what failed.
type BundleSaleResult struct {
	BundleID  uuid.UUID            `json:"bundle_id"`
	Quantity  int64                `json:"quantity"`
	Deducted  []ComponentDeduction `json:"deducted"`
	Failed    []ComponentFailure   `json:"failed"`
	Completed bool                 `json:"completed"`
}

// ComponentAvailability reports how many bundles one component can supply
type ComponentAvailability struct {
	ProductID   uuid.UUID `json:"product_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	RequiredPer int64     `json:"required_per"`
	Available   int64     `json:"available"`
	MaxBundles  int64     `json:"max_bundles"`
}

// BundleInventoryStatus reports how many complete bundles the current
// stock can fulfil
type BundleInventoryStatus struct {
	BundleID   uuid.UUID               `json:"bundle_id"`
	SKU        string                  `json:"sku"`
	Name       string                  `json:"name"`
	LocationID *uuid.UUID              `json:"location_id,omitempty"`
	Components []ComponentAvailability `json:"components"`
	MaxBundles int64                   `json:"max_bundles"`
	CanFulfill bool                    `json:"can_fulfill"`
}

// SaleRecorder records component sales for bundle processing
type SaleRecorder interface {
	RecordSale(ctx context.Context, req inventoryapp.RecordSaleRequest) (*inventoryapp.MutationResponse, error)
}

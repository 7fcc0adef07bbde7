package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnistock/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU               string           `json:"sku" binding:"required,min=1,max=50"`
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Description       string           `json:"description" binding:"max=2000"`
	Category          string           `json:"category" binding:"max=100"`
	Price             *decimal.Decimal `json:"price"`
	Cost              *decimal.Decimal `json:"cost"`
	LowStockThreshold *int64           `json:"low_stock_threshold"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description       *string          `json:"description" binding:"omitempty,max=2000"`
	Category          *string          `json:"category" binding:"omitempty,max=100"`
	Price             *decimal.Decimal `json:"price"`
	Cost              *decimal.Decimal `json:"cost"`
	LowStockThreshold *int64           `json:"low_stock_threshold"`
}

// ProductListFilter represents filter options for listing products
type ProductListFilter struct {
	Search       string `form:"search"`
	Category     string `form:"category"`
	LowStockOnly bool   `form:"low_stock_only"`
	BundlesOnly  bool   `form:"bundles_only"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BundleComponentResponse represents one component of a bundle
type BundleComponentResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
}

// LocationStockResponse is the per-location stock record on a product
type LocationStockResponse struct {
	Quantity      int64 `json:"quantity"`
	MinStockLevel int64 `json:"min_stock_level,omitempty"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID                           `json:"id"`
	SKU               string                              `json:"sku"`
	Name              string                              `json:"name"`
	Description       string                              `json:"description,omitempty"`
	Category          string                              `json:"category,omitempty"`
	Price             decimal.Decimal                     `json:"price"`
	Cost              decimal.Decimal                     `json:"cost"`
	Locations         map[uuid.UUID]LocationStockResponse `json:"locations"`
	TotalQuantity     int64                               `json:"total_quantity"`
	LowStockThreshold int64                               `json:"low_stock_threshold"`
	LowStock          bool                                `json:"low_stock"`
	IsBundle          bool                                `json:"is_bundle"`
	BundleActive      bool                                `json:"bundle_active,omitempty"`
	BundleComponents  []BundleComponentResponse           `json:"bundle_components,omitempty"`
	CreatedAt         time.Time                           `json:"created_at"`
	UpdatedAt         time.Time                           `json:"updated_at"`
}

// ToProductResponse maps a product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	locations := make(map[uuid.UUID]LocationStockResponse, len(product.Locations))
	for id, entry := range product.Locations {
		locations[id] = LocationStockResponse{
			Quantity:      entry.Quantity,
			MinStockLevel: entry.MinStockLevel,
		}
	}

	var components []BundleComponentResponse
	if product.IsBundle {
		components = make([]BundleComponentResponse, len(product.BundleComponents))
		for i, c := range product.BundleComponents {
			components[i] = BundleComponentResponse{
				ProductID: c.ProductID,
				SKU:       c.SKU,
				Name:      c.Name,
				Quantity:  c.Quantity,
			}
		}
	}

	return ProductResponse{
		ID:                product.ID,
		SKU:               product.SKU,
		Name:              product.Name,
		Description:       product.Description,
		Category:          product.Category,
		Price:             product.Price,
		Cost:              product.Cost,
		Locations:         locations,
		TotalQuantity:     product.TotalQuantity,
		LowStockThreshold: product.LowStockThreshold,
		LowStock:          product.IsLowStock(),
		IsBundle:          product.IsBundle,
		BundleActive:      product.BundleActive,
		BundleComponents:  components,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}

// ToProductResponses maps a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

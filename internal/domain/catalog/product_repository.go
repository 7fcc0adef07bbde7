package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindBundles finds all bundle products
	FindBundles(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock persists a mutated product only when the stored row
	// still carries expectedVersion, failing with ErrConcurrencyConflict
	// when another writer committed first
	SaveWithLock(ctx context.Context, product *Product, expectedVersion int) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// CountWithStockAt counts products holding stock at the given location.
	// A product counts as holding stock when its location map references
	// the location, even at quantity zero.
	CountWithStockAt(ctx context.Context, locationID uuid.UUID) (int64, error)
}

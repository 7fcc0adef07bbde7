package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
)

// TransactionRepository defines the interface for ledger persistence.
// The ledger is append-only: entries are created, never updated or deleted.
type TransactionRepository interface {
	// FindByID finds a ledger entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryTransaction, error)

	// FindAll finds ledger entries matching the filter, newest first
	FindAll(ctx context.Context, filter TransactionFilter) ([]InventoryTransaction, error)

	// FindByProduct finds ledger entries for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]InventoryTransaction, error)

	// FindByReference finds ledger entries carrying an external reference
	FindByReference(ctx context.Context, reference string) ([]InventoryTransaction, error)

	// Create appends a new ledger entry
	Create(ctx context.Context, tx *InventoryTransaction) error

	// Count counts ledger entries matching the filter
	Count(ctx context.Context, filter TransactionFilter) (int64, error)

	// Stats aggregates movement volumes per type within an optional range
	Stats(ctx context.Context, start, end *time.Time) (*TransactionStats, error)
}

// TransactionFilter extends shared.Filter with ledger-specific filters
type TransactionFilter struct {
	shared.Filter
	ProductID  *uuid.UUID
	LocationID *uuid.UUID
	Type       *TransactionType
	Source     *TransactionSource
	Reference  string
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionStats summarizes ledger activity. Volumes are sums of
// absolute quantities per entry type.
type TransactionStats struct {
	TotalTransactions int64 `json:"total_transactions"`
	SalesVolume       int64 `json:"sales_volume"`
	ProductionVolume  int64 `json:"production_volume"`
	AdjustmentVolume  int64 `json:"adjustment_volume"`
	TransferVolume    int64 `json:"transfer_volume"`
}

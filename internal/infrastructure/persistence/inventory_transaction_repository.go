package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/backend/internal/domain/inventory"
	"github.com/omnistock/backend/internal/domain/shared"
)

// GormInventoryTransactionRepository implements TransactionRepository using GORM.
// The ledger is append-only: entries are created, never updated.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormInventoryTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var tx inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAll finds ledger entries matching the filter, newest first
func (r *GormInventoryTransactionRepository) FindAll(ctx context.Context, filter inventory.TransactionFilter) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{}), filter)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByProduct finds ledger entries for a product, newest first
func (r *GormInventoryTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.InventoryTransaction, error) {
	txFilter := inventory.TransactionFilter{Filter: filter, ProductID: &productID}
	return r.FindAll(ctx, txFilter)
}

// FindByReference finds ledger entries carrying an external reference
func (r *GormInventoryTransactionRepository) FindByReference(ctx context.Context, reference string) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Create appends a new ledger entry
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// Count counts ledger entries matching the filter
func (r *GormInventoryTransactionRepository) Count(ctx context.Context, filter inventory.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Stats aggregates movement volumes per type within an optional range
func (r *GormInventoryTransactionRepository) Stats(ctx context.Context, start, end *time.Time) (*inventory.TransactionStats, error) {
	query := r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{})
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var rows []struct {
		Type   inventory.TransactionType
		Count  int64
		Volume int64
	}
	if err := query.
		Select("type, COUNT(*) as count, COALESCE(SUM(ABS(quantity)), 0) as volume").
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &inventory.TransactionStats{}
	for _, row := range rows {
		stats.TotalTransactions += row.Count
		switch row.Type {
		case inventory.TransactionTypeSale:
			stats.SalesVolume = row.Volume
		case inventory.TransactionTypeProduction:
			stats.ProductionVolume = row.Volume
		case inventory.TransactionTypeAdjustment:
			stats.AdjustmentVolume = row.Volume
		case inventory.TransactionTypeTransfer:
			stats.TransferVolume = row.Volume
		}
	}
	return stats, nil
}

// applyFilter applies conditions, pagination and ordering to the query
func (r *GormInventoryTransactionRepository) applyFilter(query *gorm.DB, filter inventory.TransactionFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyConditions applies filter conditions without pagination
func (r *GormInventoryTransactionRepository) applyConditions(query *gorm.DB, filter inventory.TransactionFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.LocationID != nil {
		query = query.Where("from_location_id = ? OR to_location_id = ?", *filter.LocationID, *filter.LocationID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	if filter.Reference != "" {
		query = query.Where("reference = ?", filter.Reference)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	return query
}

// Ensure GormInventoryTransactionRepository implements TransactionRepository
var _ inventory.TransactionRepository = (*GormInventoryTransactionRepository)(nil)

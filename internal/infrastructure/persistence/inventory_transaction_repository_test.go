package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnistock/backend/internal/domain/inventory"
	"github.com/omnistock/backend/internal/domain/shared"
)

func ledgerFixture(t *testing.T) (*GormInventoryTransactionRepository, inventory.ProductSnapshot, uuid.UUID) {
	t.Helper()

	db := setupTestDB(t)
	repo := NewGormInventoryTransactionRepository(db)

	product := inventory.ProductSnapshot{ID: uuid.New(), Name: "Ceramic Mug", SKU: "MUG-100"}

	return repo, product, uuid.New()
}

func TestGormInventoryTransactionRepository_CreateAndFind(t *testing.T) {
	repo, product, locationID := ledgerFixture(t)
	ctx := context.Background()

	entry, err := inventory.NewAdjustmentTransaction(product, 5, locationID)
	require.NoError(t, err)
	entry.WithReference("cycle count").WithNotes("Adjusted from 0 to 5")
	require.NoError(t, repo.Create(ctx, entry))

	t.Run("should find by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, inventory.TransactionTypeAdjustment, found.Type)
		assert.Equal(t, int64(5), found.Quantity)
		assert.Equal(t, "cycle count", found.Reference)
	})

	t.Run("should find by reference", func(t *testing.T) {
		entries, err := repo.FindByReference(ctx, "cycle count")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entry.ID, entries[0].ID)
	})

	t.Run("should return ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormInventoryTransactionRepository_FindAll(t *testing.T) {
	repo, product, locationID := ledgerFixture(t)
	ctx := context.Background()

	otherProduct := inventory.ProductSnapshot{ID: uuid.New(), Name: "Other", SKU: "OTHER-001"}

	adjustment, err := inventory.NewAdjustmentTransaction(product, 10, locationID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, adjustment))

	sale, err := inventory.NewSaleTransaction(product, 3, locationID, inventory.SourceShopify)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, sale))

	otherSale, err := inventory.NewSaleTransaction(otherProduct, 1, locationID, inventory.SourceManual)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, otherSale))

	t.Run("should filter by product", func(t *testing.T) {
		filter := inventory.TransactionFilter{Filter: shared.Filter{Page: 1, PageSize: 20}, ProductID: &product.ID}
		entries, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("should filter by type", func(t *testing.T) {
		saleType := inventory.TransactionTypeSale
		filter := inventory.TransactionFilter{Filter: shared.Filter{Page: 1, PageSize: 20}, Type: &saleType}
		entries, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("should filter by source", func(t *testing.T) {
		source := inventory.SourceWebhook
		filter := inventory.TransactionFilter{Filter: shared.Filter{Page: 1, PageSize: 20}, Source: &source}
		entries, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, sale.ID, entries[0].ID)
	})

	t.Run("should filter by location on either side", func(t *testing.T) {
		filter := inventory.TransactionFilter{Filter: shared.Filter{Page: 1, PageSize: 20}, LocationID: &locationID}
		entries, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("should count matching entries", func(t *testing.T) {
		filter := inventory.TransactionFilter{ProductID: &product.ID}
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormInventoryTransactionRepository_Stats(t *testing.T) {
	repo, product, locationID := ledgerFixture(t)
	ctx := context.Background()

	sale, err := inventory.NewSaleTransaction(product, 5, locationID, inventory.SourceShopify)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, sale))

	production, err := inventory.NewProductionTransaction(product, 20, locationID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, production))

	adjustment, err := inventory.NewAdjustmentTransaction(product, -4, locationID)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, adjustment))

	t.Run("should aggregate absolute volumes per type", func(t *testing.T) {
		stats, err := repo.Stats(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalTransactions)
		assert.Equal(t, int64(5), stats.SalesVolume)
		assert.Equal(t, int64(20), stats.ProductionVolume)
		assert.Equal(t, int64(4), stats.AdjustmentVolume)
		assert.Equal(t, int64(0), stats.TransferVolume)
	})

	t.Run("should honor the date range", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		stats, err := repo.Stats(ctx, &future, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.TotalTransactions)
	})
}

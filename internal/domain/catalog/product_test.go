package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct("SKU-001", "Test Product")
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Test Product")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "SKU-001", product.SKU)
		assert.Equal(t, "Test Product", product.Name)
		assert.True(t, product.Price.IsZero())
		assert.True(t, product.Cost.IsZero())
		assert.Zero(t, product.TotalQuantity)
		assert.Equal(t, DefaultLowStockThreshold, product.LowStockThreshold)
		assert.False(t, product.IsBundle)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("converts SKU to uppercase", func(t *testing.T) {
		product, err := NewProduct("sku-001", "Test Product")
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.SKU)
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		product, err := NewProduct("", "Test Product")
		assert.Nil(t, product)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with invalid characters in SKU", func(t *testing.T) {
		product, err := NewProduct("SKU 001!", "Test Product")
		assert.Nil(t, product)
		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "")
		assert.Nil(t, product)
		assert.Error(t, err)
	})
}

func TestProductSetPrices(t *testing.T) {
	product := createTestProduct(t)

	require.NoError(t, product.SetPrices(decimal.NewFromFloat(19.99), decimal.NewFromFloat(7.50)))
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(19.99)))
	assert.True(t, product.Cost.Equal(decimal.NewFromFloat(7.50)))

	err := product.SetPrices(decimal.NewFromInt(-1), decimal.Zero)
	assert.Error(t, err)
}

func TestProductSetQuantityAt(t *testing.T) {
	locA := uuid.New()
	locB := uuid.New()

	t.Run("sets quantity and recomputes total", func(t *testing.T) {
		product := createTestProduct(t)

		delta, err := product.SetQuantityAt(locA, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), delta)
		assert.Equal(t, int64(10), product.TotalQuantity)

		delta, err = product.SetQuantityAt(locB, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), delta)
		assert.Equal(t, int64(15), product.TotalQuantity)

		delta, err = product.SetQuantityAt(locA, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(-6), delta)
		assert.Equal(t, int64(9), product.TotalQuantity)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		product := createTestProduct(t)
		_, err := product.SetQuantityAt(locA, -1)
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})
}

func TestProductAddRemoveStock(t *testing.T) {
	loc := uuid.New()

	t.Run("add then remove", func(t *testing.T) {
		product := createTestProduct(t)

		require.NoError(t, product.AddStockAt(loc, 20))
		assert.Equal(t, int64(20), product.QuantityAt(loc))
		assert.Equal(t, int64(20), product.TotalQuantity)

		require.NoError(t, product.RemoveStockAt(loc, 8))
		assert.Equal(t, int64(12), product.QuantityAt(loc))
		assert.Equal(t, int64(12), product.TotalQuantity)
	})

	t.Run("remove more than available fails", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.AddStockAt(loc, 3))

		err := product.RemoveStockAt(loc, 4)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient stock")
		assert.Equal(t, int64(3), product.QuantityAt(loc))
	})

	t.Run("zero or negative amounts rejected", func(t *testing.T) {
		product := createTestProduct(t)
		assert.Error(t, product.AddStockAt(loc, 0))
		assert.Error(t, product.RemoveStockAt(loc, -2))
	})
}

func TestProductTransferStock(t *testing.T) {
	from := uuid.New()
	to := uuid.New()

	t.Run("conserves total", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.AddStockAt(from, 10))

		require.NoError(t, product.TransferStock(from, to, 4))
		assert.Equal(t, int64(6), product.QuantityAt(from))
		assert.Equal(t, int64(4), product.QuantityAt(to))
		assert.Equal(t, int64(10), product.TotalQuantity)
	})

	t.Run("same location rejected", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.AddStockAt(from, 10))

		err := product.TransferStock(from, from, 2)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "same")
	})

	t.Run("insufficient source stock rejected", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.AddStockAt(from, 2))

		err := product.TransferStock(from, to, 5)
		assert.Error(t, err)
		assert.Equal(t, int64(2), product.QuantityAt(from))
		assert.Zero(t, product.QuantityAt(to))
	})
}

func TestProductLowStock(t *testing.T) {
	loc := uuid.New()
	product := createTestProduct(t)
	require.NoError(t, product.SetLowStockThreshold(5))

	require.NoError(t, product.AddStockAt(loc, 10))
	assert.False(t, product.IsLowStock())

	require.NoError(t, product.RemoveStockAt(loc, 6))
	assert.True(t, product.IsLowStock())

	found := false
	for _, e := range product.GetDomainEvents() {
		if e.EventType() == EventTypeStockBelowThreshold {
			found = true
		}
	}
	assert.True(t, found, "expected a StockBelowThreshold event")
}

func TestProductMinStockAt(t *testing.T) {
	t.Run("flags low stock per location once a minimum is set", func(t *testing.T) {
		loc := uuid.New()
		other := uuid.New()
		product := createTestProduct(t)

		require.NoError(t, product.AddStockAt(loc, 10))
		require.NoError(t, product.AddStockAt(other, 2))
		assert.False(t, product.IsLowStockAt(loc), "no minimum configured yet")
		assert.False(t, product.IsLowStockAt(other))

		require.NoError(t, product.SetMinStockAt(loc, 4))
		assert.Equal(t, int64(4), product.MinStockAt(loc))
		assert.False(t, product.IsLowStockAt(loc))

		require.NoError(t, product.RemoveStockAt(loc, 6))
		assert.True(t, product.IsLowStockAt(loc))
		assert.False(t, product.IsLowStockAt(other), "minimum applies only to its own location")
	})

	t.Run("rejects negative minimum", func(t *testing.T) {
		product := createTestProduct(t)
		assert.Error(t, product.SetMinStockAt(uuid.New(), -1))
	})

	t.Run("references the location even without stock", func(t *testing.T) {
		loc := uuid.New()
		product := createTestProduct(t)

		require.NoError(t, product.SetMinStockAt(loc, 3))
		assert.True(t, product.HoldsStockAt(loc))
		assert.Equal(t, int64(0), product.QuantityAt(loc))
	})

	t.Run("survives quantity changes and transfers", func(t *testing.T) {
		from := uuid.New()
		to := uuid.New()
		product := createTestProduct(t)

		require.NoError(t, product.SetMinStockAt(from, 2))
		_, err := product.SetQuantityAt(from, 8)
		require.NoError(t, err)
		require.NoError(t, product.AddStockAt(from, 2))
		require.NoError(t, product.RemoveStockAt(from, 1))
		require.NoError(t, product.TransferStock(from, to, 4))

		assert.Equal(t, int64(2), product.MinStockAt(from))
		assert.Equal(t, int64(5), product.QuantityAt(from))
		assert.Equal(t, int64(4), product.QuantityAt(to))
	})
}

func TestProductBundle(t *testing.T) {
	t.Run("mark as bundle", func(t *testing.T) {
		product := createTestProduct(t)
		componentID := uuid.New()

		err := product.MarkAsBundle([]BundleComponent{
			{ProductID: componentID, SKU: "COMP-1", Name: "Component", Quantity: 2},
		})
		require.NoError(t, err)
		assert.True(t, product.IsBundle)
		require.Len(t, product.BundleComponents, 1)
		assert.Equal(t, int64(2), product.BundleComponents[0].Quantity)
	})

	t.Run("rejects empty component list", func(t *testing.T) {
		product := createTestProduct(t)
		assert.Error(t, product.MarkAsBundle(nil))
	})

	t.Run("rejects non-positive component quantity", func(t *testing.T) {
		product := createTestProduct(t)
		err := product.MarkAsBundle([]BundleComponent{
			{ProductID: uuid.New(), Quantity: 0},
		})
		assert.Error(t, err)
	})

	t.Run("rejects self reference", func(t *testing.T) {
		product := createTestProduct(t)
		err := product.MarkAsBundle([]BundleComponent{
			{ProductID: product.ID, Quantity: 1},
		})
		assert.Error(t, err)
	})

	t.Run("marking activates the bundle", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.MarkAsBundle([]BundleComponent{
			{ProductID: uuid.New(), SKU: "COMP-1", Name: "Component", Quantity: 1},
		}))
		assert.True(t, product.BundleActive)
	})

	t.Run("can be deactivated and reactivated", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.MarkAsBundle([]BundleComponent{
			{ProductID: uuid.New(), SKU: "COMP-1", Name: "Component", Quantity: 1},
		}))

		require.NoError(t, product.SetBundleActive(false))
		assert.False(t, product.BundleActive)
		assert.True(t, product.IsBundle, "definition is kept while inactive")

		require.NoError(t, product.SetBundleActive(true))
		assert.True(t, product.BundleActive)
	})

	t.Run("cannot toggle activity on a plain product", func(t *testing.T) {
		product := createTestProduct(t)
		assert.Error(t, product.SetBundleActive(true))
	})

	t.Run("clear bundle", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.MarkAsBundle([]BundleComponent{
			{ProductID: uuid.New(), SKU: "COMP-1", Name: "Component", Quantity: 1},
		}))

		product.ClearBundle()
		assert.False(t, product.IsBundle)
		assert.False(t, product.BundleActive)
		assert.Empty(t, product.BundleComponents)
	})
}

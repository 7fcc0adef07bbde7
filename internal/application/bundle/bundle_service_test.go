package bundle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryapp "github.com/omnistock/backend/internal/application/inventory"
	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/inventory"
	"github.com/omnistock/backend/internal/domain/location"
	"github.com/omnistock/backend/internal/domain/shared"
)

// memProductRepo is an in-memory catalog.ProductRepository for bundle tests
type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProductRepo) FindBundles(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0)
	for _, p := range r.products {
		if p.IsBundle {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) SaveWithLock(_ context.Context, product *catalog.Product, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if existing != product && existing.Version != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *memProductRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) CountWithStockAt(_ context.Context, locationID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.products {
		if p.HoldsStockAt(locationID) {
			count++
		}
	}
	return count, nil
}

var _ catalog.ProductRepository = (*memProductRepo)(nil)

// memLocationRepo is an in-memory location.Repository for bundle tests
type memLocationRepo struct {
	mu        sync.Mutex
	locations map[uuid.UUID]*location.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{locations: make(map[uuid.UUID]*location.Location)}
}

func (r *memLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc, ok := r.locations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return loc, nil
}

func (r *memLocationRepo) FindAll(_ context.Context, _ shared.Filter) ([]location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]location.Location, 0, len(r.locations))
	for _, loc := range r.locations {
		result = append(result, *loc)
	}
	return result, nil
}

func (r *memLocationRepo) FindByType(_ context.Context, locationType location.LocationType, _ shared.Filter) ([]location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]location.Location, 0)
	for _, loc := range r.locations {
		if loc.Type == locationType {
			result = append(result, *loc)
		}
	}
	return result, nil
}

func (r *memLocationRepo) FindActive(_ context.Context, _ shared.Filter) ([]location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]location.Location, 0)
	for _, loc := range r.locations {
		if loc.Active {
			result = append(result, *loc)
		}
	}
	return result, nil
}

func (r *memLocationRepo) FindPrimary(_ context.Context) (*location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, loc := range r.locations {
		if loc.IsPrimary && loc.Active {
			return loc, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLocationRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]location.Location, 0, len(ids))
	for _, id := range ids {
		if loc, ok := r.locations[id]; ok {
			result = append(result, *loc)
		}
	}
	return result, nil
}

func (r *memLocationRepo) Save(_ context.Context, loc *location.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations[loc.ID] = loc
	return nil
}

func (r *memLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locations, id)
	return nil
}

func (r *memLocationRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.locations)), nil
}

func (r *memLocationRepo) ClearPrimary(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, loc := range r.locations {
		loc.IsPrimary = false
	}
	return nil
}

var _ location.Repository = (*memLocationRepo)(nil)

// memTransactionRepo is a minimal in-memory ledger for bundle tests
type memTransactionRepo struct {
	mu      sync.Mutex
	entries []*inventory.InventoryTransaction
}

func (r *memTransactionRepo) FindByID(_ context.Context, _ uuid.UUID) (*inventory.InventoryTransaction, error) {
	return nil, shared.ErrNotFound
}

func (r *memTransactionRepo) FindAll(_ context.Context, _ inventory.TransactionFilter) ([]inventory.InventoryTransaction, error) {
	return nil, nil
}

func (r *memTransactionRepo) FindByProduct(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]inventory.InventoryTransaction, error) {
	return nil, nil
}

func (r *memTransactionRepo) FindByReference(_ context.Context, _ string) ([]inventory.InventoryTransaction, error) {
	return nil, nil
}

func (r *memTransactionRepo) Create(_ context.Context, tx *inventory.InventoryTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, tx)
	return nil
}

func (r *memTransactionRepo) Count(_ context.Context, _ inventory.TransactionFilter) (int64, error) {
	return 0, nil
}

func (r *memTransactionRepo) Stats(_ context.Context, _, _ *time.Time) (*inventory.TransactionStats, error) {
	return &inventory.TransactionStats{}, nil
}

func (r *memTransactionRepo) all() []*inventory.InventoryTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*inventory.InventoryTransaction, len(r.entries))
	copy(result, r.entries)
	return result
}

var _ inventory.TransactionRepository = (*memTransactionRepo)(nil)

// bundleFixture wires a BundleService backed by a real inventory service
type bundleFixture struct {
	service     *BundleService
	productRepo *memProductRepo
	ledger      *memTransactionRepo
	primary     *location.Location
	store       *location.Location
}

func newBundleFixture(t *testing.T) *bundleFixture {
	t.Helper()

	productRepo := newMemProductRepo()
	locationRepo := newMemLocationRepo()
	ledger := &memTransactionRepo{}
	scope := inventoryapp.NewNoOpTransactionScope(productRepo, ledger)
	inventoryService := inventoryapp.NewInventoryService(scope, productRepo, locationRepo, ledger)

	primary, err := location.NewLocation("Warehouse", location.LocationTypeWarehouse)
	require.NoError(t, err)
	primary.SetPrimary(true)
	require.NoError(t, locationRepo.Save(context.Background(), primary))

	store, err := location.NewLocation("Pike Place", location.LocationTypeRetail)
	require.NoError(t, err)
	require.NoError(t, locationRepo.Save(context.Background(), store))

	return &bundleFixture{
		service:     NewBundleService(productRepo, locationRepo, inventoryService),
		productRepo: productRepo,
		ledger:      ledger,
		primary:     primary,
		store:       store,
	}
}

func (f *bundleFixture) seedProduct(t *testing.T, sku string, quantities map[uuid.UUID]int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Product "+sku)
	require.NoError(t, err)
	for locID, qty := range quantities {
		_, err := product.SetQuantityAt(locID, qty)
		require.NoError(t, err)
	}
	product.ClearDomainEvents()
	require.NoError(t, f.productRepo.Save(context.Background(), product))
	return product
}

func (f *bundleFixture) seedBundle(t *testing.T, sku string, components []catalog.BundleComponent) *catalog.Product {
	t.Helper()
	bundle, err := catalog.NewProduct(sku, "Bundle "+sku)
	require.NoError(t, err)
	require.NoError(t, bundle.MarkAsBundle(components))
	bundle.ClearDomainEvents()
	require.NoError(t, f.productRepo.Save(context.Background(), bundle))
	return bundle
}

func component(p *catalog.Product, qty int64) catalog.BundleComponent {
	return catalog.BundleComponent{ProductID: p.ID, SKU: p.SKU, Name: p.Name, Quantity: qty}
}

func TestBundleService_Define(t *testing.T) {
	ctx := context.Background()

	t.Run("should snapshot component identity", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-001", nil)
		candle := f.seedProduct(t, "CANDLE-001", nil)
		giftSet := f.seedProduct(t, "GIFT-001", nil)

		resp, err := f.service.Define(ctx, giftSet.ID, DefineBundleRequest{
			Components: []ComponentInput{
				{ProductID: soap.ID, Quantity: 2},
				{ProductID: candle.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)
		assert.True(t, resp.IsBundle)
		require.Len(t, resp.BundleComponents, 2)
		assert.Equal(t, "SOAP-001", resp.BundleComponents[0].SKU)
		assert.Equal(t, int64(2), resp.BundleComponents[0].Quantity)
	})

	t.Run("should define an inactive bundle when requested", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-005", nil)
		giftSet := f.seedProduct(t, "GIFT-005", nil)
		inactive := false

		resp, err := f.service.Define(ctx, giftSet.ID, DefineBundleRequest{
			Components: []ComponentInput{{ProductID: soap.ID, Quantity: 1}},
			IsActive:   &inactive,
		})
		require.NoError(t, err)
		assert.True(t, resp.IsBundle)
		assert.False(t, resp.BundleActive)
	})

	t.Run("should reject unknown component", func(t *testing.T) {
		f := newBundleFixture(t)
		giftSet := f.seedProduct(t, "GIFT-002", nil)

		_, err := f.service.Define(ctx, giftSet.ID, DefineBundleRequest{
			Components: []ComponentInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrProductNotFound)
	})

	t.Run("should reject self reference", func(t *testing.T) {
		f := newBundleFixture(t)
		giftSet := f.seedProduct(t, "GIFT-003", nil)

		_, err := f.service.Define(ctx, giftSet.ID, DefineBundleRequest{
			Components: []ComponentInput{{ProductID: giftSet.ID, Quantity: 1}},
		})
		require.Error(t, err)
	})

	t.Run("should reject nested bundles", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-002", nil)
		inner := f.seedBundle(t, "INNER-001", []catalog.BundleComponent{component(soap, 1)})
		outer := f.seedProduct(t, "OUTER-001", nil)

		_, err := f.service.Define(ctx, outer.ID, DefineBundleRequest{
			Components: []ComponentInput{{ProductID: inner.ID, Quantity: 1}},
		})
		require.Error(t, err)
	})
}

func TestBundleService_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("should turn bundle back into plain product", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-003", nil)
		bundle := f.seedBundle(t, "GIFT-004", []catalog.BundleComponent{component(soap, 1)})

		resp, err := f.service.Clear(ctx, bundle.ID)
		require.NoError(t, err)
		assert.False(t, resp.IsBundle)
		assert.Empty(t, resp.BundleComponents)
	})

	t.Run("should clear an inactive bundle", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-014", nil)
		bundle := f.seedBundle(t, "GIFT-013", []catalog.BundleComponent{component(soap, 1)})
		require.NoError(t, bundle.SetBundleActive(false))
		require.NoError(t, f.productRepo.Save(ctx, bundle))

		resp, err := f.service.Clear(ctx, bundle.ID)
		require.NoError(t, err)
		assert.False(t, resp.IsBundle)
	})

	t.Run("should fail for non-bundle", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-004", nil)

		_, err := f.service.Clear(ctx, soap.ID)
		assert.ErrorIs(t, err, shared.ErrNotABundle)
	})
}

func TestBundleService_ProcessSale(t *testing.T) {
	ctx := context.Background()

	t.Run("should deduct every component at the primary location", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-005", map[uuid.UUID]int64{f.primary.ID: 10})
		candle := f.seedProduct(t, "CANDLE-002", map[uuid.UUID]int64{f.primary.ID: 10})
		bundle := f.seedBundle(t, "GIFT-005", []catalog.BundleComponent{
			component(soap, 2), component(candle, 1),
		})

		result, err := f.service.ProcessSale(ctx, bundle.ID, BundleSaleRequest{Quantity: 3})
		require.NoError(t, err)
		assert.True(t, result.Completed)
		require.Len(t, result.Deducted, 2)
		assert.Empty(t, result.Failed)

		stored, err := f.productRepo.FindByID(ctx, soap.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), stored.QuantityAt(f.primary.ID))

		stored, err = f.productRepo.FindByID(ctx, candle.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), stored.QuantityAt(f.primary.ID))

		assert.Len(t, f.ledger.all(), 2)
	})

	t.Run("should continue past failing components without rollback", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-006", map[uuid.UUID]int64{f.primary.ID: 10})
		candle := f.seedProduct(t, "CANDLE-003", map[uuid.UUID]int64{f.primary.ID: 1})
		bundle := f.seedBundle(t, "GIFT-006", []catalog.BundleComponent{
			component(soap, 1), component(candle, 2),
		})

		result, err := f.service.ProcessSale(ctx, bundle.ID, BundleSaleRequest{Quantity: 2})
		require.NoError(t, err)
		assert.False(t, result.Completed)
		require.Len(t, result.Deducted, 1)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, candle.ID, result.Failed[0].ProductID)
		assert.Equal(t, "INSUFFICIENT_STOCK", result.Failed[0].Code)

		// The successful deduction stays applied
		stored, err := f.productRepo.FindByID(ctx, soap.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(8), stored.QuantityAt(f.primary.ID))
	})

	t.Run("should sell at an explicit location", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-007", map[uuid.UUID]int64{f.store.ID: 5})
		bundle := f.seedBundle(t, "GIFT-007", []catalog.BundleComponent{component(soap, 1)})

		result, err := f.service.ProcessSale(ctx, bundle.ID, BundleSaleRequest{
			Quantity: 2, LocationID: &f.store.ID,
		})
		require.NoError(t, err)
		assert.True(t, result.Completed)

		stored, err := f.productRepo.FindByID(ctx, soap.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stored.QuantityAt(f.store.ID))
	})

	t.Run("should fail for non-bundle product", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-008", nil)

		_, err := f.service.ProcessSale(ctx, soap.ID, BundleSaleRequest{Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrNotABundle)
	})

	t.Run("should fail for unknown bundle", func(t *testing.T) {
		f := newBundleFixture(t)

		_, err := f.service.ProcessSale(ctx, uuid.New(), BundleSaleRequest{Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrBundleNotFound)
	})

	t.Run("should treat an inactive bundle as not found", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-012", map[uuid.UUID]int64{f.primary.ID: 10})
		bundle := f.seedBundle(t, "GIFT-011", []catalog.BundleComponent{component(soap, 1)})
		require.NoError(t, bundle.SetBundleActive(false))
		require.NoError(t, f.productRepo.Save(ctx, bundle))

		_, err := f.service.ProcessSale(ctx, bundle.ID, BundleSaleRequest{Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrBundleNotFound)

		stored, err := f.productRepo.FindByID(ctx, soap.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), stored.QuantityAt(f.primary.ID), "no component may be deducted")
	})
}

func TestBundleService_InventoryStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("should report the binding component", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-009", map[uuid.UUID]int64{f.primary.ID: 10})
		candle := f.seedProduct(t, "CANDLE-004", map[uuid.UUID]int64{f.primary.ID: 3})
		bundle := f.seedBundle(t, "GIFT-008", []catalog.BundleComponent{
			component(soap, 2), component(candle, 1),
		})

		status, err := f.service.InventoryStatus(ctx, bundle.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), status.MaxBundles)
		assert.True(t, status.CanFulfill)
		require.Len(t, status.Components, 2)
		assert.Equal(t, int64(5), status.Components[0].MaxBundles)
		assert.Equal(t, int64(3), status.Components[1].MaxBundles)
	})

	t.Run("should scope availability to a location", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-010", map[uuid.UUID]int64{
			f.primary.ID: 10,
			f.store.ID:   1,
		})
		bundle := f.seedBundle(t, "GIFT-009", []catalog.BundleComponent{component(soap, 2)})

		status, err := f.service.InventoryStatus(ctx, bundle.ID, &f.store.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), status.MaxBundles)
		assert.False(t, status.CanFulfill)
	})

	t.Run("should report zero when a component is missing", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-011", nil)
		bundle := f.seedBundle(t, "GIFT-010", []catalog.BundleComponent{component(soap, 1)})
		require.NoError(t, f.productRepo.Delete(ctx, soap.ID))

		status, err := f.service.InventoryStatus(ctx, bundle.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), status.MaxBundles)
		assert.False(t, status.CanFulfill)
	})

	t.Run("should treat an inactive bundle as not found", func(t *testing.T) {
		f := newBundleFixture(t)
		soap := f.seedProduct(t, "SOAP-013", map[uuid.UUID]int64{f.primary.ID: 4})
		bundle := f.seedBundle(t, "GIFT-012", []catalog.BundleComponent{component(soap, 1)})
		require.NoError(t, bundle.SetBundleActive(false))
		require.NoError(t, f.productRepo.Save(ctx, bundle))

		_, err := f.service.InventoryStatus(ctx, bundle.ID, nil)
		assert.ErrorIs(t, err, shared.ErrBundleNotFound)
	})
}

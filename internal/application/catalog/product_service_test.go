package catalog

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/shared"
)

// memProductRepo is an in-memory catalog.ProductRepository for service tests
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

func (r *memProductRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if category, ok := filter.Filters["category"]; ok && p.Category != category {
			continue
		}
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

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should create product with defaults", func(t *testing.T) {
		service := NewProductService(newMemProductRepo())

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:  "mug-001",
			Name: "Ceramic Mug",
		})
		require.NoError(t, err)
		assert.Equal(t, "MUG-001", resp.SKU)
		assert.Equal(t, "Ceramic Mug", resp.Name)
		assert.Equal(t, int64(0), resp.TotalQuantity)
		assert.Equal(t, catalog.DefaultLowStockThreshold, resp.LowStockThreshold)
		assert.Empty(t, resp.Locations)
		assert.False(t, resp.IsBundle)
	})

	t.Run("should set prices and threshold when provided", func(t *testing.T) {
		service := NewProductService(newMemProductRepo())
		price := decimal.NewFromFloat(24.99)
		cost := decimal.NewFromFloat(8.50)
		threshold := int64(10)

		resp, err := service.Create(ctx, CreateProductRequest{
			SKU:               "MUG-002",
			Name:              "Travel Mug",
			Category:          "drinkware",
			Price:             &price,
			Cost:              &cost,
			LowStockThreshold: &threshold,
		})
		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(price))
		assert.True(t, resp.Cost.Equal(cost))
		assert.Equal(t, int64(10), resp.LowStockThreshold)
		assert.Equal(t, "drinkware", resp.Category)
	})

	t.Run("should reject duplicate SKU regardless of case", func(t *testing.T) {
		service := NewProductService(newMemProductRepo())
		_, err := service.Create(ctx, CreateProductRequest{SKU: "MUG-003", Name: "Mug"})
		require.NoError(t, err)

		_, err = service.Create(ctx, CreateProductRequest{SKU: "mug-003", Name: "Other Mug"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestProductService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("should get by ID and by SKU", func(t *testing.T) {
		service := NewProductService(newMemProductRepo())
		created, err := service.Create(ctx, CreateProductRequest{SKU: "TEE-001", Name: "T-Shirt"})
		require.NoError(t, err)

		byID, err := service.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byID.ID)

		bySKU, err := service.GetBySKU(ctx, "tee-001")
		require.NoError(t, err)
		assert.Equal(t, created.ID, bySKU.ID)
	})

	t.Run("should fail for unknown product", func(t *testing.T) {
		service := NewProductService(newMemProductRepo())

		_, err := service.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrProductNotFound)

		_, err = service.GetBySKU(ctx, "NOPE-001")
		assert.ErrorIs(t, err, shared.ErrProductNotFound)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("should update only provided fields", func(t *testing.T) {
		service := NewProductService(newMemProductRepo())
		price := decimal.NewFromInt(30)
		created, err := service.Create(ctx, CreateProductRequest{
			SKU: "TEE-002", Name: "T-Shirt", Description: "Cotton", Price: &price,
		})
		require.NoError(t, err)

		name := "Premium T-Shirt"
		updated, err := service.Update(ctx, created.ID, UpdateProductRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Premium T-Shirt", updated.Name)
		assert.Equal(t, "Cotton", updated.Description)
		assert.True(t, updated.Price.Equal(price))
	})

	t.Run("should not touch stock levels", func(t *testing.T) {
		repo := newMemProductRepo()
		service := NewProductService(repo)
		created, err := service.Create(ctx, CreateProductRequest{SKU: "TEE-003", Name: "T-Shirt"})
		require.NoError(t, err)

		locID := uuid.New()
		stored, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		_, err = stored.SetQuantityAt(locID, 7)
		require.NoError(t, err)

		name := "Renamed"
		updated, err := service.Update(ctx, created.ID, UpdateProductRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, int64(7), updated.TotalQuantity)
		assert.Equal(t, int64(7), updated.Locations[locID].Quantity)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("should filter low stock products", func(t *testing.T) {
		repo := newMemProductRepo()
		service := NewProductService(repo)

		low, err := service.Create(ctx, CreateProductRequest{SKU: "LOW-001", Name: "Low Stock Item"})
		require.NoError(t, err)
		ok, err := service.Create(ctx, CreateProductRequest{SKU: "OK-001", Name: "Healthy Item"})
		require.NoError(t, err)

		locID := uuid.New()
		stored, err := repo.FindByID(ctx, ok.ID)
		require.NoError(t, err)
		_, err = stored.SetQuantityAt(locID, 100)
		require.NoError(t, err)

		responses, total, err := service.List(ctx, ProductListFilter{LowStockOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, low.ID, responses[0].ID)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete product", func(t *testing.T) {
		repo := newMemProductRepo()
		service := NewProductService(repo)
		created, err := service.Create(ctx, CreateProductRequest{SKU: "DEL-001", Name: "Doomed"})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, created.ID))

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("should fail for unknown product", func(t *testing.T) {
		service := NewProductService(newMemProductRepo())

		err := service.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrProductNotFound)
	})
}

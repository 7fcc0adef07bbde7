package location

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/location"
	"github.com/omnistock/backend/internal/domain/shared"
)

// memLocationRepo is an in-memory location.Repository for service tests
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

// stubProductRepo implements the product repository with canned stock
// references per location
type stubProductRepo struct {
	catalog.ProductRepository
	stockCounts map[uuid.UUID]int64
}

func (r *stubProductRepo) CountWithStockAt(_ context.Context, locationID uuid.UUID) (int64, error) {
	return r.stockCounts[locationID], nil
}

// productBackedRepo counts stock references from real product records, so
// a location stays referenced even when its quantity sits at zero
type productBackedRepo struct {
	catalog.ProductRepository
	products []*catalog.Product
}

func (r *productBackedRepo) CountWithStockAt(_ context.Context, locationID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.HoldsStockAt(locationID) {
			count++
		}
	}
	return count, nil
}

func newService() (*LocationService, *memLocationRepo, *stubProductRepo) {
	locationRepo := newMemLocationRepo()
	productRepo := &stubProductRepo{stockCounts: make(map[uuid.UUID]int64)}
	return NewLocationService(locationRepo, productRepo), locationRepo, productRepo
}

func boolPtr(b bool) *bool { return &b }

func TestLocationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should create location", func(t *testing.T) {
		service, _, _ := newService()

		resp, err := service.Create(ctx, CreateLocationRequest{
			Name: "Pike Place",
			Type: "retail",
		})
		require.NoError(t, err)
		assert.Equal(t, "Pike Place", resp.Name)
		assert.Equal(t, "retail", resp.Type)
		assert.True(t, resp.Active)
		assert.False(t, resp.IsPrimary)
	})

	t.Run("should demote existing primary when creating a new one", func(t *testing.T) {
		service, repo, _ := newService()

		first, err := service.Create(ctx, CreateLocationRequest{
			Name: "Warehouse", Type: "warehouse", IsPrimary: boolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, first.IsPrimary)

		second, err := service.Create(ctx, CreateLocationRequest{
			Name: "Overflow", Type: "warehouse", IsPrimary: boolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, second.IsPrimary)

		old, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, old.IsPrimary)

		primary, err := service.GetPrimary(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.ID, primary.ID)
	})

	t.Run("should reject invalid type", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.Create(ctx, CreateLocationRequest{Name: "Kiosk", Type: "popup"})
		require.Error(t, err)
	})
}

func TestLocationService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("should update fields", func(t *testing.T) {
		service, _, _ := newService()
		created, err := service.Create(ctx, CreateLocationRequest{Name: "Warehouse", Type: "warehouse"})
		require.NoError(t, err)

		updated, err := service.Update(ctx, created.ID, UpdateLocationRequest{
			Name:        "Main Warehouse",
			Type:        "warehouse",
			Description: "Primary storage",
			Address:     "500 Industrial Way",
		})
		require.NoError(t, err)
		assert.Equal(t, "Main Warehouse", updated.Name)
		assert.Equal(t, "Primary storage", updated.Description)
	})

	t.Run("should promote to primary and demote the rest", func(t *testing.T) {
		service, repo, _ := newService()
		a, err := service.Create(ctx, CreateLocationRequest{Name: "A", Type: "warehouse", IsPrimary: boolPtr(true)})
		require.NoError(t, err)
		b, err := service.Create(ctx, CreateLocationRequest{Name: "B", Type: "retail"})
		require.NoError(t, err)

		updated, err := service.Update(ctx, b.ID, UpdateLocationRequest{
			Name: "B", Type: "retail", IsPrimary: boolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, updated.IsPrimary)

		old, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, old.IsPrimary)
	})

	t.Run("should refuse deactivating the primary location", func(t *testing.T) {
		service, _, _ := newService()
		created, err := service.Create(ctx, CreateLocationRequest{
			Name: "Warehouse", Type: "warehouse", IsPrimary: boolPtr(true),
		})
		require.NoError(t, err)

		_, err = service.Update(ctx, created.ID, UpdateLocationRequest{
			Name: "Warehouse", Type: "warehouse", Active: boolPtr(false),
		})
		require.Error(t, err)
	})

	t.Run("should fail for unknown location", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.Update(ctx, uuid.New(), UpdateLocationRequest{Name: "X", Type: "other"})
		assert.ErrorIs(t, err, shared.ErrLocationNotFound)
	})
}

func TestLocationService_SetPrimary(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep at most one primary", func(t *testing.T) {
		service, repo, _ := newService()
		a, err := service.Create(ctx, CreateLocationRequest{Name: "A", Type: "warehouse", IsPrimary: boolPtr(true)})
		require.NoError(t, err)
		b, err := service.Create(ctx, CreateLocationRequest{Name: "B", Type: "retail"})
		require.NoError(t, err)

		_, err = service.SetPrimary(ctx, b.ID)
		require.NoError(t, err)

		locs, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		var primaries int
		for _, loc := range locs {
			if loc.IsPrimary {
				primaries++
				assert.Equal(t, b.ID, loc.ID)
			}
		}
		assert.Equal(t, 1, primaries)
		_ = a
	})
}

func TestLocationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete unused location", func(t *testing.T) {
		service, repo, _ := newService()
		created, err := service.Create(ctx, CreateLocationRequest{Name: "Popup", Type: "other"})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, created.ID))

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("should refuse deleting a location referenced by stock", func(t *testing.T) {
		service, _, productRepo := newService()
		created, err := service.Create(ctx, CreateLocationRequest{Name: "Warehouse", Type: "warehouse"})
		require.NoError(t, err)
		productRepo.stockCounts[created.ID] = 2

		err = service.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrLocationInUse)
	})

	t.Run("should refuse deleting a location whose stock was adjusted to zero", func(t *testing.T) {
		locationRepo := newMemLocationRepo()
		product, err := catalog.NewProduct("TEE-001", "T-Shirt")
		require.NoError(t, err)
		productRepo := &productBackedRepo{products: []*catalog.Product{product}}
		service := NewLocationService(locationRepo, productRepo)

		created, err := service.Create(ctx, CreateLocationRequest{Name: "Backroom", Type: "warehouse"})
		require.NoError(t, err)

		_, err = product.SetQuantityAt(created.ID, 4)
		require.NoError(t, err)
		_, err = product.SetQuantityAt(created.ID, 0)
		require.NoError(t, err)
		require.Equal(t, int64(0), product.QuantityAt(created.ID))

		err = service.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrLocationInUse)
	})

	t.Run("should fail for unknown location", func(t *testing.T) {
		service, _, _ := newService()

		err := service.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrLocationNotFound)
	})
}

func TestLocationService_SeedDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("should seed the standard registry when empty", func(t *testing.T) {
		service, repo, _ := newService()

		require.NoError(t, service.SeedDefaults(ctx))

		locs, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, locs, 4)

		primary, err := service.GetPrimary(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Warehouse", primary.Name)
		assert.Equal(t, "warehouse", primary.Type)
	})

	t.Run("should be a no-op when locations exist", func(t *testing.T) {
		service, repo, _ := newService()
		_, err := service.Create(ctx, CreateLocationRequest{Name: "Existing", Type: "other"})
		require.NoError(t, err)

		require.NoError(t, service.SeedDefaults(ctx))

		count, err := repo.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/channel"
	"github.com/omnistock/backend/internal/domain/inventory"
	"github.com/omnistock/backend/internal/domain/location"
	"github.com/omnistock/backend/internal/domain/shared"
)

// In-memory repositories shared by the handler tests. Handlers are
// exercised end to end: real services on top of these fakes, requests
// through a gin engine.

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
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

func (r *stubProductRepo) FindBundles(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
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

func (r *stubProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *stubProductRepo) SaveWithLock(_ context.Context, product *catalog.Product, expectedVersion int) error {
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

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) CountWithStockAt(_ context.Context, locationID uuid.UUID) (int64, error) {
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

type stubLocationRepo struct {
	mu        sync.Mutex
	locations map[uuid.UUID]*location.Location
}

func newStubLocationRepo() *stubLocationRepo {
	return &stubLocationRepo{locations: make(map[uuid.UUID]*location.Location)}
}

func (r *stubLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return l, nil
}

func (r *stubLocationRepo) FindAll(_ context.Context, _ shared.Filter) ([]location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]location.Location, 0, len(r.locations))
	for _, l := range r.locations {
		result = append(result, *l)
	}
	return result, nil
}

func (r *stubLocationRepo) FindByType(_ context.Context, locationType location.LocationType, _ shared.Filter) ([]location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]location.Location, 0)
	for _, l := range r.locations {
		if l.Type == locationType {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (r *stubLocationRepo) FindActive(_ context.Context, _ shared.Filter) ([]location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]location.Location, 0)
	for _, l := range r.locations {
		if l.IsActive() {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (r *stubLocationRepo) FindPrimary(_ context.Context) (*location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.IsPrimary && l.IsActive() {
			return l, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubLocationRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]location.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]location.Location, 0, len(ids))
	for _, id := range ids {
		if l, ok := r.locations[id]; ok {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (r *stubLocationRepo) Save(_ context.Context, loc *location.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations[loc.ID] = loc
	return nil
}

func (r *stubLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locations, id)
	return nil
}

func (r *stubLocationRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.locations)), nil
}

func (r *stubLocationRepo) ClearPrimary(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		l.SetPrimary(false)
	}
	return nil
}

type stubTransactionRepo struct {
	mu      sync.Mutex
	entries []inventory.InventoryTransaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{}
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ID == id {
			return &r.entries[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubTransactionRepo) FindAll(_ context.Context, _ inventory.TransactionFilter) ([]inventory.InventoryTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.InventoryTransaction, len(r.entries))
	copy(result, r.entries)
	return result, nil
}

func (r *stubTransactionRepo) FindByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]inventory.InventoryTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.InventoryTransaction, 0)
	for _, tx := range r.entries {
		if tx.ProductID == productID {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (r *stubTransactionRepo) FindByReference(_ context.Context, reference string) ([]inventory.InventoryTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.InventoryTransaction, 0)
	for _, tx := range r.entries {
		if tx.Reference == reference {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (r *stubTransactionRepo) Create(_ context.Context, tx *inventory.InventoryTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *tx)
	return nil
}

func (r *stubTransactionRepo) Count(_ context.Context, _ inventory.TransactionFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries)), nil
}

func (r *stubTransactionRepo) Stats(_ context.Context, _, _ *time.Time) (*inventory.TransactionStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &inventory.TransactionStats{}
	for _, tx := range r.entries {
		stats.TotalTransactions++
		switch tx.Type {
		case inventory.TransactionTypeSale:
			stats.SalesVolume += tx.Quantity
		case inventory.TransactionTypeProduction:
			stats.ProductionVolume += tx.Quantity
		case inventory.TransactionTypeAdjustment:
			stats.AdjustmentVolume += tx.Quantity
		case inventory.TransactionTypeTransfer:
			stats.TransferVolume += tx.Quantity
		}
	}
	return stats, nil
}

type stubMappingRepo struct {
	mu       sync.Mutex
	mappings map[uuid.UUID]*channel.ProductMapping
}

func newStubMappingRepo() *stubMappingRepo {
	return &stubMappingRepo{mappings: make(map[uuid.UUID]*channel.ProductMapping)}
}

func (r *stubMappingRepo) FindByID(_ context.Context, id uuid.UUID) (*channel.ProductMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mappings[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return m, nil
}

func (r *stubMappingRepo) FindByLocalProduct(_ context.Context, localProductID uuid.UUID) (*channel.ProductMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mappings {
		if m.LocalProductID == localProductID {
			return m, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubMappingRepo) FindByPlatformIdentifier(_ context.Context, platform channel.Platform, identifier string) (*channel.ProductMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mappings {
		if m.PlatformIdentifier(platform) == identifier {
			return m, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubMappingRepo) FindAll(_ context.Context, _ shared.Filter) ([]channel.ProductMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]channel.ProductMapping, 0, len(r.mappings))
	for _, m := range r.mappings {
		result = append(result, *m)
	}
	return result, nil
}

func (r *stubMappingRepo) Save(_ context.Context, mapping *channel.ProductMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappings[mapping.ID] = mapping
	return nil
}

func (r *stubMappingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.mappings, id)
	return nil
}

func (r *stubMappingRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.mappings)), nil
}

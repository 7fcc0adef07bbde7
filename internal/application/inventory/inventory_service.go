package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/inventory"
	"github.com/omnistock/backend/internal/domain/location"
	"github.com/omnistock/backend/internal/domain/shared"
)

// InventoryService handles stock mutations and ledger queries. Every
// mutation runs inside the transaction scope so the catalog write and the
// ledger append commit together.
type InventoryService struct {
	scope           TransactionScope
	productRepo     catalog.ProductRepository
	locationRepo    location.Repository
	transactionRepo inventory.TransactionRepository
	eventPublisher  shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	scope TransactionScope,
	productRepo catalog.ProductRepository,
	locationRepo location.Repository,
	transactionRepo inventory.TransactionRepository,
) *InventoryService {
	return &InventoryService{
		scope:           scope,
		productRepo:     productRepo,
		locationRepo:    locationRepo,
		transactionRepo: transactionRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishDomainEvents publishes all domain events from the product
func (s *InventoryService) publishDomainEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish errors are handled by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	product.ClearDomainEvents()
}

// Adjust sets the absolute quantity of a product at a location. The catalog
// is written even when nothing changes; a ledger entry is appended only for
// a non-zero delta.
func (s *InventoryService) Adjust(ctx context.Context, req AdjustRequest) (*MutationResponse, error) {
	if req.NewQuantity < 0 {
		return nil, shared.ErrInvalidQuantity
	}

	loc, err := s.findLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	var resp *MutationResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := findProduct(ctx, repos.ProductRepo(), req.ProductID)
		if err != nil {
			return err
		}

		loadedVersion := product.Version
		oldQuantity := product.QuantityAt(req.LocationID)
		delta, err := product.SetQuantityAt(req.LocationID, req.NewQuantity)
		if err != nil {
			return err
		}
		if req.MinStockLevel != nil {
			if err := product.SetMinStockAt(req.LocationID, *req.MinStockLevel); err != nil {
				return err
			}
		}

		if err := repos.ProductRepo().SaveWithLock(ctx, product, loadedVersion); err != nil {
			return err
		}

		resp = &MutationResponse{
			ProductID:     product.ID,
			LocationID:    req.LocationID,
			Quantity:      req.NewQuantity,
			TotalQuantity: product.TotalQuantity,
		}

		// A no-op adjustment leaves no trace in the ledger
		if delta == 0 {
			return nil
		}

		tx, err := inventory.NewAdjustmentTransaction(snapshot(product), delta, req.LocationID)
		if err != nil {
			return err
		}

		notes := req.Notes
		if notes == "" {
			notes = fmt.Sprintf("Adjusted from %d to %d", oldQuantity, req.NewQuantity)
		}
		tx.WithNotes(notes).WithReference(req.Reason)
		if delta > 0 {
			tx.WithLocationNames("", loc.Name)
		} else {
			tx.WithLocationNames(loc.Name, "")
		}

		if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
			return err
		}
		resp.TransactionID = &tx.ID

		s.publishDomainEvents(ctx, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Transfer moves stock between two locations. The product's total quantity
// is conserved and one transfer entry is appended to the ledger.
func (s *InventoryService) Transfer(ctx context.Context, req TransferRequest) (*MutationResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if req.FromLocationID == req.ToLocationID {
		return nil, shared.ErrSameLocation
	}

	from, err := s.findLocation(ctx, req.FromLocationID)
	if err != nil {
		return nil, err
	}
	to, err := s.findLocation(ctx, req.ToLocationID)
	if err != nil {
		return nil, err
	}

	var resp *MutationResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := findProduct(ctx, repos.ProductRepo(), req.ProductID)
		if err != nil {
			return err
		}

		loadedVersion := product.Version
		if err := product.TransferStock(req.FromLocationID, req.ToLocationID, req.Quantity); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product, loadedVersion); err != nil {
			return err
		}

		tx, err := inventory.NewTransferTransaction(snapshot(product), req.Quantity, req.FromLocationID, req.ToLocationID)
		if err != nil {
			return err
		}
		tx.WithLocationNames(from.Name, to.Name)

		if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
			return err
		}

		resp = &MutationResponse{
			ProductID:     product.ID,
			LocationID:    req.ToLocationID,
			Quantity:      product.QuantityAt(req.ToLocationID),
			TotalQuantity: product.TotalQuantity,
			TransactionID: &tx.ID,
		}
		s.publishDomainEvents(ctx, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddProduction records produced stock arriving at a location
func (s *InventoryService) AddProduction(ctx context.Context, req AddProductionRequest) (*MutationResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	loc, err := s.findLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	var resp *MutationResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := findProduct(ctx, repos.ProductRepo(), req.ProductID)
		if err != nil {
			return err
		}

		loadedVersion := product.Version
		if err := product.AddStockAt(req.LocationID, req.Quantity); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product, loadedVersion); err != nil {
			return err
		}

		tx, err := inventory.NewProductionTransaction(snapshot(product), req.Quantity, req.LocationID)
		if err != nil {
			return err
		}
		tx.WithReference(req.BatchRef).WithLocationNames("", loc.Name)

		if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
			return err
		}

		resp = &MutationResponse{
			ProductID:     product.ID,
			LocationID:    req.LocationID,
			Quantity:      product.QuantityAt(req.LocationID),
			TotalQuantity: product.TotalQuantity,
			TransactionID: &tx.ID,
		}
		s.publishDomainEvents(ctx, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RecordSale deducts sold stock from a location and appends a sale entry
// with a negative quantity. Channel sales are recorded with the webhook
// source, manual sales stay manual.
func (s *InventoryService) RecordSale(ctx context.Context, req RecordSaleRequest) (*MutationResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if !req.Source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Invalid sale source")
	}

	loc, err := s.findLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	var resp *MutationResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := findProduct(ctx, repos.ProductRepo(), req.ProductID)
		if err != nil {
			return err
		}

		loadedVersion := product.Version
		if err := product.RemoveStockAt(req.LocationID, req.Quantity); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product, loadedVersion); err != nil {
			return err
		}

		tx, err := inventory.NewSaleTransaction(snapshot(product), req.Quantity, req.LocationID, req.Source)
		if err != nil {
			return err
		}
		tx.WithReference(req.OrderRef).WithLocationNames(loc.Name, "")

		if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
			return err
		}

		resp = &MutationResponse{
			ProductID:     product.ID,
			LocationID:    req.LocationID,
			Quantity:      product.QuantityAt(req.LocationID),
			TotalQuantity: product.TotalQuantity,
			TransactionID: &tx.ID,
		}
		s.publishDomainEvents(ctx, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProductInventoryStatus returns per-location quantities, the derived
// total and the low stock flag for a product
func (s *InventoryService) GetProductInventoryStatus(ctx context.Context, productID uuid.UUID) (*ProductInventoryStatus, error) {
	product, err := findProduct(ctx, s.productRepo, productID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(product.Locations))
	for id := range product.Locations {
		ids = append(ids, id)
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		locs, err := s.locationRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range locs {
			names[locs[i].ID] = locs[i].Name
		}
	}

	stocks := make([]LocationStock, 0, len(product.Locations))
	for id, entry := range product.Locations {
		stocks = append(stocks, LocationStock{
			LocationID:    id,
			LocationName:  names[id],
			Quantity:      entry.Quantity,
			MinStockLevel: entry.MinStockLevel,
			IsLowStock:    product.IsLowStockAt(id),
		})
	}

	return &ProductInventoryStatus{
		ProductID:     product.ID,
		SKU:           product.SKU,
		Name:          product.Name,
		Locations:     stocks,
		TotalQuantity: product.TotalQuantity,
		LowStock:      product.IsLowStock(),
		Threshold:     product.LowStockThreshold,
	}, nil
}

// ListTransactions queries the ledger, newest first
func (s *InventoryService) ListTransactions(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := inventory.TransactionFilter{
		Filter:     shared.DefaultFilter(),
		ProductID:  filter.ProductID,
		LocationID: filter.LocationID,
		Reference:  filter.Reference,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	} else {
		domainFilter.PageSize = 50
	}
	if filter.Type != "" {
		t := inventory.TransactionType(filter.Type)
		if !t.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
		}
		domainFilter.Type = &t
	}
	if filter.Source != "" {
		src := inventory.TransactionSource(filter.Source)
		if !src.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_SOURCE", "Invalid transaction source")
		}
		domainFilter.Source = &src
	}

	txs, err := s.transactionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTransactionResponses(txs), total, nil
}

// GetTransactionStats aggregates ledger volumes per type within a range
func (s *InventoryService) GetTransactionStats(ctx context.Context, start, end *time.Time) (*inventory.TransactionStats, error) {
	return s.transactionRepo.Stats(ctx, start, end)
}

// findLocation loads a location, translating NotFound into the domain code
func (s *InventoryService) findLocation(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrLocationNotFound
		}
		return nil, err
	}
	return loc, nil
}

// findProduct loads a product, translating NotFound into the domain code
func findProduct(ctx context.Context, repo catalog.ProductRepository, id uuid.UUID) (*catalog.Product, error) {
	product, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// snapshot builds the denormalized product fields stored on ledger entries
func snapshot(product *catalog.Product) inventory.ProductSnapshot {
	return inventory.ProductSnapshot{ID: product.ID, Name: product.Name, SKU: product.SKU}
}

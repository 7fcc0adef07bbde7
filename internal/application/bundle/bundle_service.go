package bundle

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogapp "github.com/omnistock/backend/internal/application/catalog"
	inventoryapp "github.com/omnistock/backend/internal/application/inventory"
	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/inventory"
	"github.com/omnistock/backend/internal/domain/location"
	"github.com/omnistock/backend/internal/domain/shared"
)

// BundleService manages bundle definitions and bundle-aware stock
// operations. A bundle is a regular catalog product carrying a component
// list; it holds no stock of its own.
type BundleService struct {
	productRepo  catalog.ProductRepository
	locationRepo location.Repository
	sales        SaleRecorder
}

// NewBundleService creates a new BundleService
func NewBundleService(productRepo catalog.ProductRepository, locationRepo location.Repository, sales SaleRecorder) *BundleService {
	return &BundleService{
		productRepo:  productRepo,
		locationRepo: locationRepo,
		sales:        sales,
	}
}

// Define turns an existing product into a bundle. Component identity is
// snapshotted onto the bundle so later renames do not change it.
func (s *BundleService) Define(ctx context.Context, productID uuid.UUID, req DefineBundleRequest) (*catalogapp.ProductResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Components))
	for _, c := range req.Components {
		if c.ProductID == productID {
			return nil, shared.NewDomainError("SELF_REFERENCE", "Bundle cannot contain itself")
		}
		ids = append(ids, c.ProductID)
	}

	found, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	components := make([]catalog.BundleComponent, 0, len(req.Components))
	for _, c := range req.Components {
		component, ok := byID[c.ProductID]
		if !ok {
			return nil, shared.ErrProductNotFound
		}
		if component.IsBundle {
			return nil, shared.NewDomainError("NESTED_BUNDLE", "Bundle components cannot be bundles")
		}
		components = append(components, catalog.BundleComponent{
			ProductID: component.ID,
			SKU:       component.SKU,
			Name:      component.Name,
			Quantity:  c.Quantity,
		})
	}

	loadedVersion := product.Version
	if err := product.MarkAsBundle(components); err != nil {
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		if err := product.SetBundleActive(false); err != nil {
			return nil, err
		}
	}
	if err := s.productRepo.SaveWithLock(ctx, product, loadedVersion); err != nil {
		return nil, err
	}

	response := catalogapp.ToProductResponse(product)
	return &response, nil
}

// Clear removes the bundle definition, turning the product back into a
// plain catalog item
func (s *BundleService) Clear(ctx context.Context, productID uuid.UUID) (*catalogapp.ProductResponse, error) {
	product, err := s.findBundle(ctx, productID)
	if err != nil {
		return nil, err
	}

	loadedVersion := product.Version
	product.ClearBundle()
	if err := s.productRepo.SaveWithLock(ctx, product, loadedVersion); err != nil {
		return nil, err
	}

	response := catalogapp.ToProductResponse(product)
	return &response, nil
}

// List retrieves all bundle products
func (s *BundleService) List(ctx context.Context, filter shared.Filter) ([]catalogapp.ProductResponse, error) {
	bundles, err := s.productRepo.FindBundles(ctx, filter)
	if err != nil {
		return nil, err
	}
	return catalogapp.ToProductResponses(bundles), nil
}

// ProcessSale deducts every component of a bundle sale. Components are
// processed in order without rollback: a component failing (usually on
// stock) is reported in the result while the rest still go through.
func (s *BundleService) ProcessSale(ctx context.Context, bundleID uuid.UUID, req BundleSaleRequest) (*BundleSaleResult, error) {
	bundle, err := s.findActiveBundle(ctx, bundleID)
	if err != nil {
		return nil, err
	}

	locationID, err := s.resolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	source := inventory.SourceManual
	if req.Source != "" {
		source = inventory.TransactionSource(req.Source)
		if !source.IsValid() {
			return nil, shared.NewDomainError("INVALID_SOURCE", "Invalid sale source")
		}
	}

	result := &BundleSaleResult{
		BundleID: bundle.ID,
		Quantity: req.Quantity,
		Deducted: make([]ComponentDeduction, 0, len(bundle.BundleComponents)),
		Failed:   make([]ComponentFailure, 0),
	}

	for _, component := range bundle.BundleComponents {
		quantity := component.Quantity * req.Quantity
		resp, err := s.sales.RecordSale(ctx, inventoryapp.RecordSaleRequest{
			ProductID:  component.ProductID,
			LocationID: locationID,
			Quantity:   quantity,
			Source:     source,
			OrderRef:   req.OrderRef,
		})
		if err != nil {
			result.Failed = append(result.Failed, ComponentFailure{
				ProductID: component.ProductID,
				SKU:       component.SKU,
				Quantity:  quantity,
				Code:      errorCode(err),
				Message:   err.Error(),
			})
			continue
		}
		result.Deducted = append(result.Deducted, ComponentDeduction{
			ProductID: component.ProductID,
			SKU:       component.SKU,
			Quantity:  quantity,
			Remaining: resp.Quantity,
		})
	}

	result.Completed = len(result.Failed) == 0
	return result, nil
}

// InventoryStatus reports how many complete bundles current stock can
// fulfil. With a location the availability is scoped to it, otherwise the
// component totals across all locations count.
func (s *BundleService) InventoryStatus(ctx context.Context, bundleID uuid.UUID, locationID *uuid.UUID) (*BundleInventoryStatus, error) {
	bundle, err := s.findActiveBundle(ctx, bundleID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(bundle.BundleComponents))
	for _, c := range bundle.BundleComponents {
		ids = append(ids, c.ProductID)
	}
	found, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	status := &BundleInventoryStatus{
		BundleID:   bundle.ID,
		SKU:        bundle.SKU,
		Name:       bundle.Name,
		LocationID: locationID,
		Components: make([]ComponentAvailability, 0, len(bundle.BundleComponents)),
		CanFulfill: true,
	}

	maxBundles := int64(-1)
	for _, component := range bundle.BundleComponents {
		var available int64
		if product, ok := byID[component.ProductID]; ok {
			if locationID != nil {
				available = product.QuantityAt(*locationID)
			} else {
				available = product.TotalQuantity
			}
		}

		fromThis := available / component.Quantity
		if maxBundles < 0 || fromThis < maxBundles {
			maxBundles = fromThis
		}
		if available < component.Quantity {
			status.CanFulfill = false
		}

		status.Components = append(status.Components, ComponentAvailability{
			ProductID:   component.ProductID,
			SKU:         component.SKU,
			Name:        component.Name,
			RequiredPer: component.Quantity,
			Available:   available,
			MaxBundles:  fromThis,
		})
	}
	if maxBundles < 0 {
		maxBundles = 0
	}
	status.MaxBundles = maxBundles

	return status, nil
}

// resolveLocation returns the requested location or falls back to the
// primary one
func (s *BundleService) resolveLocation(ctx context.Context, locationID *uuid.UUID) (uuid.UUID, error) {
	if locationID != nil {
		loc, err := s.locationRepo.FindByID(ctx, *locationID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.ErrLocationNotFound
			}
			return uuid.Nil, err
		}
		return loc.ID, nil
	}

	primary, err := s.locationRepo.FindPrimary(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.ErrLocationNotFound
		}
		return uuid.Nil, err
	}
	return primary.ID, nil
}

func (s *BundleService) findProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *BundleService) findBundle(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrProductNotFound) {
			return nil, shared.ErrBundleNotFound
		}
		return nil, err
	}
	if !product.IsBundle {
		return nil, shared.ErrNotABundle
	}
	return product, nil
}

// findActiveBundle resolves a bundle for sale processing. An inactive
// bundle keeps its definition but is reported as not found, matching how
// absent bundles are reported.
func (s *BundleService) findActiveBundle(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	bundle, err := s.findBundle(ctx, id)
	if err != nil {
		return nil, err
	}
	if !bundle.BundleActive {
		return nil, shared.ErrBundleNotFound
	}
	return bundle, nil
}

// errorCode extracts the domain error code, defaulting to INTERNAL
func errorCode(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL"
}

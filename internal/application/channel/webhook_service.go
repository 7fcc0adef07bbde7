package channel

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bundleapp "github.com/omnistock/backend/internal/application/bundle"
	inventoryapp "github.com/omnistock/backend/internal/application/inventory"
	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/channel"
	"github.com/omnistock/backend/internal/domain/inventory"
	"github.com/omnistock/backend/internal/domain/location"
	"github.com/omnistock/backend/internal/domain/shared"
)

// StockMutator applies stock mutations on behalf of webhook processing
type StockMutator interface {
	RecordSale(ctx context.Context, req inventoryapp.RecordSaleRequest) (*inventoryapp.MutationResponse, error)
	Adjust(ctx context.Context, req inventoryapp.AdjustRequest) (*inventoryapp.MutationResponse, error)
}

// BundleSeller processes bundle sales on behalf of webhook processing
type BundleSeller interface {
	ProcessSale(ctx context.Context, bundleID uuid.UUID, req bundleapp.BundleSaleRequest) (*bundleapp.BundleSaleResult, error)
}

// WebhookService turns verified platform webhook deliveries into stock
// mutations. Line items are processed independently: a line that cannot
// be mapped or deducted is reported and skipped, the rest still apply.
type WebhookService struct {
	mappingRepo  channel.MappingRepository
	productRepo  catalog.ProductRepository
	locationRepo location.Repository
	stock        StockMutator
	bundles      BundleSeller
	idempotency  shared.IdempotencyStore
	idemConfig   shared.IdempotencyConfig
	logger       *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(
	mappingRepo channel.MappingRepository,
	productRepo catalog.ProductRepository,
	locationRepo location.Repository,
	stock StockMutator,
	bundles BundleSeller,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		mappingRepo:  mappingRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		stock:        stock,
		bundles:      bundles,
		idempotency:  idempotency,
		idemConfig:   shared.DefaultIdempotencyConfig(),
		logger:       logger,
	}
}

// SetIdempotencyConfig overrides the default duplicate-suppression window
func (s *WebhookService) SetIdempotencyConfig(cfg shared.IdempotencyConfig) {
	s.idemConfig = cfg
}

// ProcessShopifyOrder handles orders/create and orders/updated. Every
// line item is resolved through the mapping store and deducted at the
// primary location, bundle-aware.
func (s *WebhookService) ProcessShopifyOrder(ctx context.Context, eventID, topic string, payload ShopifyOrderPayload) (*WebhookResult, error) {
	result := &WebhookResult{EventID: eventID, Topic: topic}

	duplicate, err := s.checkIdempotency(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		result.Duplicate = true
		return result, nil
	}

	primary, err := s.primaryLocation(ctx)
	if err != nil {
		return nil, err
	}

	orderRef := payload.OrderName
	if orderRef == "" {
		orderRef = strconv.FormatInt(payload.ID, 10)
	}

	for _, item := range payload.LineItems {
		identifier := strconv.FormatInt(item.VariantID, 10)
		outcome := s.processOrderLine(ctx, channel.PlatformShopify, identifier, item.Quantity, primary.ID, inventory.SourceShopify, orderRef)
		result.Lines = append(result.Lines, outcome)
	}

	return result, nil
}

// ProcessShopifyInventoryLevel handles inventory_levels/update by setting
// the mapped product's quantity at the primary location to the reported
// available count.
func (s *WebhookService) ProcessShopifyInventoryLevel(ctx context.Context, eventID string, payload ShopifyInventoryLevelPayload) (*WebhookResult, error) {
	result := &WebhookResult{EventID: eventID, Topic: "inventory_levels/update"}

	duplicate, err := s.checkIdempotency(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		result.Duplicate = true
		return result, nil
	}

	identifier := strconv.FormatInt(payload.InventoryItemID, 10)
	mapping, err := s.mappingRepo.FindByPlatformIdentifier(ctx, channel.PlatformShopify, identifier)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Lines = append(result.Lines, LineOutcome{
				Identifier: identifier,
				Status:     "unmapped",
			})
			return result, nil
		}
		return nil, err
	}

	if payload.Available < 0 {
		result.Lines = append(result.Lines, LineOutcome{
			Identifier: identifier,
			ProductID:  mapping.LocalProductID.String(),
			Status:     "failed",
			Error:      "negative available count",
		})
		return result, nil
	}

	primary, err := s.primaryLocation(ctx)
	if err != nil {
		return nil, err
	}

	_, err = s.stock.Adjust(ctx, inventoryapp.AdjustRequest{
		ProductID:   mapping.LocalProductID,
		LocationID:  primary.ID,
		NewQuantity: payload.Available,
		Notes:       fmt.Sprintf("Shopify inventory sync: %d units", payload.Available),
	})
	outcome := LineOutcome{
		Identifier: identifier,
		ProductID:  mapping.LocalProductID.String(),
		Quantity:   payload.Available,
		Status:     "applied",
	}
	if err != nil {
		outcome.Status = "failed"
		outcome.Error = err.Error()
		s.logger.Warn("shopify inventory sync failed",
			zap.String("identifier", identifier),
			zap.Error(err),
		)
	}
	result.Lines = append(result.Lines, outcome)

	return result, nil
}

// ProcessSquareOrder handles order.created by deducting every mapped
// line item at the primary location
func (s *WebhookService) ProcessSquareOrder(ctx context.Context, eventID string, payload SquareOrderPayload) (*WebhookResult, error) {
	result := &WebhookResult{EventID: eventID, Topic: "order.created"}

	duplicate, err := s.checkIdempotency(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		result.Duplicate = true
		return result, nil
	}

	primary, err := s.primaryLocation(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range payload.LineItems {
		quantity, err := strconv.ParseInt(item.Quantity, 10, 64)
		if err != nil || quantity <= 0 {
			result.Lines = append(result.Lines, LineOutcome{
				Identifier: item.CatalogObjectID,
				Status:     "failed",
				Error:      "invalid quantity",
			})
			continue
		}
		outcome := s.processOrderLine(ctx, channel.PlatformSquare, item.CatalogObjectID, quantity, primary.ID, inventory.SourceSquare, payload.OrderID)
		result.Lines = append(result.Lines, outcome)
	}

	return result, nil
}

// ProcessAmazonOrder handles ORDER_CHANGE notifications by deducting
// every mapped order item at the primary location. Items are matched on
// ASIN first, seller SKU otherwise.
func (s *WebhookService) ProcessAmazonOrder(ctx context.Context, eventID string, payload AmazonOrderPayload) (*WebhookResult, error) {
	result := &WebhookResult{EventID: eventID, Topic: "ORDER_CHANGE"}

	duplicate, err := s.checkIdempotency(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		result.Duplicate = true
		return result, nil
	}

	primary, err := s.primaryLocation(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range payload.OrderItems {
		identifier := item.ASIN
		if identifier == "" {
			identifier = item.SellerSKU
		}
		if item.Quantity <= 0 {
			result.Lines = append(result.Lines, LineOutcome{
				Identifier: identifier,
				Status:     "failed",
				Error:      "invalid quantity",
			})
			continue
		}
		outcome := s.processOrderLine(ctx, channel.PlatformAmazon, identifier, item.Quantity, primary.ID, inventory.SourceAmazon, payload.AmazonOrderID)
		result.Lines = append(result.Lines, outcome)
	}

	return result, nil
}

// ProcessAmazonInventory handles INVENTORY_CHANGE notifications by
// setting the mapped product's quantity at the primary location to the
// count Amazon reports.
func (s *WebhookService) ProcessAmazonInventory(ctx context.Context, eventID string, payload AmazonInventoryPayload) (*WebhookResult, error) {
	result := &WebhookResult{EventID: eventID, Topic: "INVENTORY_CHANGE"}

	duplicate, err := s.checkIdempotency(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		result.Duplicate = true
		return result, nil
	}

	identifier := payload.ASIN
	if identifier == "" {
		identifier = payload.SellerSKU
	}
	mapping, err := s.mappingRepo.FindByPlatformIdentifier(ctx, channel.PlatformAmazon, identifier)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Lines = append(result.Lines, LineOutcome{
				Identifier: identifier,
				Status:     "unmapped",
			})
			return result, nil
		}
		return nil, err
	}

	if payload.Quantity < 0 {
		result.Lines = append(result.Lines, LineOutcome{
			Identifier: identifier,
			ProductID:  mapping.LocalProductID.String(),
			Status:     "failed",
			Error:      "negative available count",
		})
		return result, nil
	}

	primary, err := s.primaryLocation(ctx)
	if err != nil {
		return nil, err
	}

	_, err = s.stock.Adjust(ctx, inventoryapp.AdjustRequest{
		ProductID:   mapping.LocalProductID,
		LocationID:  primary.ID,
		NewQuantity: payload.Quantity,
		Notes:       fmt.Sprintf("Amazon inventory sync: %d units", payload.Quantity),
	})
	outcome := LineOutcome{
		Identifier: identifier,
		ProductID:  mapping.LocalProductID.String(),
		Quantity:   payload.Quantity,
		Status:     "applied",
	}
	if err != nil {
		outcome.Status = "failed"
		outcome.Error = err.Error()
		s.logger.Warn("amazon inventory sync failed",
			zap.String("identifier", identifier),
			zap.Error(err),
		)
	}
	result.Lines = append(result.Lines, outcome)

	return result, nil
}

// processOrderLine maps one order line to a local product and deducts it,
// routing bundles through the bundle cascade
func (s *WebhookService) processOrderLine(
	ctx context.Context,
	platform channel.Platform,
	identifier string,
	quantity int64,
	locationID uuid.UUID,
	source inventory.TransactionSource,
	orderRef string,
) LineOutcome {
	outcome := LineOutcome{Identifier: identifier, Quantity: quantity}

	mapping, err := s.mappingRepo.FindByPlatformIdentifier(ctx, platform, identifier)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			outcome.Status = "unmapped"
			s.logger.Debug("webhook line item has no mapping",
				zap.String("platform", platform.String()),
				zap.String("identifier", identifier),
			)
			return outcome
		}
		outcome.Status = "failed"
		outcome.Error = err.Error()
		return outcome
	}
	outcome.ProductID = mapping.LocalProductID.String()

	product, err := s.productRepo.FindByID(ctx, mapping.LocalProductID)
	if err != nil {
		outcome.Status = "failed"
		outcome.Error = err.Error()
		return outcome
	}

	if product.IsBundle {
		saleResult, err := s.bundles.ProcessSale(ctx, product.ID, bundleapp.BundleSaleRequest{
			Quantity:   quantity,
			LocationID: &locationID,
			Source:     source.String(),
			OrderRef:   orderRef,
		})
		if err != nil {
			outcome.Status = "failed"
			outcome.Error = err.Error()
			return outcome
		}
		if !saleResult.Completed {
			outcome.Status = "partial"
			outcome.Error = fmt.Sprintf("%d of %d components failed",
				len(saleResult.Failed), len(saleResult.Failed)+len(saleResult.Deducted))
			return outcome
		}
		outcome.Status = "applied"
		return outcome
	}

	_, err = s.stock.RecordSale(ctx, inventoryapp.RecordSaleRequest{
		ProductID:  product.ID,
		LocationID: locationID,
		Quantity:   quantity,
		Source:     source,
		OrderRef:   orderRef,
	})
	if err != nil {
		outcome.Status = "failed"
		outcome.Error = err.Error()
		s.logger.Warn("webhook sale failed",
			zap.String("platform", platform.String()),
			zap.String("sku", product.SKU),
			zap.Error(err),
		)
		return outcome
	}

	outcome.Status = "applied"
	return outcome
}

// checkIdempotency marks the event processed, reporting true when it was
// already seen. A nil store disables the check.
func (s *WebhookService) checkIdempotency(ctx context.Context, eventID string) (bool, error) {
	if s.idempotency == nil || eventID == "" {
		return false, nil
	}
	fresh, err := s.idempotency.MarkProcessed(ctx, eventID, s.idemConfig.TTL)
	if err != nil {
		return false, err
	}
	return !fresh, nil
}

func (s *WebhookService) primaryLocation(ctx context.Context) (*location.Location, error) {
	primary, err := s.locationRepo.FindPrimary(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrLocationNotFound
		}
		return nil, err
	}
	return primary, nil
}

package channel

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/channel"
	"github.com/omnistock/backend/internal/domain/shared"
)

// MappingService manages links between local products and their platform
// identifiers
type MappingService struct {
	mappingRepo channel.MappingRepository
	productRepo catalog.ProductRepository
}

// NewMappingService creates a new MappingService
func NewMappingService(mappingRepo channel.MappingRepository, productRepo catalog.ProductRepository) *MappingService {
	return &MappingService{
		mappingRepo: mappingRepo,
		productRepo: productRepo,
	}
}

// Create links a local product to platform identifiers. A product carries
// at most one mapping row.
func (s *MappingService) Create(ctx context.Context, req CreateMappingRequest) (*MappingResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.LocalProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.mappingRepo.FindByLocalProduct(ctx, req.LocalProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product already has a mapping")
	}

	matchType := channel.MatchTypeManual
	if req.MatchType != "" {
		matchType = channel.MatchType(req.MatchType)
	}
	confidence := 1.0
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	mapping, err := channel.NewProductMapping(product.ID, product.SKU, matchType, confidence)
	if err != nil {
		return nil, err
	}
	if req.ShopifyProductID != "" || req.ShopifyVariantID != "" {
		mapping.SetShopifyIdentifiers(req.ShopifyProductID, req.ShopifyVariantID)
	}
	if req.SquareItemID != "" || req.SquareItemVariationID != "" {
		mapping.SetSquareIdentifiers(req.SquareItemID, req.SquareItemVariationID)
	}
	if req.AmazonASIN != "" || req.AmazonSellerSKU != "" {
		mapping.SetAmazonIdentifiers(req.AmazonASIN, req.AmazonSellerSKU)
	}

	if err := s.mappingRepo.Save(ctx, mapping); err != nil {
		return nil, err
	}

	response := ToMappingResponse(mapping)
	return &response, nil
}

// GetByID retrieves a mapping by ID
func (s *MappingService) GetByID(ctx context.Context, id uuid.UUID) (*MappingResponse, error) {
	mapping, err := s.findMapping(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMappingResponse(mapping)
	return &response, nil
}

// GetByLocalProduct retrieves the mapping for a local product
func (s *MappingService) GetByLocalProduct(ctx context.Context, productID uuid.UUID) (*MappingResponse, error) {
	mapping, err := s.mappingRepo.FindByLocalProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMappingNotFound
		}
		return nil, err
	}
	response := ToMappingResponse(mapping)
	return &response, nil
}

// List retrieves mappings with pagination
func (s *MappingService) List(ctx context.Context, page, pageSize int) ([]MappingResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	mappings, err := s.mappingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.mappingRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToMappingResponses(mappings), total, nil
}

// Update modifies the identifiers carried by a mapping
func (s *MappingService) Update(ctx context.Context, id uuid.UUID, req UpdateMappingRequest) (*MappingResponse, error) {
	mapping, err := s.findMapping(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MatchType != nil {
		matchType := channel.MatchType(*req.MatchType)
		if !matchType.IsValid() {
			return nil, shared.NewDomainError("INVALID_MATCH_TYPE", "Match type must be auto or manual")
		}
		mapping.MatchType = matchType
	}
	if req.Confidence != nil {
		if *req.Confidence < 0 || *req.Confidence > 1 {
			return nil, shared.NewDomainError("INVALID_CONFIDENCE", "Confidence must be between 0 and 1")
		}
		mapping.Confidence = *req.Confidence
	}

	if req.ShopifyProductID != nil || req.ShopifyVariantID != nil {
		productID := mapping.ShopifyProductID
		variantID := mapping.ShopifyVariantID
		if req.ShopifyProductID != nil {
			productID = *req.ShopifyProductID
		}
		if req.ShopifyVariantID != nil {
			variantID = *req.ShopifyVariantID
		}
		mapping.SetShopifyIdentifiers(productID, variantID)
	}
	if req.SquareItemID != nil || req.SquareItemVariationID != nil {
		itemID := mapping.SquareItemID
		variationID := mapping.SquareItemVariationID
		if req.SquareItemID != nil {
			itemID = *req.SquareItemID
		}
		if req.SquareItemVariationID != nil {
			variationID = *req.SquareItemVariationID
		}
		mapping.SetSquareIdentifiers(itemID, variationID)
	}
	if req.AmazonASIN != nil || req.AmazonSellerSKU != nil {
		asin := mapping.AmazonASIN
		sellerSKU := mapping.AmazonSellerSKU
		if req.AmazonASIN != nil {
			asin = *req.AmazonASIN
		}
		if req.AmazonSellerSKU != nil {
			sellerSKU = *req.AmazonSellerSKU
		}
		mapping.SetAmazonIdentifiers(asin, sellerSKU)
	}

	if err := s.mappingRepo.Save(ctx, mapping); err != nil {
		return nil, err
	}

	response := ToMappingResponse(mapping)
	return &response, nil
}

// Delete removes a mapping
func (s *MappingService) Delete(ctx context.Context, id uuid.UUID) error {
	mapping, err := s.findMapping(ctx, id)
	if err != nil {
		return err
	}
	return s.mappingRepo.Delete(ctx, mapping.ID)
}

// Resolve finds the local product behind a platform identifier
func (s *MappingService) Resolve(ctx context.Context, platform channel.Platform, identifier string) (*MappingResponse, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown platform")
	}
	mapping, err := s.mappingRepo.FindByPlatformIdentifier(ctx, platform, identifier)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMappingNotFound
		}
		return nil, err
	}
	response := ToMappingResponse(mapping)
	return &response, nil
}

func (s *MappingService) findMapping(ctx context.Context, id uuid.UUID) (*channel.ProductMapping, error) {
	mapping, err := s.mappingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMappingNotFound
		}
		return nil, err
	}
	return mapping, nil
}

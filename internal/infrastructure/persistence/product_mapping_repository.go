package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnistock/backend/internal/domain/channel"
	"github.com/omnistock/backend/internal/domain/shared"
)

// GormProductMappingRepository implements channel.MappingRepository using GORM
type GormProductMappingRepository struct {
	db *gorm.DB
}

// NewGormProductMappingRepository creates a new GormProductMappingRepository
func NewGormProductMappingRepository(db *gorm.DB) *GormProductMappingRepository {
	return &GormProductMappingRepository{db: db}
}

// FindByID finds a mapping by its ID
func (r *GormProductMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.ProductMapping, error) {
	var mapping channel.ProductMapping
	if err := r.db.WithContext(ctx).First(&mapping, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindByLocalProduct finds the mapping for a local product
func (r *GormProductMappingRepository) FindByLocalProduct(ctx context.Context, localProductID uuid.UUID) (*channel.ProductMapping, error) {
	var mapping channel.ProductMapping
	if err := r.db.WithContext(ctx).
		Where("local_product_id = ?", localProductID).
		First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindByPlatformIdentifier finds the mapping carrying the given
// platform-side identifier. Shopify matches on variant then product ID,
// Square on item variation then item ID, Amazon on ASIN then seller SKU.
func (r *GormProductMappingRepository) FindByPlatformIdentifier(ctx context.Context, platform channel.Platform, identifier string) (*channel.ProductMapping, error) {
	query := r.db.WithContext(ctx)

	switch platform {
	case channel.PlatformShopify:
		query = query.Where("shopify_variant_id = ? OR shopify_product_id = ?", identifier, identifier)
	case channel.PlatformSquare:
		query = query.Where("square_item_variation_id = ? OR square_item_id = ?", identifier, identifier)
	case channel.PlatformAmazon:
		query = query.Where("amazon_asin = ? OR amazon_seller_sku = ?", identifier, identifier)
	default:
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown platform: "+string(platform))
	}

	var mapping channel.ProductMapping
	if err := query.First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindAll finds all mappings matching the filter
func (r *GormProductMappingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]channel.ProductMapping, error) {
	var mappings []channel.ProductMapping
	query := r.db.WithContext(ctx).Model(&channel.ProductMapping{})

	if filter.Search != "" {
		query = query.Where("local_sku LIKE ?", "%"+strings.ToUpper(filter.Search)+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("local_sku ASC")

	if err := query.Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// Save creates or updates a mapping
func (r *GormProductMappingRepository) Save(ctx context.Context, mapping *channel.ProductMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

// Delete deletes a mapping
func (r *GormProductMappingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&channel.ProductMapping{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts mappings matching the filter
func (r *GormProductMappingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&channel.ProductMapping{})

	if filter.Search != "" {
		query = query.Where("local_sku LIKE ?", "%"+strings.ToUpper(filter.Search)+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProductMappingRepository implements MappingRepository
var _ channel.MappingRepository = (*GormProductMappingRepository)(nil)

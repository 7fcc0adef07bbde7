package channel

import (
	"time"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
)

// MatchType records how a mapping was established
type MatchType string

const (
	// MatchTypeAuto means the mapping was suggested by the matcher
	MatchTypeAuto MatchType = "auto"
	// MatchTypeManual means an operator linked the products by hand
	MatchTypeManual MatchType = "manual"
)

// IsValid returns true if the match type is known
func (m MatchType) IsValid() bool {
	return m == MatchTypeAuto || m == MatchTypeManual
}

// ProductMapping links a local product to its identifiers on external
// platforms. One mapping row per local product; platform fields that are
// empty mean the product is not listed there.
type ProductMapping struct {
	shared.BaseEntity
	LocalProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LocalSKU       string    `gorm:"type:varchar(50);not null;index"`

	ShopifyProductID       string `gorm:"type:varchar(64);index"`
	ShopifyVariantID       string `gorm:"type:varchar(64);index"`
	SquareItemID           string `gorm:"type:varchar(64)"`
	SquareItemVariationID  string `gorm:"type:varchar(64);index"`
	AmazonASIN             string `gorm:"type:varchar(32);index"`
	AmazonSellerSKU        string `gorm:"type:varchar(64)"`

	MatchType  MatchType `gorm:"type:varchar(10);not null;default:'manual'"`
	Confidence float64   `gorm:"not null;default:1"`
	MatchedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductMapping) TableName() string {
	return "product_mappings"
}

// NewProductMapping creates a mapping for a local product
func NewProductMapping(localProductID uuid.UUID, localSKU string, matchType MatchType, confidence float64) (*ProductMapping, error) {
	if localProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Local product ID is required")
	}
	if !matchType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MATCH_TYPE", "Match type must be auto or manual")
	}
	if confidence < 0 || confidence > 1 {
		return nil, shared.NewDomainError("INVALID_CONFIDENCE", "Confidence must be between 0 and 1")
	}

	return &ProductMapping{
		BaseEntity:     shared.NewBaseEntity(),
		LocalProductID: localProductID,
		LocalSKU:       localSKU,
		MatchType:      matchType,
		Confidence:     confidence,
		MatchedAt:      time.Now(),
	}, nil
}

// SetShopifyIdentifiers links the mapping to a Shopify product/variant
func (m *ProductMapping) SetShopifyIdentifiers(productID, variantID string) {
	m.ShopifyProductID = productID
	m.ShopifyVariantID = variantID
	m.UpdatedAt = time.Now()
}

// SetSquareIdentifiers links the mapping to a Square item/variation
func (m *ProductMapping) SetSquareIdentifiers(itemID, variationID string) {
	m.SquareItemID = itemID
	m.SquareItemVariationID = variationID
	m.UpdatedAt = time.Now()
}

// SetAmazonIdentifiers links the mapping to an Amazon listing
func (m *ProductMapping) SetAmazonIdentifiers(asin, sellerSKU string) {
	m.AmazonASIN = asin
	m.AmazonSellerSKU = sellerSKU
	m.UpdatedAt = time.Now()
}

// HasPlatform reports whether the mapping covers the given platform
func (m *ProductMapping) HasPlatform(platform Platform) bool {
	switch platform {
	case PlatformShopify:
		return m.ShopifyProductID != "" || m.ShopifyVariantID != ""
	case PlatformSquare:
		return m.SquareItemID != "" || m.SquareItemVariationID != ""
	case PlatformAmazon:
		return m.AmazonASIN != "" || m.AmazonSellerSKU != ""
	default:
		return false
	}
}

// PlatformIdentifier returns the primary identifier used on a platform
func (m *ProductMapping) PlatformIdentifier(platform Platform) string {
	switch platform {
	case PlatformShopify:
		if m.ShopifyVariantID != "" {
			return m.ShopifyVariantID
		}
		return m.ShopifyProductID
	case PlatformSquare:
		return m.SquareItemVariationID
	case PlatformAmazon:
		return m.AmazonASIN
	default:
		return ""
	}
}

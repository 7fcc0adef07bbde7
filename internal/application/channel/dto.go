package channel

import (
	"time"

	"github.com/google/uuid"

	"github.com/omnistock/backend/internal/domain/channel"
)

// CreateMappingRequest links a local product to platform identifiers
type CreateMappingRequest struct {
	LocalProductID        uuid.UUID `json:"local_product_id" binding:"required"`
	MatchType             string    `json:"match_type" binding:"omitempty,oneof=auto manual"`
	Confidence            *float64  `json:"confidence" binding:"omitempty,min=0,max=1"`
	ShopifyProductID      string    `json:"shopify_product_id"`
	ShopifyVariantID      string    `json:"shopify_variant_id"`
	SquareItemID          string    `json:"square_item_id"`
	SquareItemVariationID string    `json:"square_item_variation_id"`
	AmazonASIN            string    `json:"amazon_asin"`
	AmazonSellerSKU       string    `json:"amazon_seller_sku"`
}

// UpdateMappingRequest updates the platform identifiers of a mapping
type UpdateMappingRequest struct {
	MatchType             *string  `json:"match_type" binding:"omitempty,oneof=auto manual"`
	Confidence            *float64 `json:"confidence" binding:"omitempty,min=0,max=1"`
	ShopifyProductID      *string  `json:"shopify_product_id"`
	ShopifyVariantID      *string  `json:"shopify_variant_id"`
	SquareItemID          *string  `json:"square_item_id"`
	SquareItemVariationID *string  `json:"square_item_variation_id"`
	AmazonASIN            *string  `json:"amazon_asin"`
	AmazonSellerSKU       *string  `json:"amazon_seller_sku"`
}

// MappingResponse represents a product mapping in API responses
type MappingResponse struct {
	ID                    uuid.UUID `json:"id"`
	LocalProductID        uuid.UUID `json:"local_product_id"`
	LocalSKU              string    `json:"local_sku"`
	ShopifyProductID      string    `json:"shopify_product_id,omitempty"`
	ShopifyVariantID      string    `json:"shopify_variant_id,omitempty"`
	SquareItemID          string    `json:"square_item_id,omitempty"`
	SquareItemVariationID string    `json:"square_item_variation_id,omitempty"`
	AmazonASIN            string    `json:"amazon_asin,omitempty"`
	AmazonSellerSKU       string    `json:"amazon_seller_sku,omitempty"`
	MatchType             string    `json:"match_type"`
	Confidence            float64   `json:"confidence"`
	MatchedAt             time.Time `json:"matched_at"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ToMappingResponse maps a product mapping to its API representation
func ToMappingResponse(m *channel.ProductMapping) MappingResponse {
	return MappingResponse{
		ID:                    m.ID,
		LocalProductID:        m.LocalProductID,
		LocalSKU:              m.LocalSKU,
		ShopifyProductID:      m.ShopifyProductID,
		ShopifyVariantID:      m.ShopifyVariantID,
		SquareItemID:          m.SquareItemID,
		SquareItemVariationID: m.SquareItemVariationID,
		AmazonASIN:            m.AmazonASIN,
		AmazonSellerSKU:       m.AmazonSellerSKU,
		MatchType:             string(m.MatchType),
		Confidence:            m.Confidence,
		MatchedAt:             m.MatchedAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// ToMappingResponses maps a slice of product mappings
func ToMappingResponses(mappings []channel.ProductMapping) []MappingResponse {
	responses := make([]MappingResponse, len(mappings))
	for i := range mappings {
		responses[i] = ToMappingResponse(&mappings[i])
	}
	return responses
}

// DiscrepancyReport summarizes a discrepancy detection run
type DiscrepancyReport struct {
	Platform      channel.Platform               `json:"platform"`
	CheckedAt     time.Time                      `json:"checked_at"`
	MappedCount   int                            `json:"mapped_count"`
	Discrepancies []channel.InventoryDiscrepancy `json:"discrepancies"`
}

// ShopifyLineItem is one order line in a Shopify order webhook
type ShopifyLineItem struct {
	VariantID int64  `json:"variant_id"`
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Quantity  int64  `json:"quantity"`
}

// ShopifyOrderPayload is the body of orders/create and orders/updated
type ShopifyOrderPayload struct {
	ID        int64             `json:"id"`
	OrderName string            `json:"name"`
	LineItems []ShopifyLineItem `json:"line_items"`
}

// ShopifyInventoryLevelPayload is the body of inventory_levels/update
type ShopifyInventoryLevelPayload struct {
	InventoryItemID int64 `json:"inventory_item_id"`
	Available       int64 `json:"available"`
}

// SquareLineItem is one order line in a Square order webhook
type SquareLineItem struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Quantity        string `json:"quantity"`
}

// SquareOrderPayload is the order carried by a Square order.created event
type SquareOrderPayload struct {
	OrderID   string           `json:"order_id"`
	LineItems []SquareLineItem `json:"line_items"`
}

// AmazonOrderItem is one line of an Amazon order notification
type AmazonOrderItem struct {
	ASIN      string `json:"asin"`
	SellerSKU string `json:"sellerSku"`
	Quantity  int64  `json:"quantity"`
}

// AmazonOrderPayload is the order carried by an ORDER_CHANGE notification
type AmazonOrderPayload struct {
	AmazonOrderID string            `json:"amazonOrderId"`
	OrderItems    []AmazonOrderItem `json:"orderItems"`
}

// AmazonInventoryPayload is carried by an INVENTORY_CHANGE notification
// and reports the absolute quantity Amazon now holds for a listing
type AmazonInventoryPayload struct {
	ASIN      string `json:"asin"`
	SellerSKU string `json:"sellerSku"`
	Quantity  int64  `json:"quantity"`
}

// LineOutcome reports the processing result of one webhook order line
type LineOutcome struct {
	Identifier string `json:"identifier"`
	ProductID  string `json:"product_id,omitempty"`
	Quantity   int64  `json:"quantity"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// WebhookResult reports the processing outcome of one webhook delivery
type WebhookResult struct {
	EventID   string        `json:"event_id"`
	Topic     string        `json:"topic"`
	Duplicate bool          `json:"duplicate"`
	Lines     []LineOutcome `json:"lines,omitempty"`
}

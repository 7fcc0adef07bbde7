package ecommerce

import "strings"

// ShopifyProductsResponse is the Admin API products listing envelope
type ShopifyProductsResponse struct {
	Products []ShopifyProduct `json:"products"`
}

// ShopifyProduct is a product as reported by the Admin API
type ShopifyProduct struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Variants []ShopifyVariant `json:"variants"`
}

// ShopifyVariant is a sellable variant of a Shopify product
type ShopifyVariant struct {
	ID                int64  `json:"id"`
	SKU               string `json:"sku"`
	Title             string `json:"title"`
	InventoryQuantity int64  `json:"inventory_quantity"`
}

// parseShopifyNextPageInfo extracts the page_info cursor for the next
// page from a Link response header. Returns "" when there is no next
// page.
//
// Header shape:
//
//	<https://shop.myshopify.com/admin/api/2024-07/products.json?page_info=abc&limit=250>; rel="next"
func parseShopifyNextPageInfo(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start < 0 || end < 0 || end <= start {
			continue
		}
		rawURL := part[start+1 : end]
		idx := strings.Index(rawURL, "page_info=")
		if idx < 0 {
			continue
		}
		cursor := rawURL[idx+len("page_info="):]
		if amp := strings.Index(cursor, "&"); amp >= 0 {
			cursor = cursor[:amp]
		}
		return cursor
	}
	return ""
}

package ecommerce

import "errors"

// ShopifyConfig holds configuration for Shopify Admin API access
type ShopifyConfig struct {
	// ShopDomain is the myshopify.com domain, e.g. "my-store.myshopify.com"
	ShopDomain string
	// AccessToken is the Admin API access token
	AccessToken string
	// APIBaseURL overrides the URL derived from ShopDomain when set
	APIBaseURL string
	// APIVersion is the Admin API version date, e.g. "2024-07"
	APIVersion string
	// PageSize is the number of products requested per page (max 250)
	PageSize int
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// ShopifyDefaultAPIVersion is the Admin API version used when none is configured
	ShopifyDefaultAPIVersion = "2024-07"
	// shopifyMaxPageSize is the largest page size the Admin API accepts
	shopifyMaxPageSize = 250
)

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingShopDomain  = errors.New("shopify: shop domain is required")
	ErrShopifyConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(shopDomain, accessToken string) *ShopifyConfig {
	return &ShopifyConfig{
		ShopDomain:     shopDomain,
		AccessToken:    accessToken,
		APIVersion:     ShopifyDefaultAPIVersion,
		PageSize:       shopifyMaxPageSize,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Shopify configuration
func (c *ShopifyConfig) Validate() error {
	if c.ShopDomain == "" {
		return ErrShopifyConfigMissingShopDomain
	}
	if c.AccessToken == "" {
		return ErrShopifyConfigMissingAccessToken
	}
	if c.APIVersion == "" {
		c.APIVersion = ShopifyDefaultAPIVersion
	}
	if c.PageSize <= 0 || c.PageSize > shopifyMaxPageSize {
		c.PageSize = shopifyMaxPageSize
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// BaseURL returns the Admin API base URL for the configured shop
func (c *ShopifyConfig) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return "https://" + c.ShopDomain
}

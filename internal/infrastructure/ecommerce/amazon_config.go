package ecommerce

import "errors"

// AmazonConfig holds configuration for Selling Partner API access. The
// access token is an LWA token; refreshing it is the operator's concern.
type AmazonConfig struct {
	// Endpoint is the regional SP-API endpoint
	Endpoint string
	// MarketplaceID identifies the marketplace inventory is reported for
	MarketplaceID string
	// AccessToken is the LWA access token sent with every request
	AccessToken string
	// PageSize is the number of summaries requested per page (max 50)
	PageSize int
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// AmazonDefaultEndpoint is the North America SP-API endpoint
	AmazonDefaultEndpoint = "https://sellingpartnerapi-na.amazon.com"
	// amazonMaxPageSize is the largest page size the summaries API accepts
	amazonMaxPageSize = 50
)

// Errors for Amazon configuration
var (
	ErrAmazonConfigMissingMarketplaceID = errors.New("amazon: marketplace ID is required")
	ErrAmazonConfigMissingAccessToken   = errors.New("amazon: access token is required")
)

// NewAmazonConfig creates a new Amazon configuration with defaults
func NewAmazonConfig(marketplaceID, accessToken string) *AmazonConfig {
	return &AmazonConfig{
		Endpoint:       AmazonDefaultEndpoint,
		MarketplaceID:  marketplaceID,
		AccessToken:    accessToken,
		PageSize:       amazonMaxPageSize,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Amazon configuration
func (c *AmazonConfig) Validate() error {
	if c.MarketplaceID == "" {
		return ErrAmazonConfigMissingMarketplaceID
	}
	if c.AccessToken == "" {
		return ErrAmazonConfigMissingAccessToken
	}
	if c.Endpoint == "" {
		c.Endpoint = AmazonDefaultEndpoint
	}
	if c.PageSize <= 0 || c.PageSize > amazonMaxPageSize {
		c.PageSize = amazonMaxPageSize
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

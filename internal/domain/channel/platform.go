package channel

// Platform identifies an external sales channel
type Platform string

const (
	// PlatformShopify is the Shopify storefront
	PlatformShopify Platform = "shopify"
	// PlatformSquare is the Square point of sale
	PlatformSquare Platform = "square"
	// PlatformAmazon is the Amazon marketplace
	PlatformAmazon Platform = "amazon"
)

// IsValid returns true if the platform is known
func (p Platform) IsValid() bool {
	switch p {
	case PlatformShopify, PlatformSquare, PlatformAmazon:
		return true
	default:
		return false
	}
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns a human-readable name for the platform
func (p Platform) DisplayName() string {
	switch p {
	case PlatformShopify:
		return "Shopify"
	case PlatformSquare:
		return "Square"
	case PlatformAmazon:
		return "Amazon"
	default:
		return string(p)
	}
}

// AllPlatforms lists every supported platform
func AllPlatforms() []Platform {
	return []Platform{PlatformShopify, PlatformSquare, PlatformAmazon}
}

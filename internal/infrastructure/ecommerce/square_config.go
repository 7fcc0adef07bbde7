package ecommerce

import "errors"

// SquareConfig holds configuration for Square API access
type SquareConfig struct {
	// AccessToken is the Square API access token
	AccessToken string
	// APIBaseURL is the base URL for the Square API (production or sandbox)
	APIBaseURL string
	// APIVersion is the Square-Version header value
	APIVersion string
	// IsSandbox indicates if this is a sandbox environment
	IsSandbox bool
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// SquareProductionAPIURL is the production API endpoint
	SquareProductionAPIURL = "https://connect.squareup.com"
	// SquareSandboxAPIURL is the sandbox API endpoint
	SquareSandboxAPIURL = "https://connect.squareupsandbox.com"
	// SquareDefaultAPIVersion is the Square-Version used when none is configured
	SquareDefaultAPIVersion = "2024-06-04"
)

// ErrSquareConfigMissingAccessToken is returned when no access token is configured
var ErrSquareConfigMissingAccessToken = errors.New("square: access token is required")

// NewSquareConfig creates a new Square configuration with defaults
func NewSquareConfig(accessToken string) *SquareConfig {
	return &SquareConfig{
		AccessToken:    accessToken,
		APIBaseURL:     SquareProductionAPIURL,
		APIVersion:     SquareDefaultAPIVersion,
		IsSandbox:      false,
		TimeoutSeconds: 30,
	}
}

// NewSandboxSquareConfig creates a new Square configuration for sandbox environment
func NewSandboxSquareConfig(accessToken string) *SquareConfig {
	return &SquareConfig{
		AccessToken:    accessToken,
		APIBaseURL:     SquareSandboxAPIURL,
		APIVersion:     SquareDefaultAPIVersion,
		IsSandbox:      true,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Square configuration
func (c *SquareConfig) Validate() error {
	if c.AccessToken == "" {
		return ErrSquareConfigMissingAccessToken
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = SquareProductionAPIURL
	}
	if c.APIVersion == "" {
		c.APIVersion = SquareDefaultAPIVersion
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

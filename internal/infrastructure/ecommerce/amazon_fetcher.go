package ecommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/omnistock/backend/internal/domain/channel"
)

const (
	// maxAmazonResponseSize limits the response body size to prevent memory exhaustion
	maxAmazonResponseSize = 10 * 1024 * 1024 // 10MB max response
	// maxAmazonPages bounds nextToken pagination so a broken cursor cannot loop forever
	maxAmazonPages = 200
)

// ErrAmazonTooManyPages is returned when pagination exceeds maxAmazonPages
var ErrAmazonTooManyPages = errors.New("amazon: inventory listing exceeded page limit")

// AmazonFetcher lists FBA inventory summaries from the Selling Partner
// API. It implements channel.PlatformFetcher for discrepancy checks
// against the local stock ledger.
type AmazonFetcher struct {
	config     *AmazonConfig
	httpClient *http.Client
}

// NewAmazonFetcher creates a new Amazon fetcher with the given configuration
func NewAmazonFetcher(config *AmazonConfig) (*AmazonFetcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &AmazonFetcher{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform identifies the channel this fetcher talks to
func (f *AmazonFetcher) Platform() channel.Platform {
	return channel.PlatformAmazon
}

// FetchProducts lists every FBA inventory summary for the configured
// marketplace, following nextToken pagination. The ASIN is the primary
// identifier, the seller SKU the secondary one.
func (f *AmazonFetcher) FetchProducts(ctx context.Context) ([]channel.PlatformProduct, error) {
	products := make([]channel.PlatformProduct, 0)

	nextToken := ""
	for page := 0; ; page++ {
		if page >= maxAmazonPages {
			return nil, ErrAmazonTooManyPages
		}

		body, err := f.listSummariesPage(ctx, nextToken)
		if err != nil {
			return nil, err
		}

		var resp AmazonInventorySummariesResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("amazon: failed to parse response: %w", err)
		}
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("amazon: %s - %s", resp.Errors[0].Code, resp.Errors[0].Message)
		}

		for _, summary := range resp.Payload.InventorySummaries {
			products = append(products, channel.PlatformProduct{
				ID:        summary.ASIN,
				VariantID: summary.SellerSKU,
				SKU:       summary.SellerSKU,
				Name:      summary.ProductName,
				Inventory: summary.TotalQuantity,
			})
		}

		nextToken = ""
		if resp.Pagination != nil {
			nextToken = resp.Pagination.NextToken
		}
		if nextToken == "" {
			return products, nil
		}
	}
}

// listSummariesPage fetches one page of the FBA inventory summaries
func (f *AmazonFetcher) listSummariesPage(ctx context.Context, nextToken string) ([]byte, error) {
	query := url.Values{}
	query.Set("granularityType", "Marketplace")
	query.Set("granularityId", f.config.MarketplaceID)
	query.Set("marketplaceIds", f.config.MarketplaceID)
	query.Set("maxResults", fmt.Sprintf("%d", f.config.PageSize))
	if nextToken != "" {
		query.Set("nextToken", nextToken)
	}

	reqURL := f.config.Endpoint + "/fba/inventory/v1/summaries?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("amazon: failed to create request: %w", err)
	}

	req.Header.Set("x-amz-access-token", f.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amazon: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAmazonResponseSize))
	if err != nil {
		return nil, fmt.Errorf("amazon: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("amazon: HTTP %d", resp.StatusCode)
	}

	return body, nil
}

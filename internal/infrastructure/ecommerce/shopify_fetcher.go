package ecommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/omnistock/backend/internal/domain/channel"
)

const (
	// maxShopifyResponseSize limits the response body size to prevent memory exhaustion
	maxShopifyResponseSize = 10 * 1024 * 1024 // 10MB max response
	// maxShopifyPages bounds pagination so a broken cursor cannot loop forever
	maxShopifyPages = 200
)

// ErrShopifyTooManyPages is returned when pagination exceeds maxShopifyPages
var ErrShopifyTooManyPages = errors.New("shopify: product listing exceeded page limit")

// ShopifyFetcher lists products and inventory counts from the Shopify
// Admin API. It implements channel.PlatformFetcher for discrepancy
// checks against the local stock ledger.
type ShopifyFetcher struct {
	config     *ShopifyConfig
	httpClient *http.Client
}

// NewShopifyFetcher creates a new Shopify fetcher with the given configuration
func NewShopifyFetcher(config *ShopifyConfig) (*ShopifyFetcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &ShopifyFetcher{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform identifies the channel this fetcher talks to
func (f *ShopifyFetcher) Platform() channel.Platform {
	return channel.PlatformShopify
}

// FetchProducts lists every product variant the shop currently reports,
// following Link-header pagination.
func (f *ShopifyFetcher) FetchProducts(ctx context.Context) ([]channel.PlatformProduct, error) {
	products := make([]channel.PlatformProduct, 0)

	pageInfo := ""
	for page := 0; ; page++ {
		if page >= maxShopifyPages {
			return nil, ErrShopifyTooManyPages
		}

		body, linkHeader, err := f.listProductsPage(ctx, pageInfo)
		if err != nil {
			return nil, err
		}

		var resp ShopifyProductsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("shopify: failed to parse response: %w", err)
		}

		for _, product := range resp.Products {
			for _, variant := range product.Variants {
				products = append(products, channel.PlatformProduct{
					ID:        strconv.FormatInt(product.ID, 10),
					VariantID: strconv.FormatInt(variant.ID, 10),
					SKU:       variant.SKU,
					Name:      product.Title,
					Inventory: variant.InventoryQuantity,
				})
			}
		}

		pageInfo = parseShopifyNextPageInfo(linkHeader)
		if pageInfo == "" {
			return products, nil
		}
	}
}

// listProductsPage fetches one page of the products listing and returns
// the body together with the Link header used for pagination.
func (f *ShopifyFetcher) listProductsPage(ctx context.Context, pageInfo string) ([]byte, string, error) {
	url := fmt.Sprintf("%s/admin/api/%s/products.json?limit=%d",
		f.config.BaseURL(), f.config.APIVersion, f.config.PageSize)
	if pageInfo != "" {
		url += "&page_info=" + pageInfo
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", f.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxShopifyResponseSize))
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("shopify: HTTP %d", resp.StatusCode)
	}

	return body, resp.Header.Get("Link"), nil
}

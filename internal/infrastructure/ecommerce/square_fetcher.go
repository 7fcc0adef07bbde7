package ecommerce

import (
	"bytes"
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
	// maxSquareResponseSize limits the response body size to prevent memory exhaustion
	maxSquareResponseSize = 10 * 1024 * 1024 // 10MB max response
	// maxSquarePages bounds cursor pagination so a broken cursor cannot loop forever
	maxSquarePages = 200
	// squareCountsBatchSize is the number of variation IDs per counts request
	squareCountsBatchSize = 100
)

// ErrSquareTooManyPages is returned when pagination exceeds maxSquarePages
var ErrSquareTooManyPages = errors.New("square: catalog listing exceeded page limit")

// SquareFetcher lists catalog item variations and their inventory
// counts from the Square API. It implements channel.PlatformFetcher
// for discrepancy checks against the local stock ledger.
type SquareFetcher struct {
	config     *SquareConfig
	httpClient *http.Client
}

// NewSquareFetcher creates a new Square fetcher with the given configuration
func NewSquareFetcher(config *SquareConfig) (*SquareFetcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &SquareFetcher{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform identifies the channel this fetcher talks to
func (f *SquareFetcher) Platform() channel.Platform {
	return channel.PlatformSquare
}

// FetchProducts lists every item variation in the catalog together
// with its IN_STOCK count summed across locations.
func (f *SquareFetcher) FetchProducts(ctx context.Context) ([]channel.PlatformProduct, error) {
	products, err := f.listCatalogItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	counts, err := f.retrieveCounts(ctx, products)
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].Inventory = counts[products[i].VariantID]
	}
	return products, nil
}

// listCatalogItems walks the catalog listing and flattens items into
// one entry per variation. Inventory is filled in afterwards.
func (f *SquareFetcher) listCatalogItems(ctx context.Context) ([]channel.PlatformProduct, error) {
	products := make([]channel.PlatformProduct, 0)

	cursor := ""
	for page := 0; ; page++ {
		if page >= maxSquarePages {
			return nil, ErrSquareTooManyPages
		}

		url := f.config.APIBaseURL + "/v2/catalog/list?types=ITEM"
		if cursor != "" {
			url += "&cursor=" + cursor
		}

		body, err := f.doRequest(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		var resp SquareListCatalogResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("square: failed to parse response: %w", err)
		}
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("square: %s - %s", resp.Errors[0].Code, resp.Errors[0].Detail)
		}

		for _, object := range resp.Objects {
			if object.Type != "ITEM" || object.ItemData == nil {
				continue
			}
			for _, variation := range object.ItemData.Variations {
				if variation.ItemVariationData == nil {
					continue
				}
				products = append(products, channel.PlatformProduct{
					ID:        object.ID,
					VariantID: variation.ID,
					SKU:       variation.ItemVariationData.SKU,
					Name:      object.ItemData.Name,
				})
			}
		}

		cursor = resp.Cursor
		if cursor == "" {
			return products, nil
		}
	}
}

// retrieveCounts fetches IN_STOCK counts for the given variations,
// keyed by catalog object ID and summed across locations.
func (f *SquareFetcher) retrieveCounts(ctx context.Context, products []channel.PlatformProduct) (map[string]int64, error) {
	counts := make(map[string]int64, len(products))

	ids := make([]string, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.VariantID)
	}

	for start := 0; start < len(ids); start += squareCountsBatchSize {
		end := start + squareCountsBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		cursor := ""
		for page := 0; ; page++ {
			if page >= maxSquarePages {
				return nil, ErrSquareTooManyPages
			}

			reqBody := SquareBatchRetrieveCountsRequest{
				CatalogObjectIDs: ids[start:end],
				Cursor:           cursor,
			}

			body, err := f.doRequest(ctx, http.MethodPost, f.config.APIBaseURL+"/v2/inventory/counts/batch-retrieve", reqBody)
			if err != nil {
				return nil, err
			}

			var resp SquareBatchRetrieveCountsResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return nil, fmt.Errorf("square: failed to parse response: %w", err)
			}
			if len(resp.Errors) > 0 {
				return nil, fmt.Errorf("square: %s - %s", resp.Errors[0].Code, resp.Errors[0].Detail)
			}

			for _, count := range resp.Counts {
				if count.State != "IN_STOCK" {
					continue
				}
				// Quantity is a decimal string; whole units only
				quantity, err := strconv.ParseFloat(count.Quantity, 64)
				if err != nil {
					return nil, fmt.Errorf("square: invalid quantity %q: %w", count.Quantity, err)
				}
				counts[count.CatalogObjectID] += int64(quantity)
			}

			cursor = resp.Cursor
			if cursor == "" {
				break
			}
		}
	}

	return counts, nil
}

// doRequest performs one Square API call and returns the raw body
func (f *SquareFetcher) doRequest(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("square: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("square: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+f.config.AccessToken)
	req.Header.Set("Square-Version", f.config.APIVersion)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("square: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSquareResponseSize))
	if err != nil {
		return nil, fmt.Errorf("square: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("square: HTTP %d", resp.StatusCode)
	}

	return body, nil
}

package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"sku":                 true,
	"name":                true,
	"category":            true,
	"price":               true,
	"cost":                true,
	"total_quantity":      true,
	"low_stock_threshold": true,
	"is_bundle":           true,
}

// LocationSortFields contains allowed sort fields for locations
var LocationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"type":       true,
	"is_primary": true,
	"active":     true,
}

// TransactionSortFields contains allowed sort fields for the inventory ledger
var TransactionSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"type":         true,
	"product_id":   true,
	"product_sku":  true,
	"product_name": true,
	"quantity":     true,
	"source":       true,
	"reference":    true,
}

// MappingSortFields contains allowed sort fields for product mappings
var MappingSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"local_sku":        true,
	"local_product_id": true,
	"match_type":       true,
	"confidence":       true,
	"matched_at":       true,
}

// SyncLogSortFields contains allowed sort fields for sync logs
var SyncLogSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"platform":   true,
	"status":     true,
	"started_at": true,
}

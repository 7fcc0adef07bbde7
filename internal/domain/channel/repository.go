package channel

import (
	"context"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
)

// MappingRepository defines the interface for product mapping persistence
type MappingRepository interface {
	// FindByID finds a mapping by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductMapping, error)

	// FindByLocalProduct finds the mapping for a local product
	FindByLocalProduct(ctx context.Context, localProductID uuid.UUID) (*ProductMapping, error)

	// FindByPlatformIdentifier finds the mapping carrying the given
	// platform-side identifier (variant ID, variation ID or ASIN)
	FindByPlatformIdentifier(ctx context.Context, platform Platform, identifier string) (*ProductMapping, error)

	// FindAll finds all mappings matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductMapping, error)

	// Save creates or updates a mapping
	Save(ctx context.Context, mapping *ProductMapping) error

	// Delete deletes a mapping
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts mappings matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SyncLogRepository defines the interface for sync log persistence
type SyncLogRepository interface {
	// FindByID finds a sync log by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SyncLog, error)

	// FindAll finds sync logs matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]SyncLog, error)

	// FindByPlatform finds sync logs for one platform, newest first
	FindByPlatform(ctx context.Context, platform Platform, filter shared.Filter) ([]SyncLog, error)

	// Save creates or updates a sync log
	Save(ctx context.Context, log *SyncLog) error
}

// PlatformFetcher retrieves product listings from an external platform
type PlatformFetcher interface {
	// Platform identifies the channel this fetcher talks to
	Platform() Platform

	// FetchProducts lists the products and inventory counts the
	// platform currently reports
	FetchProducts(ctx context.Context) ([]PlatformProduct, error)
}

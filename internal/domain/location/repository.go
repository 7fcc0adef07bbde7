package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
)

// Repository defines the interface for location persistence
type Repository interface {
	// FindByID finds a location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindAll finds all locations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Location, error)

	// FindByType finds locations by type
	FindByType(ctx context.Context, locationType LocationType, filter shared.Filter) ([]Location, error)

	// FindActive finds all active locations
	FindActive(ctx context.Context, filter shared.Filter) ([]Location, error)

	// FindPrimary finds the active primary location
	FindPrimary(ctx context.Context) (*Location, error)

	// FindByIDs finds multiple locations by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Location, error)

	// Save creates or updates a location
	Save(ctx context.Context, loc *Location) error

	// Delete deletes a location
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts locations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ClearPrimary clears the primary flag for all locations
	ClearPrimary(ctx context.Context) error
}

package location

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/catalog"
	"github.com/omnistock/backend/internal/domain/location"
	"github.com/omnistock/backend/internal/domain/shared"
)

// LocationService manages the location registry
type LocationService struct {
	locationRepo   location.Repository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo location.Repository, productRepo catalog.ProductRepository) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		productRepo:  productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LocationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LocationService) publishDomainEvents(ctx context.Context, loc *location.Location) {
	if s.eventPublisher == nil {
		return
	}
	events := loc.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	loc.ClearDomainEvents()
}

// Create registers a new location. When the request marks it primary the
// flag is cleared from every other location first, so at most one location
// is primary at any time.
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	loc, err := location.NewLocation(req.Name, location.LocationType(req.Type))
	if err != nil {
		return nil, err
	}
	loc.Description = req.Description
	loc.Address = req.Address

	if req.IsPrimary != nil && *req.IsPrimary {
		if err := s.locationRepo.ClearPrimary(ctx); err != nil {
			return nil, err
		}
		loc.SetPrimary(true)
	}

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, loc)

	response := ToLocationResponse(loc)
	return &response, nil
}

// GetByID retrieves a location by ID
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.findLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLocationResponse(loc)
	return &response, nil
}

// GetPrimary retrieves the primary sales location
func (s *LocationService) GetPrimary(ctx context.Context) (*LocationResponse, error) {
	loc, err := s.locationRepo.FindPrimary(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrLocationNotFound
		}
		return nil, err
	}
	response := ToLocationResponse(loc)
	return &response, nil
}

// List retrieves locations with filtering and pagination
func (s *LocationService) List(ctx context.Context, filter LocationListFilter) ([]LocationResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		locs []location.Location
		err  error
	)
	switch {
	case filter.Type != "":
		locType := location.LocationType(filter.Type)
		if !locType.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_TYPE", "Invalid location type")
		}
		locs, err = s.locationRepo.FindByType(ctx, locType, domainFilter)
	case filter.ActiveOnly:
		locs, err = s.locationRepo.FindActive(ctx, domainFilter)
	default:
		locs, err = s.locationRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.locationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLocationResponses(locs), total, nil
}

// Update modifies a location. Promoting a location to primary demotes the
// current primary; demoting the primary leaves the registry without one.
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	loc, err := s.findLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := loc.Update(req.Name, location.LocationType(req.Type), req.Description, req.Address); err != nil {
		return nil, err
	}

	if req.Active != nil && *req.Active != loc.Active {
		if *req.Active {
			err = loc.Activate()
		} else {
			err = loc.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if req.IsPrimary != nil && *req.IsPrimary != loc.IsPrimary {
		if *req.IsPrimary {
			if err := s.locationRepo.ClearPrimary(ctx); err != nil {
				return nil, err
			}
		}
		loc.SetPrimary(*req.IsPrimary)
	}

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, loc)

	response := ToLocationResponse(loc)
	return &response, nil
}

// SetPrimary promotes a location to primary, demoting the current one
func (s *LocationService) SetPrimary(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.findLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.locationRepo.ClearPrimary(ctx); err != nil {
		return nil, err
	}
	loc.SetPrimary(true)

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, loc)

	response := ToLocationResponse(loc)
	return &response, nil
}

// Delete removes a location. A location referenced by any product's stock
// map cannot be deleted, even when the quantity there is zero.
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	loc, err := s.findLocation(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountWithStockAt(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrLocationInUse
	}

	if err := s.locationRepo.Delete(ctx, loc.ID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, location.NewLocationDeletedEvent(loc))
	}
	return nil
}

// SeedDefaults populates an empty registry with the standard set of
// locations. It does nothing when any location already exists.
func (s *LocationService) SeedDefaults(ctx context.Context) error {
	count, err := s.locationRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name    string
		locType location.LocationType
		primary bool
	}{
		{"Warehouse", location.LocationTypeWarehouse, true},
		{"Pike Place", location.LocationTypeRetail, false},
		{"Amazon FBA", location.LocationTypeFulfillment, false},
		{"Other", location.LocationTypeOther, false},
	}

	for _, d := range defaults {
		loc, err := location.NewLocation(d.name, d.locType)
		if err != nil {
			return err
		}
		if d.primary {
			loc.SetPrimary(true)
		}
		if err := s.locationRepo.Save(ctx, loc); err != nil {
			return err
		}
		loc.ClearDomainEvents()
	}
	return nil
}

// findLocation loads a location, translating NotFound into the domain code
func (s *LocationService) findLocation(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrLocationNotFound
		}
		return nil, err
	}
	return loc, nil
}

package location

import (
	"time"

	"github.com/omnistock/backend/internal/domain/shared"
)

// LocationType represents the kind of stock location
type LocationType string

const (
	LocationTypeWarehouse   LocationType = "warehouse"   // Storage warehouse
	LocationTypeRetail      LocationType = "retail"      // Physical retail store
	LocationTypeFulfillment LocationType = "fulfillment" // Third-party fulfillment (e.g. FBA)
	LocationTypeOther       LocationType = "other"
)

// IsValid returns true if the location type is a known value
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeRetail, LocationTypeFulfillment, LocationTypeOther:
		return true
	}
	return false
}

// String returns the string representation
func (t LocationType) String() string {
	return string(t)
}

// Location represents a physical or logical place where stock is held.
// It is the aggregate root for the location registry.
type Location struct {
	shared.BaseAggregateRoot
	Name        string       `gorm:"type:varchar(200);not null"`
	Type        LocationType `gorm:"type:varchar(20);not null;default:'other'"`
	Description string       `gorm:"type:text"`
	Address     string       `gorm:"type:text"`
	IsPrimary   bool         `gorm:"not null;default:false"`
	Active      bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new active location
func NewLocation(name string, locationType LocationType) (*Location, error) {
	if err := validateLocationName(name); err != nil {
		return nil, err
	}
	if err := validateLocationType(locationType); err != nil {
		return nil, err
	}

	loc := &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              locationType,
		Active:            true,
	}

	loc.AddDomainEvent(NewLocationCreatedEvent(loc))

	return loc, nil
}

// Update updates the location's basic information
func (l *Location) Update(name string, locationType LocationType, description, address string) error {
	if err := validateLocationName(name); err != nil {
		return err
	}
	if err := validateLocationType(locationType); err != nil {
		return err
	}
	if len(description) > 1000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 1000 characters")
	}

	l.Name = name
	l.Type = locationType
	l.Description = description
	l.Address = address
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLocationUpdatedEvent(l))

	return nil
}

// SetPrimary marks or unmarks this location as the primary sales location.
// The registry enforces that at most one location is primary; clearing the
// flag from the rest happens at the service layer.
func (l *Location) SetPrimary(isPrimary bool) {
	l.IsPrimary = isPrimary
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	if isPrimary {
		l.AddDomainEvent(NewLocationSetPrimaryEvent(l))
	}
}

// Activate enables the location
func (l *Location) Activate() error {
	if l.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Location is already active")
	}

	l.Active = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Deactivate disables the location. The primary location cannot be
// deactivated, it has to be demoted first.
func (l *Location) Deactivate() error {
	if !l.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Location is already inactive")
	}
	if l.IsPrimary {
		return shared.NewDomainError("CANNOT_DEACTIVATE_PRIMARY", "Cannot deactivate the primary location")
	}

	l.Active = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// IsActive returns true if the location is active
func (l *Location) IsActive() bool {
	return l.Active
}

// Validation functions

func validateLocationName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot exceed 200 characters")
	}
	return nil
}

func validateLocationType(t LocationType) error {
	switch t {
	case LocationTypeWarehouse, LocationTypeRetail, LocationTypeFulfillment, LocationTypeOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid location type")
	}
}

package location

import (
	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/shared"
)

// Aggregate type constant for Location
const AggregateTypeLocation = "Location"

// Event type constants for Location
const (
	EventTypeLocationCreated    = "LocationCreated"
	EventTypeLocationUpdated    = "LocationUpdated"
	EventTypeLocationSetPrimary = "LocationSetPrimary"
	EventTypeLocationDeleted    = "LocationDeleted"
)

// LocationCreatedEvent is published when a new location is created
type LocationCreatedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID    `json:"location_id"`
	Name       string       `json:"name"`
	Type       LocationType `json:"type"`
}

// NewLocationCreatedEvent creates a new LocationCreatedEvent
func NewLocationCreatedEvent(loc *Location) *LocationCreatedEvent {
	return &LocationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationCreated, AggregateTypeLocation, loc.ID),
		LocationID:      loc.ID,
		Name:            loc.Name,
		Type:            loc.Type,
	}
}

// LocationUpdatedEvent is published when a location is updated
type LocationUpdatedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID    `json:"location_id"`
	Name       string       `json:"name"`
	Type       LocationType `json:"type"`
}

// NewLocationUpdatedEvent creates a new LocationUpdatedEvent
func NewLocationUpdatedEvent(loc *Location) *LocationUpdatedEvent {
	return &LocationUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationUpdated, AggregateTypeLocation, loc.ID),
		LocationID:      loc.ID,
		Name:            loc.Name,
		Type:            loc.Type,
	}
}

// LocationSetPrimaryEvent is published when a location becomes the primary
type LocationSetPrimaryEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Name       string    `json:"name"`
}

// NewLocationSetPrimaryEvent creates a new LocationSetPrimaryEvent
func NewLocationSetPrimaryEvent(loc *Location) *LocationSetPrimaryEvent {
	return &LocationSetPrimaryEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationSetPrimary, AggregateTypeLocation, loc.ID),
		LocationID:      loc.ID,
		Name:            loc.Name,
	}
}

// LocationDeletedEvent is published when a location is removed
type LocationDeletedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Name       string    `json:"name"`
}

// NewLocationDeletedEvent creates a new LocationDeletedEvent
func NewLocationDeletedEvent(loc *Location) *LocationDeletedEvent {
	return &LocationDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLocationDeleted, AggregateTypeLocation, loc.ID),
		LocationID:      loc.ID,
		Name:            loc.Name,
	}
}

package location

import (
	"time"

	"github.com/google/uuid"
	"github.com/omnistock/backend/internal/domain/location"
)

// CreateLocationRequest represents a request to register a location
type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Type        string `json:"type" binding:"required,oneof=warehouse retail fulfillment other"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Address     string `json:"address"`
	IsPrimary   *bool  `json:"is_primary"`
}

// UpdateLocationRequest represents a request to update a location
type UpdateLocationRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Type        string `json:"type" binding:"required,oneof=warehouse retail fulfillment other"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Address     string `json:"address"`
	IsPrimary   *bool  `json:"is_primary"`
	Active      *bool  `json:"active"`
}

// LocationListFilter represents filter options for listing locations
type LocationListFilter struct {
	Type       string `form:"type" binding:"omitempty,oneof=warehouse retail fulfillment other"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	IsPrimary   bool      `json:"is_primary"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToLocationResponse maps a location to its API representation
func ToLocationResponse(loc *location.Location) LocationResponse {
	return LocationResponse{
		ID:          loc.ID,
		Name:        loc.Name,
		Type:        string(loc.Type),
		Description: loc.Description,
		Address:     loc.Address,
		IsPrimary:   loc.IsPrimary,
		Active:      loc.Active,
		CreatedAt:   loc.CreatedAt,
		UpdatedAt:   loc.UpdatedAt,
	}
}

// ToLocationResponses maps a slice of locations
func ToLocationResponses(locs []location.Location) []LocationResponse {
	responses := make([]LocationResponse, len(locs))
	for i := range locs {
		responses[i] = ToLocationResponse(&locs[i])
	}
	return responses
}

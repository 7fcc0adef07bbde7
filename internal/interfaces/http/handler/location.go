package handler

import (
	locationapp "github.com/omnistock/backend/internal/application/location"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LocationHandler handles location-related API endpoints
type LocationHandler struct {
	BaseHandler
	locationService *locationapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *locationapp.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// Create godoc
// @Summary      Register a location
// @Description  Register a new stock location (warehouse, retail, fulfillment or other)
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body locationapp.CreateLocationRequest true "Location creation request"
// @Success      201 {object} dto.Response{data=locationapp.LocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req locationapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	loc, err := h.locationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, loc)
}

// GetByID godoc
// @Summary      Get location by ID
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} dto.Response{data=locationapp.LocationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations/{id} [get]
func (h *LocationHandler) GetByID(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	loc, err := h.locationService.GetByID(c.Request.Context(), locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loc)
}

// GetPrimary godoc
// @Summary      Get the primary location
// @Description  Returns the active location marked as primary
// @Tags         locations
// @Produce      json
// @Success      200 {object} dto.Response{data=locationapp.LocationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations/primary [get]
func (h *LocationHandler) GetPrimary(c *gin.Context) {
	loc, err := h.locationService.GetPrimary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loc)
}

// List godoc
// @Summary      List locations
// @Tags         locations
// @Produce      json
// @Param        type query string false "Filter by type" Enums(warehouse, retail, fulfillment, other)
// @Param        active_only query bool false "Only active locations"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]locationapp.LocationResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	var filter locationapp.LocationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	locations, total, err := h.locationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, locations, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Param        request body locationapp.UpdateLocationRequest true "Location update request"
// @Success      200 {object} dto.Response{data=locationapp.LocationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	var req locationapp.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	loc, err := h.locationService.Update(c.Request.Context(), locationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loc)
}

// SetPrimary godoc
// @Summary      Mark a location as primary
// @Description  Makes this location the default for webhook deductions; clears the previous primary
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      200 {object} dto.Response{data=locationapp.LocationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations/{id}/primary [put]
func (h *LocationHandler) SetPrimary(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	loc, err := h.locationService.SetPrimary(c.Request.Context(), locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, loc)
}

// Delete godoc
// @Summary      Delete a location
// @Description  Remove a location; fails while any product still holds stock there
// @Tags         locations
// @Produce      json
// @Param        id path string true "Location ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), locationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

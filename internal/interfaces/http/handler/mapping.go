package handler

import (
	channelapp "github.com/omnistock/backend/internal/application/channel"
	"github.com/omnistock/backend/internal/domain/channel"
	"github.com/omnistock/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MappingHandler handles product mapping API endpoints
type MappingHandler struct {
	BaseHandler
	mappingService *channelapp.MappingService
}

// NewMappingHandler creates a new MappingHandler
func NewMappingHandler(mappingService *channelapp.MappingService) *MappingHandler {
	return &MappingHandler{
		mappingService: mappingService,
	}
}

// Create godoc
// @Summary      Create a product mapping
// @Description  Link a local product to its identifiers on external platforms
// @Tags         mappings
// @Accept       json
// @Produce      json
// @Param        request body channelapp.CreateMappingRequest true "Mapping creation request"
// @Success      201 {object} dto.Response{data=channelapp.MappingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mappings [post]
func (h *MappingHandler) Create(c *gin.Context) {
	var req channelapp.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mapping, err := h.mappingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, mapping)
}

// GetByID godoc
// @Summary      Get mapping by ID
// @Tags         mappings
// @Produce      json
// @Param        id path string true "Mapping ID" format(uuid)
// @Success      200 {object} dto.Response{data=channelapp.MappingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mappings/{id} [get]
func (h *MappingHandler) GetByID(c *gin.Context) {
	mappingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid mapping ID format")
		return
	}

	mapping, err := h.mappingService.GetByID(c.Request.Context(), mappingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mapping)
}

// GetByProduct godoc
// @Summary      Get the mapping of a local product
// @Tags         mappings
// @Produce      json
// @Param        id path string true "Local product ID" format(uuid)
// @Success      200 {object} dto.Response{data=channelapp.MappingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mappings/product/{id} [get]
func (h *MappingHandler) GetByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	mapping, err := h.mappingService.GetByLocalProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mapping)
}

// List godoc
// @Summary      List product mappings
// @Tags         mappings
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]channelapp.MappingResponse,meta=dto.Meta}
// @Router       /mappings [get]
func (h *MappingHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	mappings, total, err := h.mappingService.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, mappings, total, req.Page, req.PageSize)
}

// Update godoc
// @Summary      Update a product mapping
// @Description  Change platform identifiers; omitted fields are left untouched
// @Tags         mappings
// @Accept       json
// @Produce      json
// @Param        id path string true "Mapping ID" format(uuid)
// @Param        request body channelapp.UpdateMappingRequest true "Mapping update request"
// @Success      200 {object} dto.Response{data=channelapp.MappingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mappings/{id} [put]
func (h *MappingHandler) Update(c *gin.Context) {
	mappingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid mapping ID format")
		return
	}

	var req channelapp.UpdateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mapping, err := h.mappingService.Update(c.Request.Context(), mappingID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mapping)
}

// Delete godoc
// @Summary      Delete a product mapping
// @Tags         mappings
// @Produce      json
// @Param        id path string true "Mapping ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mappings/{id} [delete]
func (h *MappingHandler) Delete(c *gin.Context) {
	mappingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid mapping ID format")
		return
	}

	if err := h.mappingService.Delete(c.Request.Context(), mappingID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Resolve godoc
// @Summary      Resolve a platform identifier
// @Description  Find which local product a platform identifier maps to
// @Tags         mappings
// @Produce      json
// @Param        platform path string true "Platform" Enums(shopify, square, amazon)
// @Param        identifier query string true "Platform identifier"
// @Success      200 {object} dto.Response{data=channelapp.MappingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /mappings/resolve/{platform} [get]
func (h *MappingHandler) Resolve(c *gin.Context) {
	platform := channel.Platform(c.Param("platform"))
	if !platform.IsValid() {
		h.BadRequest(c, "Unknown platform")
		return
	}

	identifier := c.Query("identifier")
	if identifier == "" {
		h.BadRequest(c, "identifier query parameter is required")
		return
	}

	mapping, err := h.mappingService.Resolve(c.Request.Context(), platform, identifier)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, mapping)
}

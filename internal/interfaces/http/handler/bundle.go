package handler

import (
	bundleapp "github.com/omnistock/backend/internal/application/bundle"
	"github.com/omnistock/backend/internal/domain/shared"
	"github.com/omnistock/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BundleHandler handles bundle-related API endpoints
type BundleHandler struct {
	BaseHandler
	bundleService *bundleapp.BundleService
}

// NewBundleHandler creates a new BundleHandler
func NewBundleHandler(bundleService *bundleapp.BundleService) *BundleHandler {
	return &BundleHandler{
		bundleService: bundleService,
	}
}

// Define godoc
// @Summary      Define a bundle
// @Description  Turn an existing product into a bundle composed of other products
// @Tags         bundles
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body bundleapp.DefineBundleRequest true "Bundle definition"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /bundles/{id} [put]
func (h *BundleHandler) Define(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req bundleapp.DefineBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.bundleService.Define(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Clear godoc
// @Summary      Clear a bundle definition
// @Description  Revert a bundle back to a plain product
// @Tags         bundles
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /bundles/{id} [delete]
func (h *BundleHandler) Clear(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.bundleService.Clear(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List godoc
// @Summary      List bundles
// @Tags         bundles
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Router       /bundles [get]
func (h *BundleHandler) List(c *gin.Context) {
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

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	}

	bundles, err := h.bundleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bundles)
}

// ProcessSale godoc
// @Summary      Process a bundle sale
// @Description  Deduct the component quantities of a bundle sale; reports partial failures per component
// @Tags         bundles
// @Accept       json
// @Produce      json
// @Param        id path string true "Bundle product ID" format(uuid)
// @Param        request body bundleapp.BundleSaleRequest true "Bundle sale request"
// @Success      200 {object} dto.Response{data=bundleapp.BundleSaleResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /bundles/{id}/sale [post]
func (h *BundleHandler) ProcessSale(c *gin.Context) {
	bundleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bundle ID format")
		return
	}

	var req bundleapp.BundleSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bundleService.ProcessSale(c.Request.Context(), bundleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// InventoryStatus godoc
// @Summary      Get bundle availability
// @Description  Reports how many complete bundles current component stock can fulfil
// @Tags         bundles
// @Produce      json
// @Param        id path string true "Bundle product ID" format(uuid)
// @Param        location_id query string false "Restrict to one location" format(uuid)
// @Success      200 {object} dto.Response{data=bundleapp.BundleInventoryStatus}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /bundles/{id}/inventory [get]
func (h *BundleHandler) InventoryStatus(c *gin.Context) {
	bundleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bundle ID format")
		return
	}

	var locationID *uuid.UUID
	if v := c.Query("location_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid location ID format")
			return
		}
		locationID = &id
	}

	status, err := h.bundleService.InventoryStatus(c.Request.Context(), bundleID, locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

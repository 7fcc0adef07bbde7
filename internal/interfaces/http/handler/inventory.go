package handler

import (
	"time"

	inventoryapp "github.com/omnistock/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler handles stock mutation and ledger API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// Adjust godoc
// @Summary      Adjust stock level
// @Description  Set the absolute quantity of a product at a location and record the delta in the ledger
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.AdjustRequest true "Adjustment request"
// @Success      200 {object} dto.Response{data=inventoryapp.MutationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req inventoryapp.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.inventoryService.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Transfer godoc
// @Summary      Transfer stock between locations
// @Description  Move quantity from one location to another in a single atomic operation
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.TransferRequest true "Transfer request"
// @Success      200 {object} dto.Response{data=inventoryapp.MutationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *gin.Context) {
	var req inventoryapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.inventoryService.Transfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AddProduction godoc
// @Summary      Record produced stock
// @Description  Add produced quantity to a location and record it in the ledger
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.AddProductionRequest true "Production request"
// @Success      200 {object} dto.Response{data=inventoryapp.MutationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/production [post]
func (h *InventoryHandler) AddProduction(c *gin.Context) {
	var req inventoryapp.AddProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.inventoryService.AddProduction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordSale godoc
// @Summary      Record a sale
// @Description  Deduct sold quantity from a location and record it in the ledger
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.RecordSaleRequest true "Sale request"
// @Success      200 {object} dto.Response{data=inventoryapp.MutationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /inventory/sale [post]
func (h *InventoryHandler) RecordSale(c *gin.Context) {
	var req inventoryapp.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.inventoryService.RecordSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetStatus godoc
// @Summary      Get product inventory status
// @Description  Per-location quantities and low stock state for one product
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.ProductInventoryStatus}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id}/inventory [get]
func (h *InventoryHandler) GetStatus(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	status, err := h.inventoryService.GetProductInventoryStatus(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

// ListTransactions godoc
// @Summary      List inventory transactions
// @Description  Query the append-only stock ledger with filters and pagination
// @Tags         transactions
// @Produce      json
// @Param        product_id query string false "Filter by product" format(uuid)
// @Param        location_id query string false "Filter by location (either side)" format(uuid)
// @Param        type query string false "Filter by type" Enums(sale, production, adjustment, transfer)
// @Param        source query string false "Filter by source" Enums(shopify, square, amazon, manual, webhook)
// @Param        reference query string false "Filter by external reference"
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]inventoryapp.TransactionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /transactions [get]
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var filter inventoryapp.TransactionListFilter
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

	transactions, total, err := h.inventoryService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, transactions, total, filter.Page, filter.PageSize)
}

// GetStats godoc
// @Summary      Get transaction statistics
// @Description  Aggregate ledger volumes by transaction type over an optional date range
// @Tags         transactions
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=inventory.TransactionStats}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /transactions/stats [get]
func (h *InventoryHandler) GetStats(c *gin.Context) {
	var start, end *time.Time
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.BadRequest(c, "Invalid start_date format, expected YYYY-MM-DD")
			return
		}
		start = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.BadRequest(c, "Invalid end_date format, expected YYYY-MM-DD")
			return
		}
		end = &t
	}

	stats, err := h.inventoryService.GetTransactionStats(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

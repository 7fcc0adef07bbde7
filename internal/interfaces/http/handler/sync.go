package handler

import (
	channelapp "github.com/omnistock/backend/internal/application/channel"
	"github.com/omnistock/backend/internal/domain/channel"
	"github.com/omnistock/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SyncHandler handles inventory sync API endpoints
type SyncHandler struct {
	BaseHandler
	syncService *channelapp.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *channelapp.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// DetectDiscrepancies godoc
// @Summary      Run a discrepancy check
// @Description  Compare local stock against the platform's reported levels for all mapped products
// @Tags         sync
// @Produce      json
// @Param        platform query string true "Platform" Enums(shopify, square, amazon)
// @Success      200 {object} dto.Response{data=channelapp.DiscrepancyReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sync/discrepancies [post]
func (h *SyncHandler) DetectDiscrepancies(c *gin.Context) {
	platform := channel.Platform(c.Query("platform"))
	if !platform.IsValid() {
		h.BadRequest(c, "Unknown platform")
		return
	}

	report, err := h.syncService.DetectDiscrepancies(c.Request.Context(), platform)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// ListLogs godoc
// @Summary      List sync run logs
// @Description  Recent sync runs, newest first, optionally filtered by platform
// @Tags         sync
// @Produce      json
// @Param        platform query string false "Filter by platform" Enums(shopify, square, amazon)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]channel.SyncLog}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sync/logs [get]
func (h *SyncHandler) ListLogs(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var platform *channel.Platform
	if v := c.Query("platform"); v != "" {
		p := channel.Platform(v)
		if !p.IsValid() {
			h.BadRequest(c, "Unknown platform")
			return
		}
		platform = &p
	}

	logs, err := h.syncService.ListSyncLogs(c.Request.Context(), platform, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}

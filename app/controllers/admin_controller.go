package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/center-locator/app/requests"
	"github.com/center-locator/app/responses"
	"github.com/center-locator/app/services"
)

// AdminController controller cho các thao tác vận hành
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// GetStats lấy thống kê hệ thống
func (ac *AdminController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, ac.adminService.GetSystemStats(c.Request.Context()))
}

// ReloadCatalog nạp lại catalog từ nguồn
func (ac *AdminController) ReloadCatalog(c *gin.Context) {
	startTime := time.Now()

	report, err := ac.adminService.ReloadCatalog(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		code := "RELOAD_ERROR"
		if errors.Is(err, services.ErrEmptyCatalog) {
			status = http.StatusUnprocessableEntity
			code = "EMPTY_CATALOG"
		}
		c.JSON(status, responses.ErrorResponse{
			Error:   code,
			Message: "Catalog reload failed, previous catalog kept: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ReloadResponse{
		Report:           report,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// InvalidateCache xoá toàn bộ cache câu trả lời
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	startTime := time.Now()

	if err := ac.adminService.InvalidateCache(c.Request.Context()); err != nil {
		ac.logger.Error("Cache invalidation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "INVALIDATE_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Answer cache invalidated",
		Data: map[string]interface{}{
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		},
	})
}

// PublishCatalog đẩy catalog hiện tại sang Meilisearch
func (ac *AdminController) PublishCatalog(c *gin.Context) {
	startTime := time.Now()

	report, err := ac.adminService.PublishCatalog(c.Request.Context())
	if err != nil {
		ac.writeMirrorError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.PublishResponse{
		Report:           report,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// SearchCatalog tra cứu catalog qua Meilisearch
func (ac *AdminController) SearchCatalog(c *gin.Context) {
	var req requests.CatalogSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Invalid request: " + err.Error(),
		})
		return
	}

	docs, total, err := ac.adminService.SearchCatalog(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		ac.writeMirrorError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.CatalogSearchResponse{
		Query:     req.Query,
		Total:     total,
		Documents: docs,
	})
}

func (ac *AdminController) writeMirrorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMirrorDisabled):
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "MIRROR_DISABLED",
			Message: "Meilisearch is not configured",
		})
	case errors.Is(err, services.ErrEmptyCatalog):
		c.JSON(http.StatusConflict, responses.ErrorResponse{
			Error:   "EMPTY_CATALOG",
			Message: "No catalog loaded",
		})
	default:
		ac.logger.Error("Meilisearch request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:   "MIRROR_ERROR",
			Message: err.Error(),
		})
	}
}

package fulfillment

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/storefront-next/internal/cache"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdjustInventoryRequest 库存调整请求
type AdjustInventoryRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Action string `json:"action" binding:"required"`
	Actor  string `json:"actor"`
}

// AdjustInventory 调整商品库存并记录流水
func (h *Handler) AdjustInventory(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	entry, err := h.InventoryService.Adjust(service.AdjustInput{
		ProductID: uint(productID),
		Delta:     req.Delta,
		Action:    req.Action,
		Actor:     req.Actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		case errors.Is(err, service.ErrInvalidAdjustment):
			respondError(c, response.CodeBadRequest, "error.adjustment_invalid", nil)
		case errors.Is(err, service.ErrInsufficientStock):
			respondError(c, response.CodeBadRequest, "error.insufficient_stock", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	// 库存变化后让商品详情缓存失效
	_ = cache.Del(c.Request.Context(), fmt.Sprintf("product:%d", productID))

	response.Success(c, entry)
}

// GetInventoryLogs 查询商品库存流水
func (h *Handler) GetInventoryLogs(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	logs, total, err := h.InventoryService.ListLogs(uint(productID), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, logs, response.BuildPagination(page, pageSize, total))
}

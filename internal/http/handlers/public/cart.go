package public

import (
	"strconv"
	"strings"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 购物车行数量更新请求，0 表示移除该行
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车内容
func (h *Handler) GetCart(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}

	lines, err := h.CartService.ListByOwner(owner)
	if err != nil {
		respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	response.Success(c, gin.H{"items": lines})
}

// AddCartItem 加购商品并返回最新计价汇总
func (h *Handler) AddCartItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	err := h.CartService.AddItem(service.AddCartItemInput{
		Owner:     owner,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCartSummary(c, owner, "")
}

// UpdateCartItem 覆盖购物车行数量，数量为 0 时移除该行
func (h *Handler) UpdateCartItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.CartService.UpdateItemQuantity(owner, uint(productID), *req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCartSummary(c, owner, "")
}

// RemoveCartItem 移除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.CartService.RemoveItem(owner, uint(productID)); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCartSummary(c, owner, "")
}

// ClearCart 清空购物车，幂等
func (h *Handler) ClearCart(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(owner); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCartSummary(c, owner, "")
}

// GetCartSummary 获取购物车计价汇总，可通过 coupon 参数试算优惠
func (h *Handler) GetCartSummary(c *gin.Context) {
	owner, ok := getOwner(c)
	if !ok {
		return
	}
	couponCode := strings.TrimSpace(c.Query("coupon"))
	h.respondCartSummary(c, owner, couponCode)
}

func (h *Handler) respondCartSummary(c *gin.Context, owner service.Owner, couponCode string) {
	summary, err := h.PricingService.Summarize(owner, couponCode)
	if err != nil {
		respondCartSummaryError(c, err)
		return
	}
	response.Success(c, summary)
}

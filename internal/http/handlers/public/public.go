package public

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/storefront-next/internal/cache"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductResponse 商品公开响应
type ProductResponse struct {
	ID            uint               `json:"id"`
	SKU           string             `json:"sku"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	PriceAmount   models.Money       `json:"price_amount"`
	StockQuantity int                `json:"stock_quantity"`
	Images        models.StringArray `json:"images"`
	Tags          models.StringArray `json:"tags"`
	IsActive      bool               `json:"is_active"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		PriceAmount:   p.PriceAmount,
		StockQuantity: p.StockQuantity,
		Images:        p.Images,
		Tags:          p.Tags,
		IsActive:      p.IsActive,
	}
}

// GetProducts 获取公开商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	search := c.Query("search")

	products, total, err := h.ProductService.ListPublic(search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	rows := make([]ProductResponse, 0, len(products))
	for i := range products {
		rows = append(rows, toProductResponse(&products[i]))
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
// 详情走短时缓存，库存准确性由结算环节保证。
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	cacheKey := fmt.Sprintf("product:%d", id)
	var cached ProductResponse
	if hit, cacheErr := cache.GetJSON(c.Request.Context(), cacheKey, &cached); cacheErr == nil && hit {
		response.Success(c, cached)
		return
	}

	product, err := h.ProductService.GetPublicByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	resp := toProductResponse(product)
	_ = cache.SetJSON(c.Request.Context(), cacheKey, resp, time.Minute)
	response.Success(c, resp)
}

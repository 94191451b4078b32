package fulfillment

import (
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	SKU           string   `json:"sku" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	PriceAmount   string   `json:"price_amount" binding:"required"`
	StockQuantity int      `json:"stock_quantity"`
	RestockLevel  int      `json:"restock_level"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	IsActive      *bool    `json:"is_active"`
	SortOrder     int      `json:"sort_order"`
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	price, err := decimal.NewFromString(req.PriceAmount)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product, err := h.ProductService.Create(service.CreateProductInput{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		PriceAmount:   price,
		StockQuantity: req.StockQuantity,
		RestockLevel:  req.RestockLevel,
		Images:        req.Images,
		Tags:          req.Tags,
		IsActive:      req.IsActive,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductSKUExists):
			respondError(c, response.CodeBadRequest, "error.product_sku_exists", nil)
		case errors.Is(err, service.ErrProductPriceInvalid):
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, product)
}

package service

import (
	"strings"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	SKU           string
	Name          string
	Description   string
	PriceAmount   decimal.Decimal
	StockQuantity int
	RestockLevel  int
	Images        []string
	Tags          []string
	IsActive      *bool
	SortOrder     int
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     search,
		OnlyActive: true,
	}
	return s.repo.List(filter)
}

// GetPublicByID 获取公开商品详情
func (s *ProductService) GetPublicByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetBySKU 按编码获取商品详情
func (s *ProductService) GetBySKU(sku string) (*models.Product, error) {
	trimmed := strings.TrimSpace(sku)
	if trimmed == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetBySKU(trimmed)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" || name == "" {
		return nil, ErrProductNotAvailable
	}
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	if input.StockQuantity < 0 || input.RestockLevel < 0 {
		return nil, ErrInvalidAdjustment
	}

	existing, err := s.repo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductSKUExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &models.Product{
		SKU:           sku,
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		PriceAmount:   models.NewMoneyFromDecimal(priceAmount),
		StockQuantity: input.StockQuantity,
		RestockLevel:  input.RestockLevel,
		Images:        input.Images,
		Tags:          input.Tags,
		IsActive:      isActive,
		SortOrder:     input.SortOrder,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

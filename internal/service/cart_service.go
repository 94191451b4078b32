package service

import (
	"time"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// CartLineDetail 购物车行详情（用于响应）
type CartLineDetail struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product,omitempty"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	Owner     Owner
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByOwner 获取归属者购物车行
func (s *CartService) ListByOwner(owner Owner) ([]CartLineDetail, error) {
	if !owner.Valid() {
		return nil, ErrNotCartOwner
	}
	owner = owner.normalized()
	cart, err := s.cartRepo.GetByOwner(owner.UserID, owner.SessionID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}
	if cart == nil {
		return []CartLineDetail{}, nil
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, ErrCartFetchFailed
	}
	details := make([]CartLineDetail, 0, len(items))
	for _, item := range items {
		details = append(details, CartLineDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.UnitPrice.MulInt(item.Quantity),
			Product:   item.Product,
		})
	}
	return details, nil
}

// AddItem 加购商品。
// 单价取当前目录价并在此刻定格为快照，已有同商品行时只累加数量。
// 库存在结算时统一校验，加购不校验库存。
func (s *CartService) AddItem(input AddCartItemInput) error {
	if !input.Owner.Valid() {
		return ErrNotCartOwner
	}
	if input.ProductID == 0 {
		return ErrProductNotFound
	}
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}

	owner := input.Owner.normalized()
	cart, err := s.cartRepo.GetOrCreate(owner.UserID, owner.SessionID)
	if err != nil {
		return ErrCartUpdateFailed
	}

	now := time.Now()
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		UnitPrice: product.PriceAmount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.UpsertItem(item); err != nil {
		return ErrCartUpdateFailed
	}
	return nil
}

// UpdateItemQuantity 覆盖购物车行数量。
// 数量为 0 等价于移除该行，负数视为非法。
func (s *CartService) UpdateItemQuantity(owner Owner, productID uint, quantity int) error {
	if !owner.Valid() {
		return ErrNotCartOwner
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(owner, productID)
	}
	owner = owner.normalized()
	cart, err := s.cartRepo.GetByOwner(owner.UserID, owner.SessionID)
	if err != nil {
		return ErrCartFetchFailed
	}
	if cart == nil {
		return ErrCartLineNotFound
	}
	affected, err := s.cartRepo.UpdateItemQuantity(cart.ID, productID, quantity)
	if err != nil {
		return ErrCartUpdateFailed
	}
	if affected == 0 {
		return ErrCartLineNotFound
	}
	return nil
}

// RemoveItem 删除购物车行，行不存在时视为已删除
func (s *CartService) RemoveItem(owner Owner, productID uint) error {
	if !owner.Valid() {
		return ErrNotCartOwner
	}
	owner = owner.normalized()
	cart, err := s.cartRepo.GetByOwner(owner.UserID, owner.SessionID)
	if err != nil {
		return ErrCartFetchFailed
	}
	if cart == nil {
		return nil
	}
	if _, err := s.cartRepo.DeleteItem(cart.ID, productID); err != nil {
		return ErrCartUpdateFailed
	}
	return nil
}

// Clear 清空购物车并删除车行本身，幂等
func (s *CartService) Clear(owner Owner) error {
	if !owner.Valid() {
		return ErrNotCartOwner
	}
	owner = owner.normalized()
	cart, err := s.cartRepo.GetByOwner(owner.UserID, owner.SessionID)
	if err != nil {
		return ErrCartFetchFailed
	}
	if cart == nil {
		return nil
	}
	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return ErrCartUpdateFailed
	}
	if err := s.cartRepo.Delete(cart.ID); err != nil {
		return ErrCartUpdateFailed
	}
	return nil
}

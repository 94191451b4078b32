package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo       repository.OrderRepository
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	couponRepo      repository.CouponRepository
	couponUsageRepo repository.CouponUsageRepository
	inventoryLogs   *repository.GormInventoryLogRepository
	inventory       *InventoryService
	rules           PricingRules
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, couponRepo repository.CouponRepository, couponUsageRepo repository.CouponUsageRepository, inventoryLogs *repository.GormInventoryLogRepository, inventory *InventoryService, rules PricingRules) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		couponRepo:      couponRepo,
		couponUsageRepo: couponUsageRepo,
		inventoryLogs:   inventoryLogs,
		inventory:       inventory,
		rules:           rules,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	Owner           Owner
	CouponCode      string
	PaymentMethod   string
	ShippingAddress models.JSON
	BillingAddress  models.JSON
}

var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusOutForDelivery: true,
	},
	constants.OrderStatusOutForDelivery: {
		constants.OrderStatusDelivered: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

// Checkout 将购物车结算为订单。
// 扣库存、核销优惠券、落订单、清空购物车在同一事务内完成，
// 任一环节失败整体回滚。库存校验只发生在这里，加购阶段不拦截。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if !input.Owner.Valid() {
		return nil, ErrNotCartOwner
	}
	owner := input.Owner.normalized()

	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = constants.PaymentMethodCard
	}

	now := time.Now()
	var created *models.Order
	var lowStock []stockChange

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		logRepo := s.inventoryLogs.WithTx(tx)

		cart, err := cartRepo.GetByOwner(owner.UserID, owner.SessionID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartEmpty
		}
		items, err := cartRepo.ListItems(cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		subtotal := models.ZeroMoney()
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotAvailable
			}
			if product.StockQuantity < item.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.SKU)
			}

			change, err := applyStockChange(productRepo, logRepo, item.ProductID, -item.Quantity, owner.ActorLabel(), constants.InventoryActionSold)
			if err != nil {
				return err
			}
			if change.belowRestockLevel() {
				lowStock = append(lowStock, *change)
			}

			lineTotal := item.UnitPrice.MulInt(item.Quantity)
			subtotal = subtotal.AddMoney(lineTotal)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				SKU:         product.SKU,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
				TotalPrice:  lineTotal,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}

		discount := models.ZeroMoney()
		var appliedCoupon *models.Coupon
		if code := strings.TrimSpace(input.CouponCode); code != "" {
			couponService := NewCouponService(s.couponRepo.WithTx(tx), s.couponUsageRepo.WithTx(tx))
			d, coupon, err := couponService.Validate(code, subtotal)
			if err != nil {
				return err
			}
			discount = d
			appliedCoupon = coupon
		}

		shipping, tax, grandTotal := computeCharges(s.rules, subtotal, discount)

		order := &models.Order{
			OrderNo:             generateOrderNo(),
			UserID:              owner.UserID,
			SessionID:           owner.SessionID,
			Status:              constants.OrderStatusPending,
			Subtotal:            subtotal,
			DiscountAmount:      discount,
			ShippingFee:         shipping,
			TaxAmount:           tax,
			GrandTotal:          grandTotal,
			PaymentMethod:       paymentMethod,
			PaymentStatus:       constants.PaymentStatusPending,
			ShippingAddressJSON: normalizeAddress(input.ShippingAddress),
			BillingAddressJSON:  normalizeAddress(input.BillingAddress),
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if appliedCoupon != nil {
			order.CouponID = &appliedCoupon.ID
			order.CouponCode = appliedCoupon.Code
		}

		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}

		if appliedCoupon != nil {
			couponService := NewCouponService(s.couponRepo.WithTx(tx), s.couponUsageRepo.WithTx(tx))
			usage := &models.CouponUsage{
				CouponID:       appliedCoupon.ID,
				UserID:         owner.UserID,
				SessionID:      owner.SessionID,
				OrderID:        order.ID,
				DiscountAmount: discount,
				CreatedAt:      now,
			}
			if err := couponService.Redeem(appliedCoupon, usage); err != nil {
				return err
			}
		}

		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}
		if err := cartRepo.Delete(cart.ID); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		if isCheckoutError(err) {
			return nil, err
		}
		logger.Errorw("order_checkout_failed",
			"user_id", owner.UserID,
			"session_id", owner.SessionID,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	if s.inventory != nil && len(lowStock) > 0 {
		s.inventory.notifyLowStock(lowStock)
	}

	full, err := s.orderRepo.GetByID(created.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return created, nil
}

// isCheckoutError 识别应原样返回的业务错误
func isCheckoutError(err error) bool {
	for _, known := range []error{
		ErrCartEmpty,
		ErrInsufficientStock,
		ErrProductNotFound,
		ErrProductNotAvailable,
		ErrCouponNotFound,
		ErrCouponInactive,
		ErrCouponNotStarted,
		ErrCouponExpired,
		ErrCouponMinAmount,
		ErrCouponUsageLimit,
		ErrCouponInvalid,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// UpdateOrderStatus 履约端推进订单状态。
// 目标为取消时走取消流程并回补库存与优惠券。
func (s *OrderService) UpdateOrderStatus(orderNo, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(strings.TrimSpace(orderNo))
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := strings.TrimSpace(targetStatus)
	if target == "" || order.Status == target {
		return nil, ErrOrderStatusInvalid
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	if target == constants.OrderStatusCancelled {
		if err := s.cancelOrder(order); err != nil {
			return nil, err
		}
		return order, nil
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	order.Status = target
	order.UpdatedAt = now
	return order, nil
}

// CancelOrder 归属者取消订单
func (s *OrderService) CancelOrder(owner Owner, orderNo string) (*models.Order, error) {
	if !owner.Valid() {
		return nil, ErrOrderNotFound
	}
	owner = owner.normalized()
	order, err := s.orderRepo.GetByOrderNoAndOwner(strings.TrimSpace(orderNo), owner.UserID, owner.SessionID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending && order.Status != constants.OrderStatusProcessing {
		return nil, ErrOrderCancelNotAllowed
	}
	if err := s.cancelOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// cancelOrder 取消订单：状态落取消、回补库存、回退优惠券使用
func (s *OrderService) cancelOrder(order *models.Order) error {
	if order == nil {
		return ErrOrderNotFound
	}
	now := time.Now()
	actor := Owner{UserID: order.UserID, SessionID: order.SessionID}.ActorLabel()
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		logRepo := s.inventoryLogs.WithTx(tx)

		updates := map[string]interface{}{
			"cancelled_at": now,
			"updated_at":   now,
		}
		if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates); err != nil {
			return ErrOrderUpdateFailed
		}

		for _, item := range order.Items {
			if item.Quantity <= 0 {
				continue
			}
			if _, err := applyStockChange(productRepo, logRepo, item.ProductID, item.Quantity, actor, constants.InventoryActionRestock); err != nil {
				return err
			}
		}

		if order.CouponID != nil {
			couponRepo := s.couponRepo.WithTx(tx)
			usageRepo := s.couponUsageRepo.WithTx(tx)
			usages, err := usageRepo.ListByOrderID(order.ID)
			if err != nil {
				return err
			}
			if len(usages) > 0 {
				if err := usageRepo.DeleteByOrderID(order.ID); err != nil {
					return err
				}
				counts := make(map[uint]int)
				for _, usage := range usages {
					counts[usage.CouponID]++
				}
				for couponID, count := range counts {
					if err := couponRepo.DecrementUsedCount(couponID, count); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Status = constants.OrderStatusCancelled
	order.CancelledAt = &now
	order.UpdatedAt = now
	return nil
}

// GetOrderByOwner 获取归属者订单详情
func (s *OrderService) GetOrderByOwner(owner Owner, orderNo string) (*models.Order, error) {
	if !owner.Valid() {
		return nil, ErrOrderNotFound
	}
	owner = owner.normalized()
	order, err := s.orderRepo.GetByOrderNoAndOwner(strings.TrimSpace(orderNo), owner.UserID, owner.SessionID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByOwner 获取归属者订单列表
func (s *OrderService) ListOrdersByOwner(owner Owner, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if !owner.Valid() {
		return nil, 0, ErrOrderFetchFailed
	}
	owner = owner.normalized()
	filter.UserID = owner.UserID
	filter.SessionID = owner.SessionID
	orders, total, err := s.orderRepo.ListByOwner(filter)
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

func normalizeAddress(addr models.JSON) models.JSON {
	if addr == nil {
		return models.JSON{}
	}
	return addr
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SF%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}

package service

import "errors"

// 服务层统一错误定义，处理器按 errors.Is 映射响应码。
var (
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartFetchFailed  = errors.New("failed to fetch cart")
	ErrCartUpdateFailed = errors.New("failed to update cart")
	ErrNotCartOwner     = errors.New("cart does not belong to requester")

	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrProductPriceInvalid = errors.New("product price invalid")
	ErrProductSKUExists    = errors.New("product sku already exists")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidAdjustment   = errors.New("invalid stock adjustment")

	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon inactive")
	ErrCouponNotStarted = errors.New("coupon not started")
	ErrCouponExpired    = errors.New("coupon expired")
	ErrCouponMinAmount  = errors.New("cart total below coupon minimum")
	ErrCouponUsageLimit = errors.New("coupon usage limit reached")
	ErrCouponInvalid    = errors.New("coupon invalid")

	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderFetchFailed      = errors.New("failed to fetch order")
	ErrOrderUpdateFailed     = errors.New("failed to update order")
	ErrOrderStatusInvalid    = errors.New("order status transition not allowed")
	ErrOrderCancelNotAllowed = errors.New("order cannot be cancelled")
	ErrOrderCreateFailed     = errors.New("failed to create order, please retry")
)

package i18n

var catalog = map[string]map[string]string{
	"en-US": {
		"error.bad_request":              "invalid request parameters",
		"error.unauthorized":             "unauthorized",
		"error.forbidden":                "forbidden",
		"error.not_found":                "resource not found",
		"error.internal":                 "internal server error",
		"error.rate_limited":             "too many requests, retry after %d seconds",
		"error.rate_limit_unavailable":   "service busy, please try again later",
		"error.quantity_invalid":         "quantity must be a positive integer",
		"error.cart_line_not_found":      "cart item not found",
		"error.cart_empty":               "cart is empty",
		"error.cart_fetch_failed":        "failed to load cart",
		"error.cart_update_failed":       "failed to update cart",
		"error.product_not_found":        "product not found",
		"error.product_not_available":    "product is not available",
		"error.product_sku_exists":       "product sku already exists",
		"error.insufficient_stock":       "insufficient stock",
		"error.adjustment_invalid":       "invalid stock adjustment",
		"error.coupon_not_found":         "coupon not found",
		"error.coupon_inactive":          "coupon is inactive",
		"error.coupon_not_started":       "coupon is not active yet",
		"error.coupon_expired":           "coupon has expired",
		"error.coupon_min_amount":        "cart total does not meet the coupon minimum",
		"error.coupon_usage_limit":       "coupon usage limit reached",
		"error.coupon_invalid":           "coupon cannot be applied",
		"error.order_not_found":          "order not found",
		"error.order_fetch_failed":       "failed to load order",
		"error.order_update_failed":      "failed to update order",
		"error.order_status_invalid":     "invalid order status transition",
		"error.order_cancel_not_allowed": "order can no longer be cancelled",
		"error.order_create_failed":      "failed to create order",
	},
	"zh-CN": {
		"error.bad_request":              "请求参数无效",
		"error.unauthorized":             "未登录或登录已过期",
		"error.forbidden":                "没有权限执行该操作",
		"error.not_found":                "资源不存在",
		"error.internal":                 "服务器内部错误",
		"error.rate_limited":             "请求过于频繁，请在 %d 秒后重试",
		"error.rate_limit_unavailable":   "服务繁忙，请稍后重试",
		"error.quantity_invalid":         "数量必须为正整数",
		"error.cart_line_not_found":      "购物车条目不存在",
		"error.cart_empty":               "购物车为空",
		"error.cart_fetch_failed":        "获取购物车失败",
		"error.cart_update_failed":       "更新购物车失败",
		"error.product_not_found":        "商品不存在",
		"error.product_not_available":    "商品已下架",
		"error.product_sku_exists":       "商品 SKU 已存在",
		"error.insufficient_stock":       "库存不足",
		"error.adjustment_invalid":       "库存调整参数无效",
		"error.coupon_not_found":         "优惠券不存在",
		"error.coupon_inactive":          "优惠券未启用",
		"error.coupon_not_started":       "优惠券尚未生效",
		"error.coupon_expired":           "优惠券已过期",
		"error.coupon_min_amount":        "未达到优惠券最低消费金额",
		"error.coupon_usage_limit":       "优惠券已达使用上限",
		"error.coupon_invalid":           "优惠券不可用",
		"error.order_not_found":          "订单不存在",
		"error.order_fetch_failed":       "获取订单失败",
		"error.order_update_failed":      "更新订单失败",
		"error.order_status_invalid":     "订单状态流转不合法",
		"error.order_cancel_not_allowed": "订单当前状态不可取消",
		"error.order_create_failed":      "创建订单失败",
	},
}

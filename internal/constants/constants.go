package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 支付方式常量（核心只记录所选方式，不对接网关）
const (
	PaymentMethodCard         = "card"
	PaymentMethodWallet       = "wallet"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCOD          = "cod"
)

// 优惠券类型常量
const (
	CouponTypePercent = "percentage"
	CouponTypeFixed   = "fixed"
)

// 库存流水动作常量
const (
	InventoryActionSold       = "sold"
	InventoryActionRestock    = "restock"
	InventoryActionAdjustment = "adjustment"
)

// 库存操作者常量
const (
	InventoryActorSystem = "system"
)

// 队列常量
const (
	QueueDefault = "default"

	TaskInventoryLowStock = "inventory:low_stock"
)

package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNo             string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // 订单编号
	UserID              uint           `gorm:"index;not null;default:0" json:"user_id,omitempty"`             // 用户ID（匿名订单为 0）
	SessionID           string         `gorm:"type:varchar(64);index;not null;default:''" json:"-"`           // 匿名会话ID
	Status              string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	Subtotal            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`         // 商品小计
	DiscountAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`  // 优惠金额
	ShippingFee         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`     // 运费
	TaxAmount           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`       // 税额
	GrandTotal          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"grand_total"`      // 应付总额
	CouponID            *uint          `gorm:"index" json:"coupon_id,omitempty"`                              // 优惠券ID
	CouponCode          string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`                 // 优惠码快照
	PaymentMethod       string         `gorm:"type:varchar(32);not null" json:"payment_method"`               // 支付方式
	PaymentStatus       string         `gorm:"type:varchar(32);index;not null" json:"payment_status"`         // 支付状态
	ShippingAddressJSON JSON           `gorm:"type:json;not null" json:"shipping_address"`                    // 收货地址快照
	BillingAddressJSON  JSON           `gorm:"type:json;not null" json:"billing_address"`                     // 账单地址快照
	CancelledAt         *time.Time     `gorm:"index" json:"cancelled_at,omitempty"`                           // 取消时间
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

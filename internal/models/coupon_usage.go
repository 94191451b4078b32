package models

import (
	"time"

	"gorm.io/gorm"
)

// CouponUsage 优惠券使用记录（随订单事务写入，取消订单时删除）
type CouponUsage struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	CouponID       uint           `gorm:"index;not null" json:"coupon_id"`                              // 优惠券ID
	UserID         uint           `gorm:"index;not null;default:0" json:"user_id"`                      // 用户ID（匿名下单为 0）
	SessionID      string         `gorm:"type:varchar(64);not null;default:''" json:"-"`                // 匿名会话ID
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                               // 订单ID
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (CouponUsage) TableName() string {
	return "coupon_usages"
}

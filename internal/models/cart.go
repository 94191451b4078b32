package models

import (
	"time"
)

// Cart 购物车（每个归属者至多一个活跃购物车）
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                        // 主键
	UserID    uint      `gorm:"not null;default:0;uniqueIndex:idx_carts_owner" json:"user_id"`              // 用户ID（匿名购物车为 0）
	SessionID string    `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_carts_owner" json:"-"`  // 匿名会话ID（登录用户为空）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                     // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                                  // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车项（同一商品至多一行）
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                          // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`          // 购物车ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`       // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                      // 数量
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`       // 加入购物车时的单价快照
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                    // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

package models

import "time"

// InventoryLog 库存流水表（只追加，不更新不删除）
type InventoryLog struct {
	ID            uint      `gorm:"primarykey" json:"id"`                           // 主键
	ProductID     uint      `gorm:"index;not null" json:"product_id"`               // 商品ID
	Actor         string    `gorm:"type:varchar(64);not null" json:"actor"`         // 操作者标识
	Action        string    `gorm:"type:varchar(20);not null" json:"action"`        // 动作: sold/restock/adjustment
	QuantityDelta int       `gorm:"not null" json:"quantity_delta"`                 // 数量变化（售出为负）
	PreviousStock int       `gorm:"not null" json:"previous_stock"`                 // 变更前库存
	NewStock      int       `gorm:"not null" json:"new_stock"`                      // 变更后库存
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (InventoryLog) TableName() string {
	return "inventory_logs"
}

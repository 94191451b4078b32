package queue

import (
	"encoding/json"

	"github.com/storefront-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskInventoryLowStock 低库存告警任务
	TaskInventoryLowStock = constants.TaskInventoryLowStock
)

// InventoryLowStockPayload 低库存告警任务载荷
type InventoryLowStockPayload struct {
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	SKU          string `json:"sku"`
	StockLeft    int    `json:"stock_left"`
	RestockLevel int    `json:"restock_level"`
}

// NewInventoryLowStockTask 创建低库存告警任务
func NewInventoryLowStockTask(payload InventoryLowStockPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInventoryLowStock, body), nil
}

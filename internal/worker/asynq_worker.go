package worker

import (
	"context"
	"encoding/json"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskInventoryLowStock, c.handleInventoryLowStock)
}

// handleInventoryLowStock 低库存告警。
// 校验载荷与当前库存后输出告警日志，库存已回补时跳过。
func (c *Consumer) handleInventoryLowStock(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_inventory_low_stock_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InventoryLowStockPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_inventory_low_stock_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_inventory_low_stock_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}

	product, err := c.ProductRepo.GetByID(payload.ProductID)
	if err != nil {
		logger.Warnw("worker_inventory_low_stock_fetch_product_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	if product == nil {
		logger.Debugw("worker_inventory_low_stock_skip_product_not_found", "product_id", payload.ProductID)
		return nil
	}
	if product.StockQuantity > product.RestockLevel {
		logger.Debugw("worker_inventory_low_stock_skip_replenished",
			"product_id", product.ID,
			"stock_quantity", product.StockQuantity,
			"restock_level", product.RestockLevel,
		)
		return nil
	}

	logger.Warnw("inventory_low_stock_alert",
		"product_id", product.ID,
		"sku", product.SKU,
		"product_name", product.Name,
		"stock_quantity", product.StockQuantity,
		"restock_level", product.RestockLevel,
	)
	return nil
}

package service

import (
	"fmt"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// stockChange 单次库存变更结果，供低库存检测使用
type stockChange struct {
	ProductID     uint
	ProductName   string
	SKU           string
	PreviousStock int
	NewStock      int
	RestockLevel  int
	Entry         *models.InventoryLog
}

func (c stockChange) belowRestockLevel() bool {
	return c.NewStock <= c.RestockLevel
}

// applyStockChange 在事务内执行一次库存变更并追加流水。
// sold 为条件扣减，命中 0 行返回 ErrInsufficientStock；
// restock 无条件加回；adjustment 允许正负，负向下限归零。
func applyStockChange(productRepo repository.ProductRepository, logRepo *repository.GormInventoryLogRepository, productID uint, delta int, actor, action string) (*stockChange, error) {
	product, err := productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	previous := product.StockQuantity

	newStock := previous
	switch action {
	case constants.InventoryActionSold:
		if delta >= 0 {
			return nil, ErrInvalidAdjustment
		}
		affected, err := productRepo.DecrementStockSold(productID, -delta)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, product.SKU)
		}
		newStock = previous + delta
	case constants.InventoryActionRestock:
		if delta <= 0 {
			return nil, ErrInvalidAdjustment
		}
		if _, err := productRepo.IncrementStock(productID, delta); err != nil {
			return nil, err
		}
		newStock = previous + delta
	case constants.InventoryActionAdjustment:
		if delta == 0 {
			return nil, ErrInvalidAdjustment
		}
		if _, err := productRepo.SetStockClamped(productID, delta); err != nil {
			return nil, err
		}
		newStock = previous + delta
		if newStock < 0 {
			newStock = 0
		}
	default:
		return nil, ErrInvalidAdjustment
	}

	entry := &models.InventoryLog{
		ProductID:     productID,
		Actor:         actor,
		Action:        action,
		QuantityDelta: newStock - previous,
		PreviousStock: previous,
		NewStock:      newStock,
		CreatedAt:     time.Now(),
	}
	if err := logRepo.Append(entry); err != nil {
		return nil, err
	}

	return &stockChange{
		ProductID:     productID,
		ProductName:   product.Name,
		SKU:           product.SKU,
		PreviousStock: previous,
		NewStock:      newStock,
		RestockLevel:  product.RestockLevel,
		Entry:         entry,
	}, nil
}

// InventoryService 库存服务
type InventoryService struct {
	productRepo repository.ProductRepository
	logRepo     *repository.GormInventoryLogRepository
	queueClient *queue.Client
}

// NewInventoryService 创建库存服务
func NewInventoryService(productRepo repository.ProductRepository, logRepo *repository.GormInventoryLogRepository, queueClient *queue.Client) *InventoryService {
	return &InventoryService{
		productRepo: productRepo,
		logRepo:     logRepo,
		queueClient: queueClient,
	}
}

// AdjustInput 库存调整输入
type AdjustInput struct {
	ProductID uint
	Delta     int
	Actor     string
	Action    string
}

// Adjust 调整商品库存并记录流水
func (s *InventoryService) Adjust(input AdjustInput) (*models.InventoryLog, error) {
	if input.ProductID == 0 {
		return nil, ErrProductNotFound
	}
	actor := input.Actor
	if actor == "" {
		actor = constants.InventoryActorSystem
	}

	var change *stockChange
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		logRepo := s.logRepo.WithTx(tx)
		c, err := applyStockChange(productRepo, logRepo, input.ProductID, input.Delta, actor, input.Action)
		if err != nil {
			return err
		}
		change = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Action == constants.InventoryActionSold && change.belowRestockLevel() {
		s.notifyLowStock([]stockChange{*change})
	}
	return change.Entry, nil
}

// ListLogs 获取商品库存流水
func (s *InventoryService) ListLogs(productID uint, page, pageSize int) ([]models.InventoryLog, int64, error) {
	if productID == 0 {
		return nil, 0, ErrProductNotFound
	}
	return s.logRepo.ListByProduct(productID, page, pageSize)
}

// notifyLowStock 投递低库存告警任务。
// 入队失败只记录日志，不影响已提交的库存变更。
func (s *InventoryService) notifyLowStock(changes []stockChange) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	for _, change := range changes {
		if !change.belowRestockLevel() {
			continue
		}
		err := s.queueClient.EnqueueInventoryLowStock(queue.InventoryLowStockPayload{
			ProductID:    change.ProductID,
			ProductName:  change.ProductName,
			SKU:          change.SKU,
			StockLeft:    change.NewStock,
			RestockLevel: change.RestockLevel,
		})
		if err != nil {
			logger.Warnw("inventory_enqueue_low_stock_failed",
				"product_id", change.ProductID,
				"stock_left", change.NewStock,
				"error", err,
			)
		}
	}
}

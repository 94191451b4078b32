package service

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

func newInventoryServiceForTest(db *gorm.DB) *InventoryService {
	return NewInventoryService(repository.NewProductRepository(db), repository.NewInventoryLogRepository(db), nil)
}

func TestInventoryAdjustSold(t *testing.T) {
	db := setupServiceTestDB(t, "inventory_sold")
	svc := newInventoryServiceForTest(db)
	product := createTestProduct(t, db, "SKU-INV-SOLD", "10.00", 10, 2)

	entry, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: -3, Action: constants.InventoryActionSold})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if entry.PreviousStock != 10 || entry.NewStock != 7 || entry.QuantityDelta != -3 {
		t.Fatalf("unexpected log entry: %+v", entry)
	}
	if entry.Actor != constants.InventoryActorSystem {
		t.Fatalf("expected default actor, got %q", entry.Actor)
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.StockQuantity != 7 {
		t.Fatalf("expected stock 7, got %d", stored.StockQuantity)
	}

	// sold 只接受负增量
	if _, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: 3, Action: constants.InventoryActionSold}); !errors.Is(err, ErrInvalidAdjustment) {
		t.Fatalf("expected ErrInvalidAdjustment, got %v", err)
	}
	// 超过剩余库存的扣减条件不命中
	if _, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: -8, Action: constants.InventoryActionSold}); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.StockQuantity != 7 {
		t.Fatalf("failed adjust must not change stock, got %d", stored.StockQuantity)
	}
}

func TestInventoryAdjustRestock(t *testing.T) {
	db := setupServiceTestDB(t, "inventory_restock")
	svc := newInventoryServiceForTest(db)
	product := createTestProduct(t, db, "SKU-INV-RST", "10.00", 4, 2)

	entry, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: 16, Actor: "warehouse", Action: constants.InventoryActionRestock})
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if entry.PreviousStock != 4 || entry.NewStock != 20 || entry.Actor != "warehouse" {
		t.Fatalf("unexpected log entry: %+v", entry)
	}

	if _, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: -1, Action: constants.InventoryActionRestock}); !errors.Is(err, ErrInvalidAdjustment) {
		t.Fatalf("expected ErrInvalidAdjustment for negative restock, got %v", err)
	}
	if _, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: 0, Action: constants.InventoryActionRestock}); !errors.Is(err, ErrInvalidAdjustment) {
		t.Fatalf("expected ErrInvalidAdjustment for zero restock, got %v", err)
	}
}

func TestInventoryAdjustmentClampsAtZero(t *testing.T) {
	db := setupServiceTestDB(t, "inventory_clamp")
	svc := newInventoryServiceForTest(db)
	product := createTestProduct(t, db, "SKU-INV-CLP", "10.00", 5, 0)

	entry, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: -9, Action: constants.InventoryActionAdjustment})
	if err != nil {
		t.Fatalf("adjustment failed: %v", err)
	}
	if entry.NewStock != 0 {
		t.Fatalf("expected stock clamped to 0, got %d", entry.NewStock)
	}
	if entry.QuantityDelta != -5 {
		t.Fatalf("expected effective delta -5, got %d", entry.QuantityDelta)
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.StockQuantity != 0 {
		t.Fatalf("expected stock 0, got %d", stored.StockQuantity)
	}

	if _, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: 0, Action: constants.InventoryActionAdjustment}); !errors.Is(err, ErrInvalidAdjustment) {
		t.Fatalf("expected ErrInvalidAdjustment for zero delta, got %v", err)
	}
	if _, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: 1, Action: "unknown"}); !errors.Is(err, ErrInvalidAdjustment) {
		t.Fatalf("expected ErrInvalidAdjustment for unknown action, got %v", err)
	}
}

func TestInventoryAdjustMissingProduct(t *testing.T) {
	db := setupServiceTestDB(t, "inventory_missing")
	svc := newInventoryServiceForTest(db)

	if _, err := svc.Adjust(AdjustInput{ProductID: 0, Delta: 1, Action: constants.InventoryActionRestock}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for zero id, got %v", err)
	}
	if _, err := svc.Adjust(AdjustInput{ProductID: 9999, Delta: 1, Action: constants.InventoryActionRestock}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for missing id, got %v", err)
	}
}

func TestInventoryListLogs(t *testing.T) {
	db := setupServiceTestDB(t, "inventory_logs")
	svc := newInventoryServiceForTest(db)
	product := createTestProduct(t, db, "SKU-INV-LOG", "10.00", 50, 5)

	if _, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: 10, Action: constants.InventoryActionRestock}); err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if _, err := svc.Adjust(AdjustInput{ProductID: product.ID, Delta: -5, Action: constants.InventoryActionSold}); err != nil {
		t.Fatalf("sold failed: %v", err)
	}

	logs, total, err := svc.ListLogs(product.ID, 1, 10)
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if total != 2 || len(logs) != 2 {
		t.Fatalf("expected 2 logs, got total=%d len=%d", total, len(logs))
	}
	// 流水倒序，最新在前
	if logs[0].Action != constants.InventoryActionSold {
		t.Fatalf("expected latest log first, got %+v", logs[0])
	}
	if logs[0].PreviousStock != 60 || logs[0].NewStock != 55 {
		t.Fatalf("unexpected sold log: %+v", logs[0])
	}

	if _, _, err := svc.ListLogs(0, 1, 10); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

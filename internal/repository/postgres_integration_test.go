//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.CartItem{},
		&models.Cart{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchUsesILike(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	productRepo := NewProductRepository(db)
	product := &models.Product{
		SKU:           "PG-SKU-001",
		Name:          "Rocket Booster Pack",
		Description:   "postgres search fixture",
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
		StockQuantity: 10,
		IsActive:      true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := productRepo.List(ProductListFilter{
		Page:   1,
		Search: "rocket",
	})
	if err != nil {
		t.Fatalf("product list search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("case-insensitive search want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresCartUpsertAccumulatesQuantity(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	productRepo := NewProductRepository(db)
	product := &models.Product{
		SKU:           "PG-SKU-002",
		Name:          "Upsert Fixture",
		PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		StockQuantity: 100,
		IsActive:      true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	cartRepo := NewCartRepository(db)
	cart, err := cartRepo.GetOrCreate(0, "pg-session")
	if err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}

	first := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
		UnitPrice: product.PriceAmount,
	}
	if err := cartRepo.UpsertItem(first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	changedPrice := models.NewMoneyFromDecimal(decimal.NewFromInt(99))
	second := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  3,
		UnitPrice: changedPrice,
	}
	if err := cartRepo.UpsertItem(second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	item, err := cartRepo.GetItem(cart.ID, product.ID)
	if err != nil {
		t.Fatalf("get item failed: %v", err)
	}
	if item == nil {
		t.Fatal("item not found after upsert")
	}
	if item.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", item.Quantity)
	}
	if !item.UnitPrice.Equal(product.PriceAmount.Decimal) {
		t.Fatalf("unit price snapshot should be kept, got %s", item.UnitPrice)
	}
}

package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupServiceTestDB 初始化内存 SQLite 测试库并接管全局 DB。
func setupServiceTestDB(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", prefix, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	previous := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = previous
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, sku, price string, stock, restockLevel int) *models.Product {
	t.Helper()

	amount, err := models.NewMoneyFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	product := &models.Product{
		SKU:           sku,
		Name:          "测试商品 " + sku,
		PriceAmount:   amount,
		StockQuantity: stock,
		RestockLevel:  restockLevel,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestCoupon(t *testing.T, db *gorm.DB, coupon *models.Coupon) *models.Coupon {
	t.Helper()

	// GORM 对带 default 标签的零值字段会回填默认值，需 UpdateColumn 强制写入 is_active=false
	isActive := coupon.IsActive
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if coupon.IsActive != isActive {
		if err := db.Model(&models.Coupon{}).Where("id = ?", coupon.ID).UpdateColumn("is_active", isActive).Error; err != nil {
			t.Fatalf("set coupon is_active failed: %v", err)
		}
		coupon.IsActive = isActive
	}
	return coupon
}

func newCartServiceForTest(db *gorm.DB) *CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
}

func newOrderServiceForTest(db *gorm.DB, rules PricingRules) *OrderService {
	productRepo := repository.NewProductRepository(db)
	logRepo := repository.NewInventoryLogRepository(db)
	inventory := NewInventoryService(productRepo, logRepo, nil)
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		productRepo,
		repository.NewCouponRepository(db),
		repository.NewCouponUsageRepository(db),
		logRepo,
		inventory,
		rules,
	)
}

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(s)
	if err != nil {
		t.Fatalf("parse money %s failed: %v", s, err)
	}
	return m
}

func assertMoneyEqual(t *testing.T, label string, got models.Money, want string) {
	t.Helper()
	expected, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("parse expected %s failed: %v", want, err)
	}
	if !got.Decimal.Equal(expected) {
		t.Fatalf("%s want %s got %s", label, want, got.Decimal.StringFixed(2))
	}
}

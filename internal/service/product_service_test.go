package service

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

func TestProductCreateValidation(t *testing.T) {
	db := setupServiceTestDB(t, "product_create")
	svc := NewProductService(repository.NewProductRepository(db))

	created, err := svc.Create(CreateProductInput{
		SKU:           "SKU-NEW-1",
		Name:          "新品",
		PriceAmount:   decimal.RequireFromString("19.99"),
		StockQuantity: 10,
		RestockLevel:  2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 || !created.IsActive {
		t.Fatalf("unexpected product: %+v", created)
	}
	assertMoneyEqual(t, "price", created.PriceAmount, "19.99")

	if _, err := svc.Create(CreateProductInput{SKU: "SKU-NEW-1", Name: "重复", PriceAmount: decimal.RequireFromString("9.00")}); !errors.Is(err, ErrProductSKUExists) {
		t.Fatalf("expected ErrProductSKUExists, got %v", err)
	}
	if _, err := svc.Create(CreateProductInput{SKU: "", Name: "无编码", PriceAmount: decimal.RequireFromString("9.00")}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
	if _, err := svc.Create(CreateProductInput{SKU: "SKU-NEW-2", Name: "零价", PriceAmount: decimal.Zero}); !errors.Is(err, ErrProductPriceInvalid) {
		t.Fatalf("expected ErrProductPriceInvalid, got %v", err)
	}
	if _, err := svc.Create(CreateProductInput{SKU: "SKU-NEW-3", Name: "负库存", PriceAmount: decimal.RequireFromString("9.00"), StockQuantity: -1}); !errors.Is(err, ErrInvalidAdjustment) {
		t.Fatalf("expected ErrInvalidAdjustment, got %v", err)
	}
}

func TestProductListPublicFiltersInactive(t *testing.T) {
	db := setupServiceTestDB(t, "product_list")
	svc := NewProductService(repository.NewProductRepository(db))

	active := createTestProduct(t, db, "SKU-LIST-ON", "10.00", 5, 0)
	hidden := createTestProduct(t, db, "SKU-LIST-OFF", "10.00", 5, 0)
	if err := db.Model(&models.Product{}).Where("id = ?", hidden.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	products, total, err := svc.ListPublic("", 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].ID != active.ID {
		t.Fatalf("expected only active product, got total=%d", total)
	}

	// 下架商品详情不可见
	if _, err := svc.GetPublicByID(hidden.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	got, err := svc.GetPublicByID(active.ID)
	if err != nil || got.SKU != "SKU-LIST-ON" {
		t.Fatalf("get active failed: %v %+v", err, got)
	}
}

func TestProductSearchMatchesNameOrSKU(t *testing.T) {
	db := setupServiceTestDB(t, "product_search")
	svc := NewProductService(repository.NewProductRepository(db))

	kb := createTestProduct(t, db, "SKU-KB-01", "10.00", 5, 0)
	if err := db.Model(&models.Product{}).Where("id = ?", kb.ID).Update("name", "Mechanical Keyboard").Error; err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	createTestProduct(t, db, "SKU-MS-02", "10.00", 5, 0)

	products, total, err := svc.ListPublic("Keyboard", 1, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].ID != kb.ID {
		t.Fatalf("expected keyboard match, got total=%d", total)
	}

	products, total, err = svc.ListPublic("SKU-MS", 1, 10)
	if err != nil {
		t.Fatalf("sku search failed: %v", err)
	}
	if total != 1 || products[0].SKU != "SKU-MS-02" {
		t.Fatalf("expected sku match, got total=%d", total)
	}
}

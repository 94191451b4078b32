package service

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

func newPricingServiceForTest(db *gorm.DB) *PricingService {
	cartSvc := newCartServiceForTest(db)
	couponSvc := NewCouponService(repository.NewCouponRepository(db), repository.NewCouponUsageRepository(db))
	return NewPricingService(cartSvc, couponSvc, DefaultPricingRules())
}

func TestPricingSummarizeLinesShippingBoundary(t *testing.T) {
	db := setupServiceTestDB(t, "pricing_shipping")
	svc := newPricingServiceForTest(db)

	// 恰好等于免邮门槛：不免邮
	atThreshold := []CartLineDetail{{ProductID: 1, Quantity: 1, UnitPrice: mustMoney(t, "500.00"), LineTotal: mustMoney(t, "500.00")}}
	summary, err := svc.SummarizeLines(atThreshold, "")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	assertMoneyEqual(t, "subtotal", summary.Subtotal, "500.00")
	assertMoneyEqual(t, "shipping at threshold", summary.ShippingFee, "50.00")
	assertMoneyEqual(t, "tax", summary.TaxAmount, "75.00")
	assertMoneyEqual(t, "grand total", summary.GrandTotal, "625.00")

	// 严格大于门槛：免邮
	overThreshold := []CartLineDetail{{ProductID: 1, Quantity: 1, UnitPrice: mustMoney(t, "500.01"), LineTotal: mustMoney(t, "500.01")}}
	summary, err = svc.SummarizeLines(overThreshold, "")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	assertMoneyEqual(t, "shipping over threshold", summary.ShippingFee, "0.00")
}

func TestPricingSummarizeLinesEmptyCart(t *testing.T) {
	db := setupServiceTestDB(t, "pricing_empty")
	svc := newPricingServiceForTest(db)

	summary, err := svc.SummarizeLines(nil, "")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	assertMoneyEqual(t, "subtotal", summary.Subtotal, "0.00")
	assertMoneyEqual(t, "shipping", summary.ShippingFee, "0.00")
	assertMoneyEqual(t, "tax", summary.TaxAmount, "0.00")
	assertMoneyEqual(t, "grand total", summary.GrandTotal, "0.00")
}

func TestPricingSummarizeWithCoupon(t *testing.T) {
	db := setupServiceTestDB(t, "pricing_coupon")
	svc := newPricingServiceForTest(db)

	createTestCoupon(t, db, &models.Coupon{
		Code:         "TEN-OFF",
		Type:         "fixed",
		Value:        mustMoney(t, "10.00"),
		MinCartTotal: mustMoney(t, "50.00"),
		IsActive:     true,
	})

	lines := []CartLineDetail{{ProductID: 1, Quantity: 2, UnitPrice: mustMoney(t, "60.00"), LineTotal: mustMoney(t, "120.00")}}
	summary, err := svc.SummarizeLines(lines, "TEN-OFF")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if summary.CouponCode != "TEN-OFF" {
		t.Fatalf("expected coupon code echoed, got %q", summary.CouponCode)
	}
	assertMoneyEqual(t, "discount", summary.DiscountAmount, "10.00")
	// 折扣先于税费：税基为折后小计 110.00
	assertMoneyEqual(t, "tax", summary.TaxAmount, "16.50")
	// 运费按折前小计判断：120.00 未超门槛，收 50.00
	assertMoneyEqual(t, "shipping", summary.ShippingFee, "50.00")
	assertMoneyEqual(t, "grand total", summary.GrandTotal, "176.50")
}

func TestPricingSummarizeWorkedExamples(t *testing.T) {
	db := setupServiceTestDB(t, "pricing_examples")
	svc := newPricingServiceForTest(db)

	lines := []CartLineDetail{
		{ProductID: 1, Quantity: 2, UnitPrice: mustMoney(t, "120.00"), LineTotal: mustMoney(t, "240.00")},
		{ProductID: 2, Quantity: 1, UnitPrice: mustMoney(t, "80.00"), LineTotal: mustMoney(t, "80.00")},
	}

	summary, err := svc.SummarizeLines(lines, "")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	assertMoneyEqual(t, "subtotal", summary.Subtotal, "320.00")
	assertMoneyEqual(t, "shipping", summary.ShippingFee, "50.00")
	assertMoneyEqual(t, "tax", summary.TaxAmount, "48.00")
	assertMoneyEqual(t, "grand total", summary.GrandTotal, "418.00")

	createTestCoupon(t, db, &models.Coupon{
		Code:         "SAVE10",
		Type:         "percentage",
		Value:        mustMoney(t, "10.00"),
		MinCartTotal: mustMoney(t, "200.00"),
		IsActive:     true,
	})
	summary, err = svc.SummarizeLines(lines, "SAVE10")
	if err != nil {
		t.Fatalf("summarize with coupon failed: %v", err)
	}
	assertMoneyEqual(t, "discount", summary.DiscountAmount, "32.00")
	assertMoneyEqual(t, "tax", summary.TaxAmount, "43.20")
	assertMoneyEqual(t, "grand total", summary.GrandTotal, "381.20")
}

func TestPricingSummarizeCouponErrorPropagates(t *testing.T) {
	db := setupServiceTestDB(t, "pricing_coupon_err")
	svc := newPricingServiceForTest(db)

	lines := []CartLineDetail{{ProductID: 1, Quantity: 1, UnitPrice: mustMoney(t, "30.00"), LineTotal: mustMoney(t, "30.00")}}
	if _, err := svc.SummarizeLines(lines, "NOPE"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestComputeChargesDiscountExceedsSubtotal(t *testing.T) {
	rules := DefaultPricingRules()
	subtotal := mustMoney(t, "40.00")
	discount := mustMoney(t, "100.00")

	shipping, tax, grand := computeCharges(rules, subtotal, discount)
	// 折后小计不为负，税费归零
	assertMoneyEqual(t, "tax", tax, "0.00")
	assertMoneyEqual(t, "shipping", shipping, "50.00")
	assertMoneyEqual(t, "grand total", grand, "50.00")
}

func TestPricingSummarizeFromOwnerCart(t *testing.T) {
	db := setupServiceTestDB(t, "pricing_owner")
	svc := newPricingServiceForTest(db)

	product := createTestProduct(t, db, "SKU-PRICE-1", "120.00", 10, 0)
	owner := Owner{UserID: 3}
	if err := svc.cartService.AddItem(AddCartItemInput{Owner: owner, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	summary, err := svc.Summarize(owner, "")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if len(summary.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(summary.Lines))
	}
	assertMoneyEqual(t, "subtotal", summary.Subtotal, "240.00")
	assertMoneyEqual(t, "tax", summary.TaxAmount, "36.00")
	assertMoneyEqual(t, "grand total", summary.GrandTotal, "326.00")
}

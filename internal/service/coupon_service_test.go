package service

import (
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

func newCouponServiceForTest(db *gorm.DB) *CouponService {
	return NewCouponService(repository.NewCouponRepository(db), repository.NewCouponUsageRepository(db))
}

func TestCouponValidateRejections(t *testing.T) {
	db := setupServiceTestDB(t, "coupon_reject")
	svc := newCouponServiceForTest(db)

	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	createTestCoupon(t, db, &models.Coupon{Code: "OFF", Type: constants.CouponTypeFixed, Value: mustMoney(t, "5.00"), IsActive: false})
	createTestCoupon(t, db, &models.Coupon{Code: "SOON", Type: constants.CouponTypeFixed, Value: mustMoney(t, "5.00"), IsActive: true, StartsAt: &future})
	createTestCoupon(t, db, &models.Coupon{Code: "GONE", Type: constants.CouponTypeFixed, Value: mustMoney(t, "5.00"), IsActive: true, EndsAt: &past})
	createTestCoupon(t, db, &models.Coupon{Code: "USED-UP", Type: constants.CouponTypeFixed, Value: mustMoney(t, "5.00"), IsActive: true, UsageLimit: 2, UsedCount: 2})
	createTestCoupon(t, db, &models.Coupon{Code: "BIG-ONLY", Type: constants.CouponTypeFixed, Value: mustMoney(t, "5.00"), IsActive: true, MinCartTotal: mustMoney(t, "200.00")})
	createTestCoupon(t, db, &models.Coupon{Code: "BAD-TYPE", Type: "bogus", Value: mustMoney(t, "5.00"), IsActive: true})
	createTestCoupon(t, db, &models.Coupon{Code: "ZERO-VAL", Type: constants.CouponTypePercent, Value: mustMoney(t, "0.00"), IsActive: true})

	subtotal := mustMoney(t, "100.00")
	cases := []struct {
		code string
		want error
	}{
		{"", ErrCouponInvalid},
		{"   ", ErrCouponInvalid},
		{"MISSING", ErrCouponNotFound},
		{"OFF", ErrCouponInactive},
		{"SOON", ErrCouponNotStarted},
		{"GONE", ErrCouponExpired},
		{"USED-UP", ErrCouponUsageLimit},
		{"BIG-ONLY", ErrCouponMinAmount},
		{"BAD-TYPE", ErrCouponInvalid},
		{"ZERO-VAL", ErrCouponInvalid},
	}
	for _, tc := range cases {
		if _, _, err := svc.Validate(tc.code, subtotal); !errors.Is(err, tc.want) {
			t.Fatalf("code %q: expected %v, got %v", tc.code, tc.want, err)
		}
	}
}

func TestCouponValidateDiscountComputation(t *testing.T) {
	db := setupServiceTestDB(t, "coupon_discount")
	svc := newCouponServiceForTest(db)

	createTestCoupon(t, db, &models.Coupon{Code: "FIXED-30", Type: constants.CouponTypeFixed, Value: mustMoney(t, "30.00"), IsActive: true})
	createTestCoupon(t, db, &models.Coupon{Code: "PCT-10", Type: constants.CouponTypePercent, Value: mustMoney(t, "10.00"), IsActive: true})
	createTestCoupon(t, db, &models.Coupon{Code: "PCT-50-CAP", Type: constants.CouponTypePercent, Value: mustMoney(t, "50.00"), MaxDiscount: mustMoney(t, "40.00"), IsActive: true})
	createTestCoupon(t, db, &models.Coupon{Code: "FIXED-NO-CAP", Type: constants.CouponTypeFixed, Value: mustMoney(t, "30.00"), MaxDiscount: mustMoney(t, "10.00"), IsActive: true})

	subtotal := mustMoney(t, "200.00")

	discount, coupon, err := svc.Validate("FIXED-30", subtotal)
	if err != nil {
		t.Fatalf("fixed validate failed: %v", err)
	}
	if coupon == nil || coupon.Code != "FIXED-30" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}
	assertMoneyEqual(t, "fixed discount", discount, "30.00")

	discount, _, err = svc.Validate("PCT-10", subtotal)
	if err != nil {
		t.Fatalf("percent validate failed: %v", err)
	}
	assertMoneyEqual(t, "percent discount", discount, "20.00")

	// 百分比折扣受最大优惠封顶
	discount, _, err = svc.Validate("PCT-50-CAP", subtotal)
	if err != nil {
		t.Fatalf("capped validate failed: %v", err)
	}
	assertMoneyEqual(t, "capped discount", discount, "40.00")

	// 封顶只对百分比券生效，固定金额券不受影响
	discount, _, err = svc.Validate("FIXED-NO-CAP", subtotal)
	if err != nil {
		t.Fatalf("fixed with cap validate failed: %v", err)
	}
	assertMoneyEqual(t, "fixed discount ignores cap", discount, "30.00")
}

func TestCouponValidateUncappedAndClamp(t *testing.T) {
	db := setupServiceTestDB(t, "coupon_clamp")
	svc := newCouponServiceForTest(db)

	// 封顶为零表示不封顶
	createTestCoupon(t, db, &models.Coupon{Code: "PCT-50", Type: constants.CouponTypePercent, Value: mustMoney(t, "50.00"), IsActive: true})
	createTestCoupon(t, db, &models.Coupon{Code: "FIXED-HUGE", Type: constants.CouponTypeFixed, Value: mustMoney(t, "500.00"), IsActive: true})

	discount, _, err := svc.Validate("PCT-50", mustMoney(t, "300.00"))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	assertMoneyEqual(t, "uncapped discount", discount, "150.00")

	// 折扣不超过小计
	discount, _, err = svc.Validate("FIXED-HUGE", mustMoney(t, "80.00"))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	assertMoneyEqual(t, "clamped discount", discount, "80.00")
}

func TestCouponRedeem(t *testing.T) {
	db := setupServiceTestDB(t, "coupon_redeem")
	svc := newCouponServiceForTest(db)

	coupon := createTestCoupon(t, db, &models.Coupon{Code: "LIMIT-1", Type: constants.CouponTypeFixed, Value: mustMoney(t, "5.00"), IsActive: true, UsageLimit: 1})

	usage := &models.CouponUsage{CouponID: coupon.ID, UserID: 1, OrderID: 100, DiscountAmount: mustMoney(t, "5.00"), CreatedAt: time.Now()}
	if err := svc.Redeem(coupon, usage); err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}

	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", stored.UsedCount)
	}
	var usageCount int64
	if err := db.Model(&models.CouponUsage{}).Where("coupon_id = ?", coupon.ID).Count(&usageCount).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if usageCount != 1 {
		t.Fatalf("expected 1 usage row, got %d", usageCount)
	}

	// 已达上限时条件更新命中 0 行
	if err := svc.Redeem(coupon, nil); !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("expected ErrCouponUsageLimit, got %v", err)
	}
	if err := svc.Redeem(nil, nil); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid for nil coupon, got %v", err)
	}
}

func TestCouponDecrementUsedCount(t *testing.T) {
	db := setupServiceTestDB(t, "coupon_decrement")
	repo := repository.NewCouponRepository(db)

	coupon := createTestCoupon(t, db, &models.Coupon{Code: "DEC", Type: constants.CouponTypeFixed, Value: mustMoney(t, "5.00"), IsActive: true, UsedCount: 3})

	if err := repo.DecrementUsedCount(coupon.ID, 2); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", stored.UsedCount)
	}

	// 回退量超过当前计数时条件不命中，计数保持不变
	if err := repo.DecrementUsedCount(coupon.ID, 5); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.UsedCount != 1 {
		t.Fatalf("expected used count unchanged at 1, got %d", stored.UsedCount)
	}
}

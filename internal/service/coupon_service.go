package service

import (
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
	}
}

// Validate 校验优惠码并计算折扣金额。
// 只做校验与计算，不消耗使用次数；核销发生在订单事务内。
func (s *CouponService) Validate(code string, subtotal models.Money) (models.Money, *models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return models.Money{}, nil, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return models.Money{}, nil, err
	}
	if coupon == nil {
		return models.Money{}, nil, ErrCouponNotFound
	}
	if !coupon.IsActive {
		return models.Money{}, coupon, ErrCouponInactive
	}

	now := time.Now()
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return models.Money{}, coupon, ErrCouponNotStarted
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return models.Money{}, coupon, ErrCouponExpired
	}

	if subtotal.Decimal.Cmp(coupon.MinCartTotal.Decimal) < 0 {
		return models.Money{}, coupon, ErrCouponMinAmount
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return models.Money{}, coupon, ErrCouponUsageLimit
	}

	discount, err := s.calculateDiscount(coupon, subtotal)
	if err != nil {
		return models.Money{}, coupon, err
	}

	// 折扣不超过小计，避免负向应付金额
	if discount.Decimal.GreaterThan(subtotal.Decimal) {
		discount = models.NewMoneyFromDecimal(subtotal.Decimal)
	}

	return discount, coupon, nil
}

// Redeem 事务内核销优惠券并落使用记录。
// 条件更新命中 0 行表示并发下已达使用上限。
func (s *CouponService) Redeem(coupon *models.Coupon, usage *models.CouponUsage) error {
	if coupon == nil {
		return ErrCouponInvalid
	}
	affected, err := s.couponRepo.Redeem(coupon.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponUsageLimit
	}
	if usage != nil {
		if err := s.usageRepo.Create(usage); err != nil {
			return err
		}
	}
	return nil
}

func (s *CouponService) calculateDiscount(coupon *models.Coupon, subtotal models.Money) (models.Money, error) {
	switch strings.ToLower(strings.TrimSpace(coupon.Type)) {
	case constants.CouponTypeFixed:
		if coupon.Value.Decimal.LessThanOrEqual(decimal.Zero) {
			return models.Money{}, ErrCouponInvalid
		}
		return models.NewMoneyFromDecimal(coupon.Value.Decimal), nil
	case constants.CouponTypePercent:
		if coupon.Value.Decimal.LessThanOrEqual(decimal.Zero) {
			return models.Money{}, ErrCouponInvalid
		}
		percent := coupon.Value.Decimal.Div(decimal.NewFromInt(100))
		discount := subtotal.Decimal.Mul(percent)
		// 最大优惠封顶只对百分比券生效
		if coupon.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
		return models.NewMoneyFromDecimal(discount), nil
	default:
		return models.Money{}, ErrCouponInvalid
	}
}

package service

import (
	"strings"

	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

// PricingRules 计价规则，来自配置
type PricingRules struct {
	FreeShippingThreshold models.Money
	ShippingFee           models.Money
	TaxRate               decimal.Decimal
}

// DefaultPricingRules 默认计价规则
func DefaultPricingRules() PricingRules {
	threshold, _ := models.NewMoneyFromString("500.00")
	fee, _ := models.NewMoneyFromString("50.00")
	return PricingRules{
		FreeShippingThreshold: threshold,
		ShippingFee:           fee,
		TaxRate:               decimal.NewFromFloat(0.15),
	}
}

// CartSummary 购物车计价汇总
type CartSummary struct {
	Lines          []CartLineDetail `json:"lines"`
	Subtotal       models.Money     `json:"subtotal"`
	DiscountAmount models.Money     `json:"discount_amount"`
	CouponCode     string           `json:"coupon_code,omitempty"`
	ShippingFee    models.Money     `json:"shipping_fee"`
	TaxAmount      models.Money     `json:"tax_amount"`
	GrandTotal     models.Money     `json:"grand_total"`
}

// PricingService 计价服务
type PricingService struct {
	cartService   *CartService
	couponService *CouponService
	rules         PricingRules
}

// NewPricingService 创建计价服务
func NewPricingService(cartService *CartService, couponService *CouponService, rules PricingRules) *PricingService {
	return &PricingService{
		cartService:   cartService,
		couponService: couponService,
		rules:         rules,
	}
}

// Summarize 计算归属者购物车汇总，可选应用优惠码
func (s *PricingService) Summarize(owner Owner, couponCode string) (*CartSummary, error) {
	lines, err := s.cartService.ListByOwner(owner)
	if err != nil {
		return nil, err
	}
	return s.SummarizeLines(lines, couponCode)
}

// SummarizeLines 按给定购物车行计算汇总。
// 折扣先于税费：税基为折后小计，运费按折前小计判断免邮。
func (s *PricingService) SummarizeLines(lines []CartLineDetail, couponCode string) (*CartSummary, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal.Decimal)
	}
	subtotalMoney := models.NewMoneyFromDecimal(subtotal)

	discount := models.ZeroMoney()
	appliedCode := ""
	if code := strings.TrimSpace(couponCode); code != "" {
		d, coupon, err := s.couponService.Validate(code, subtotalMoney)
		if err != nil {
			return nil, err
		}
		discount = d
		appliedCode = coupon.Code
	}

	shipping, tax, grandTotal := computeCharges(s.rules, subtotalMoney, discount)

	return &CartSummary{
		Lines:          lines,
		Subtotal:       subtotalMoney,
		DiscountAmount: discount,
		CouponCode:     appliedCode,
		ShippingFee:    shipping,
		TaxAmount:      tax,
		GrandTotal:     grandTotal,
	}, nil
}

// computeCharges 按规则计算运费、税费与应付总额。
// 折扣先于税费：税基为折后小计；运费按折前小计判断免邮，空车免运费。
func computeCharges(rules PricingRules, subtotal, discount models.Money) (shipping, tax, grandTotal models.Money) {
	shipping = rules.ShippingFee
	if subtotal.Decimal.IsZero() || subtotal.Decimal.GreaterThan(rules.FreeShippingThreshold.Decimal) {
		shipping = models.ZeroMoney()
	}

	discounted := subtotal.Decimal.Sub(discount.Decimal)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	tax = models.NewMoneyFromDecimal(discounted.Mul(rules.TaxRate))

	grand := discounted.Add(shipping.Decimal).Add(tax.Decimal)
	grandTotal = models.NewMoneyFromDecimal(grand).ClampNonNegative()
	return shipping, tax, grandTotal
}

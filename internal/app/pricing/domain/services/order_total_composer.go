package services

import (
	"time"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// OrderTotalComposer prices cart lines and folds in a coupon result and shipping quote.
type OrderTotalComposer struct {
	pricing *PricingCalculator
}

func NewOrderTotalComposer(pricing *PricingCalculator) *OrderTotalComposer {
	if pricing == nil {
		pricing = NewPricingCalculator()
	}
	return &OrderTotalComposer{pricing: pricing}
}

// PriceLines runs the product discount evaluator over each line and returns
// the priced lines with their subtotal. Negative quantities are rejected.
func (c *OrderTotalComposer) PriceLines(lines []domain.OrderLine, now time.Time) ([]domain.PricedLine, *domain.Money, error) {
	priced := make([]domain.PricedLine, 0, len(lines))
	subtotal := domain.Zero()

	for _, l := range lines {
		if l.Quantity < 0 {
			return nil, nil, domain.ErrInvalidQuantity
		}
		q := c.pricing.EffectivePrice(l.Product, now)
		lineTotal := q.EffectivePrice.MultiplyByInt(l.Quantity)

		priced = append(priced, domain.PricedLine{
			ProductID:    l.Product.ID(),
			Category:     l.Product.Category(),
			Quantity:     l.Quantity,
			UnitPrice:    q.EffectivePrice,
			BasePrice:    q.DisplayOriginalPrice,
			IsDiscounted: q.IsDiscounted,
			LineTotal:    lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	return priced, subtotal, nil
}

// Compose returns the order totals. coupon may be nil; an Invalid coupon is a
// caller bug and yields ErrInvalidCouponResult.
//
//	total = max(0, subtotal - discount) + (freeShipping ? 0 : shipping)
func (c *OrderTotalComposer) Compose(
	lines []domain.OrderLine,
	coupon *domain.CouponResult,
	shippingCost *domain.Money,
	now time.Time,
) (*domain.OrderTotals, error) {
	if coupon != nil && !coupon.IsValid() {
		return nil, domain.ErrInvalidCouponResult
	}
	if shippingCost == nil {
		shippingCost = domain.Zero()
	}
	if shippingCost.IsNegative() {
		return nil, domain.ErrNegativeShippingCost
	}

	priced, subtotal, err := c.PriceLines(lines, now)
	if err != nil {
		return nil, err
	}

	totals := &domain.OrderTotals{
		Lines:          priced,
		Subtotal:       subtotal,
		DiscountAmount: domain.Zero(),
		ShippingCost:   shippingCost.RoundCurrency(),
	}
	if coupon != nil {
		totals.CouponCode = coupon.Code()
		totals.DiscountAmount = coupon.DiscountAmount()
		if coupon.FreeShipping() {
			totals.FreeShipping = true
			totals.ShippingCost = domain.Zero()
		}
	}

	totals.Total = subtotal.Subtract(totals.DiscountAmount).ClampZero().Add(totals.ShippingCost)
	return totals, nil
}

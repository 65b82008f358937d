package services

import (
	"time"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// CouponValidator decides whether a coupon applies to a priced cart.
// It never mutates the coupon; consumption happens on the order-commit path.
type CouponValidator struct{}

func NewCouponValidator() *CouponValidator {
	return &CouponValidator{}
}

// Validate checks the coupon against the cart in a fixed order and returns
// the first failure, or a Valid result carrying the discount.
//
// coupon is nil when the store had no record for code. subtotal is the sum of
// the lines' effective totals.
func (v *CouponValidator) Validate(
	code string,
	coupon *domain.Coupon,
	subtotal *domain.Money,
	lines []domain.PricedLine,
	now time.Time,
) *domain.CouponResult {
	code = domain.CanonicalCouponCode(code)

	switch {
	case coupon == nil:
		return domain.InvalidCoupon(code, domain.ReasonNotFound)
	case !coupon.IsActive():
		return domain.InvalidCoupon(code, domain.ReasonInactive)
	case coupon.IsExpiredAt(now):
		return domain.InvalidCoupon(code, domain.ReasonExpired)
	case coupon.IsExhausted():
		return domain.InvalidCoupon(code, domain.ReasonExhausted)
	case subtotal.LessThan(coupon.MinimumPurchase()):
		return domain.InvalidCoupon(code, domain.ReasonBelowMinimum)
	}

	applicable, matched := applicableSubtotal(coupon.Scope(), subtotal, lines)
	if !matched {
		return domain.InvalidCoupon(code, domain.ReasonNotApplicableToCart)
	}

	benefit := coupon.Benefit()
	switch benefit.Kind() {
	case domain.BenefitPercentage:
		amount := applicable.MultiplyByFraction(int64(benefit.Percentage()), 100)
		return domain.ValidCoupon(code, amount.RoundCurrency(), false)
	case domain.BenefitFixedAmount:
		amount := benefit.Amount().Min(applicable)
		return domain.ValidCoupon(code, amount.RoundCurrency(), false)
	case domain.BenefitFreeShipping:
		return domain.ValidCoupon(code, domain.Zero(), true)
	}

	// Only reachable through a bad stored row; NewCoupon rejects unknown kinds.
	return domain.InvalidCoupon(code, domain.ReasonMisconfigured)
}

// applicableSubtotal sums line totals inside the scope; AllProducts takes the
// whole cart subtotal. matched is false when no line is in scope.
func applicableSubtotal(scope domain.Scope, subtotal *domain.Money, lines []domain.PricedLine) (*domain.Money, bool) {
	if scope.Kind() == domain.ScopeAllProducts {
		return subtotal, true
	}

	total := domain.Zero()
	matched := false
	for _, l := range lines {
		if scope.Matches(l) {
			total = total.Add(l.LineTotal)
			matched = true
		}
	}
	return total, matched
}

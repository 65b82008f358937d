package services

import (
	"time"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// PriceQuote is the effective unit price of a product at a point in time.
type PriceQuote struct {
	EffectivePrice *domain.Money
	IsDiscounted   bool
	// DisplayOriginalPrice equals the base price when IsDiscounted, and is unused otherwise.
	DisplayOriginalPrice *domain.Money
}

// PricingCalculator is the product discount evaluator.
// It is a pure function of the product and the evaluation time.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// EffectivePrice returns the unit price after the product discount, if any.
// Expired discounts are ignored. The result is rounded to currency places once, at the end.
// A discount that rounds away entirely (sub-cent bases) is reported as not
// discounted, so a quote never shows an "original" price equal to the price paid.
func (pc *PricingCalculator) EffectivePrice(p *domain.Product, now time.Time) PriceQuote {
	base := p.BasePrice().RoundCurrency()
	if !p.HasActiveDiscount(now) {
		return PriceQuote{
			EffectivePrice:       base,
			DisplayOriginalPrice: base,
		}
	}

	effective := p.Discount().ApplyTo(p.BasePrice()).RoundCurrency()
	return PriceQuote{
		EffectivePrice:       effective,
		IsDiscounted:         effective.LessThan(base),
		DisplayOriginalPrice: base,
	}
}

// CalculateSavings returns how much one unit saves with the active discount.
func (pc *PricingCalculator) CalculateSavings(p *domain.Product, now time.Time) *domain.Money {
	q := pc.EffectivePrice(p, now)
	if !q.IsDiscounted {
		return domain.Zero()
	}
	return q.DisplayOriginalPrice.Subtract(q.EffectivePrice)
}

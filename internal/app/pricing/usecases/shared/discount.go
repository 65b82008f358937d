package shared

import (
	"time"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// DiscountSpec is the admin input for a product discount.
type DiscountSpec struct {
	Kind       domain.DiscountKind
	Percentage int
	FixedPrice *domain.Money
	ExpiresAt  *time.Time
}

// Build validates spec against the product's base price.
func (s DiscountSpec) Build(basePrice *domain.Money) (*domain.ProductDiscount, error) {
	switch s.Kind {
	case domain.DiscountKindPercentage:
		return domain.NewPercentageDiscount(s.Percentage, s.ExpiresAt)
	case domain.DiscountKindFixedPrice:
		if s.FixedPrice == nil {
			return nil, domain.ErrNegativeFixedPrice
		}
		return domain.NewFixedPriceDiscount(s.FixedPrice, basePrice, s.ExpiresAt)
	}
	return nil, domain.ErrInvalidDiscountKind
}

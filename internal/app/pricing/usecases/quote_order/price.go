package quote_order

import (
	"context"
	"strings"
	"time"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain/services"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
)

// PriceInput carries everything Price needs. place_order reuses it.
type PriceInput struct {
	Catalog   contracts.CatalogStore
	Coupons   contracts.CouponStore
	Composer  *services.OrderTotalComposer
	Validator *services.CouponValidator
	Items     []shared.CartItem
	Code      string
	Shipping  *domain.Money
	Now       time.Time
}

// Priced is a composed cart. Lines are kept so a caller can recompose
// without the coupon.
type Priced struct {
	Lines     []domain.OrderLine
	Totals    *domain.OrderTotals
	Coupon    *domain.CouponResult
	Rejection *domain.ValidationFailure
}

// Price loads the cart, validates the optional coupon and composes the total.
// A rejected coupon is reported, never fatal: the cart is priced without it.
func Price(ctx context.Context, in PriceInput) (*Priced, error) {
	if in.Shipping == nil {
		in.Shipping = domain.Zero()
	}

	lines, err := shared.LoadCart(ctx, in.Catalog, in.Items)
	if err != nil {
		return nil, err
	}

	out := &Priced{Lines: lines}
	if strings.TrimSpace(in.Code) != "" {
		priced, subtotal, err := in.Composer.PriceLines(lines, in.Now)
		if err != nil {
			return nil, err
		}
		coupon, err := shared.LookupCoupon(ctx, in.Coupons, in.Code)
		if err != nil {
			return nil, err
		}
		res := in.Validator.Validate(in.Code, coupon, subtotal, priced, in.Now)
		if res.IsValid() {
			out.Coupon = res
		} else {
			out.Rejection = res.Failure()
		}
	}

	out.Totals, err = in.Composer.Compose(lines, out.Coupon, in.Shipping, in.Now)
	if err != nil {
		return nil, err
	}
	return out, nil
}

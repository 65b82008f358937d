package validate_coupon

import (
	"context"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain/services"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
)

type Request struct {
	Code  string
	Items []shared.CartItem
}

type Response struct {
	Result   *domain.CouponResult
	Subtotal *domain.Money
}

// Interactor checks a coupon against a cart without consuming it.
type Interactor struct {
	Catalog   contracts.CatalogStore
	Coupons   contracts.CouponStore
	Composer  *services.OrderTotalComposer
	Validator *services.CouponValidator
	Clock     clock.Clock
}

func NewInteractor(catalog contracts.CatalogStore, coupons contracts.CouponStore, clk clock.Clock) *Interactor {
	return &Interactor{
		Catalog:   catalog,
		Coupons:   coupons,
		Composer:  services.NewOrderTotalComposer(nil),
		Validator: services.NewCouponValidator(),
		Clock:     clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*Response, error) {
	now := it.Clock.Now()

	lines, err := shared.LoadCart(ctx, it.Catalog, req.Items)
	if err != nil {
		return nil, err
	}
	priced, subtotal, err := it.Composer.PriceLines(lines, now)
	if err != nil {
		return nil, err
	}

	coupon, err := shared.LookupCoupon(ctx, it.Coupons, req.Code)
	if err != nil {
		return nil, err
	}

	return &Response{
		Result:   it.Validator.Validate(req.Code, coupon, subtotal, priced, now),
		Subtotal: subtotal,
	}, nil
}

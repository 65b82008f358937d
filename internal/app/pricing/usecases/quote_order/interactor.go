package quote_order

import (
	"context"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain/services"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
)

type Request struct {
	Items      []shared.CartItem
	CouponCode string
	// ShippingCost overrides the default shipping quote when set.
	ShippingCost *domain.Money
}

type Response struct {
	Totals *domain.OrderTotals
	// CouponRejection is set when a code was given but could not be applied.
	CouponRejection *domain.ValidationFailure
}

// Interactor prices a cart. It reads only.
type Interactor struct {
	Catalog         contracts.CatalogStore
	Coupons         contracts.CouponStore
	Composer        *services.OrderTotalComposer
	Validator       *services.CouponValidator
	DefaultShipping *domain.Money
	Clock           clock.Clock
}

func NewInteractor(catalog contracts.CatalogStore, coupons contracts.CouponStore, defaultShipping *domain.Money, clk clock.Clock) *Interactor {
	if defaultShipping == nil {
		defaultShipping = domain.Zero()
	}
	return &Interactor{
		Catalog:         catalog,
		Coupons:         coupons,
		Composer:        services.NewOrderTotalComposer(nil),
		Validator:       services.NewCouponValidator(),
		DefaultShipping: defaultShipping,
		Clock:           clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*Response, error) {
	q, err := Price(ctx, PriceInput{
		Catalog:   it.Catalog,
		Coupons:   it.Coupons,
		Composer:  it.Composer,
		Validator: it.Validator,
		Items:     req.Items,
		Code:      req.CouponCode,
		Shipping:  shippingOrDefault(req.ShippingCost, it.DefaultShipping),
		Now:       it.Clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	return &Response{Totals: q.Totals, CouponRejection: q.Rejection}, nil
}

func shippingOrDefault(s, def *domain.Money) *domain.Money {
	if s != nil {
		return s
	}
	return def
}

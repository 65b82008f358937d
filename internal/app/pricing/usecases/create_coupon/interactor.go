package create_coupon

import (
	"context"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
)

type Request struct {
	Params domain.CouponParams
}

type Interactor struct {
	Coupons contracts.CouponStore
	Clock   clock.Clock
}

func NewInteractor(coupons contracts.CouponStore, clk clock.Clock) *Interactor {
	return &Interactor{Coupons: coupons, Clock: clk}
}

// Execute validates the definition and stores the coupon.
func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.Coupon, error) {
	c, err := domain.NewCoupon(req.Params, it.Clock.Now())
	if err != nil {
		return nil, err
	}
	if err := it.Coupons.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

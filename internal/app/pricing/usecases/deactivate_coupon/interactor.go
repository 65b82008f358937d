package deactivate_coupon

import (
	"context"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
)

type Request struct {
	Code string
}

type Interactor struct {
	Coupons contracts.CouponStore
	Clock   clock.Clock
}

func NewInteractor(coupons contracts.CouponStore, clk clock.Clock) *Interactor {
	return &Interactor{Coupons: coupons, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	c, err := it.Coupons.GetCouponByCode(ctx, domain.CanonicalCouponCode(req.Code))
	if err != nil {
		return err
	}
	if err := c.Deactivate(it.Clock.Now()); err != nil {
		return err
	}
	return it.Coupons.Update(ctx, c)
}

// Package transporttest wires every interactor over the in-memory store so
// transport tests can drive real use cases.
package transporttest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/repo"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/store/memory"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/apply_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/create_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/deactivate_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/place_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/purge_expired_discounts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/quote_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/remove_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_price"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/usecasetest"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/validate_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

var Now = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

// App is the fully wired service.
type App struct {
	Store    *memory.Store
	Outbox   *usecasetest.Outbox
	Recorder *commitplan.Recorder
	Notifier *usecasetest.Notifier

	Quote            *quote_order.Interactor
	Place            *place_order.Interactor
	Validate         *validate_coupon.Interactor
	ApplyDiscount    *apply_discount.Interactor
	UpdateDiscount   *update_discount.Interactor
	RemoveDiscount   *remove_discount.Interactor
	UpdatePrice      *update_price.Interactor
	CreateCoupon     *create_coupon.Interactor
	DeactivateCoupon *deactivate_coupon.Interactor
	PurgeExpired     *purge_expired_discounts.Interactor
}

// NewApp seeds a tee (30.00, tops), discounted leggings (49.99 fixed at 39.99),
// an out-of-stock cap, the coupon VERANO20 (20% off, minimum 50) and
// LASTONE (free shipping, one use). Default shipping is 5.00.
func NewApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()
	clk := clock.NewFake(Now)
	store := memory.NewWithClock(clk)

	leggingsOff, err := domain.NewFixedPriceDiscount(domain.MustMoney("39.99"), domain.MustMoney("49.99"), nil)
	require.NoError(t, err)
	store.PutProduct(domain.ReconstructProduct("tee", "Tee", "tops", domain.MustMoney("30"), nil, true, 100, Now, Now))
	store.PutProduct(domain.ReconstructProduct("leggings", "Seamless Leggings", "leggings", domain.MustMoney("49.99"), leggingsOff, true, 100, Now, Now))
	store.PutProduct(domain.ReconstructProduct("cap", "Cap", "accessories", domain.MustMoney("15"), nil, true, 0, Now, Now))

	for _, p := range []domain.CouponParams{
		{Code: "VERANO20", Benefit: domain.PercentageBenefit(20), Scope: domain.AllProducts(), MinimumPurchase: domain.MustMoney("50")},
		{Code: "LASTONE", Benefit: domain.FreeShippingBenefit(), Scope: domain.AllProducts(), UsesTotal: 1},
	} {
		c, err := domain.NewCoupon(p, Now)
		require.NoError(t, err)
		require.NoError(t, store.Insert(ctx, c))
	}

	shipping := domain.MustMoney("5")
	productRepo := repo.NewProductRepo()
	outbox := &usecasetest.Outbox{}
	rec := &commitplan.Recorder{}
	notifier := &usecasetest.Notifier{}

	return &App{
		Store:    store,
		Outbox:   outbox,
		Recorder: rec,
		Notifier: notifier,

		Quote:            quote_order.NewInteractor(store, store, shipping, clk),
		Place:            place_order.NewInteractor(store, store, repo.NewOrderRepo(), outbox, rec, notifier, shipping, clk, nil),
		Validate:         validate_coupon.NewInteractor(store, store, clk),
		ApplyDiscount:    apply_discount.NewInteractor(productRepo, outbox, rec, store, clk),
		UpdateDiscount:   update_discount.NewInteractor(productRepo, outbox, rec, store, clk),
		RemoveDiscount:   remove_discount.NewInteractor(productRepo, outbox, rec, store, clk),
		UpdatePrice:      update_price.NewInteractor(productRepo, outbox, rec, store, clk),
		CreateCoupon:     create_coupon.NewInteractor(store, clk),
		DeactivateCoupon: deactivate_coupon.NewInteractor(store, clk),
		PurgeExpired:     purge_expired_discounts.NewInteractor(productRepo, outbox, rec, store, clk, nil),
	}
}

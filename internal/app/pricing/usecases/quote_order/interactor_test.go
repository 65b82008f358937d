package quote_order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/store/memory"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
)

var now = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	leggingsOff, err := domain.NewFixedPriceDiscount(domain.MustMoney("39.99"), domain.MustMoney("49.99"), nil)
	require.NoError(t, err)
	store.PutProduct(domain.ReconstructProduct("leggings", "Seamless Leggings", "leggings", domain.MustMoney("49.99"), leggingsOff, true, 10, now, now))
	store.PutProduct(domain.ReconstructProduct("tee", "Tee", "tops", domain.MustMoney("25"), nil, true, 10, now, now))

	for _, p := range []domain.CouponParams{
		{Code: "VERANO20", Benefit: domain.PercentageBenefit(20), Scope: domain.AllProducts(), MinimumPurchase: domain.MustMoney("50")},
		{Code: "SHIPFREE", Benefit: domain.FreeShippingBenefit(), Scope: domain.AllProducts()},
		{Code: "SOCKS5", Benefit: domain.FixedAmountBenefit(domain.MustMoney("5")), Scope: domain.CategoryScope("socks")},
	} {
		c, err := domain.NewCoupon(p, now)
		require.NoError(t, err)
		require.NoError(t, store.Insert(ctx, c))
	}
	return store
}

func TestQuoteOrder_WithCoupon(t *testing.T) {
	store := seed(t)
	it := NewInteractor(store, store, domain.MustMoney("4.95"), clock.NewFake(now))

	resp, err := it.Execute(context.Background(), Request{
		Items:      []shared.CartItem{{ProductID: "leggings", Quantity: 1}, {ProductID: "tee", Quantity: 1}},
		CouponCode: "verano20",
	})
	require.NoError(t, err)

	// 39.99 + 25.00 = 64.99, 20% = 12.998 -> 13.00
	assert.Nil(t, resp.CouponRejection)
	assert.Equal(t, "64.99", resp.Totals.Subtotal.String())
	assert.Equal(t, "13.00", resp.Totals.DiscountAmount.String())
	assert.Equal(t, "4.95", resp.Totals.ShippingCost.String())
	assert.Equal(t, "56.94", resp.Totals.Total.String())
	assert.Equal(t, "VERANO20", resp.Totals.CouponCode)
}

func TestQuoteOrder_RejectedCouponStillPrices(t *testing.T) {
	store := seed(t)
	it := NewInteractor(store, store, domain.MustMoney("4.95"), clock.NewFake(now))

	resp, err := it.Execute(context.Background(), Request{
		Items:      []shared.CartItem{{ProductID: "tee", Quantity: 1}},
		CouponCode: "SOCKS5",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CouponRejection)
	assert.Equal(t, domain.ReasonNotApplicableToCart, resp.CouponRejection.Reason)
	assert.Empty(t, resp.Totals.CouponCode)
	assert.Equal(t, "29.95", resp.Totals.Total.String())
}

func TestQuoteOrder_FreeShippingAndOverride(t *testing.T) {
	store := seed(t)
	it := NewInteractor(store, store, domain.MustMoney("4.95"), clock.NewFake(now))

	resp, err := it.Execute(context.Background(), Request{
		Items:        []shared.CartItem{{ProductID: "tee", Quantity: 2}},
		CouponCode:   "SHIPFREE",
		ShippingCost: domain.MustMoney("12"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Totals.FreeShipping)
	assert.Equal(t, "50.00", resp.Totals.Total.String())

	resp, err = it.Execute(context.Background(), Request{
		Items:        []shared.CartItem{{ProductID: "tee", Quantity: 2}},
		ShippingCost: domain.MustMoney("12"),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.CouponRejection)
	assert.Equal(t, "62.00", resp.Totals.Total.String())
}

func TestQuoteOrder_CartErrors(t *testing.T) {
	store := seed(t)
	it := NewInteractor(store, store, nil, clock.NewFake(now))

	_, err := it.Execute(context.Background(), Request{Items: []shared.CartItem{{ProductID: "tee", Quantity: 11}}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = it.Execute(context.Background(), Request{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

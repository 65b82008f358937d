package deactivate_coupon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/store/memory"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
)

func TestDeactivateCoupon(t *testing.T) {
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	store := memory.New()
	ctx := context.Background()
	c, err := domain.NewCoupon(domain.CouponParams{Code: "SHIPFREE", Benefit: domain.FreeShippingBenefit(), Scope: domain.AllProducts()}, now)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, c))

	it := NewInteractor(store, clock.NewFake(now.Add(time.Hour)))
	require.NoError(t, it.Execute(ctx, Request{Code: "shipfree"}))

	got, err := store.GetCouponByCode(ctx, "SHIPFREE")
	require.NoError(t, err)
	assert.False(t, got.IsActive())

	assert.ErrorIs(t, it.Execute(ctx, Request{Code: "SHIPFREE"}), domain.ErrCouponAlreadyInactive)
	assert.ErrorIs(t, it.Execute(ctx, Request{Code: "NOPE"}), domain.ErrCouponNotFound)
}

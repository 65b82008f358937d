package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoupon_CanonicalizesCode(t *testing.T) {
	c, err := NewCoupon(CouponParams{
		Code:    "  verano20 ",
		Benefit: PercentageBenefit(20),
		Scope:   AllProducts(),
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "VERANO20", c.Code())
	assert.True(t, c.IsActive())
	assert.True(t, c.MinimumPurchase().IsZero())
	assert.False(t, c.HasUseLimit())
	assert.False(t, c.IsExhausted())
}

func TestNewCoupon_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		params CouponParams
		want   error
	}{
		{"empty code", CouponParams{Code: "  ", Benefit: FreeShippingBenefit(), Scope: AllProducts()}, ErrInvalidCouponCode},
		{"zero percentage", CouponParams{Code: "A", Benefit: PercentageBenefit(0), Scope: AllProducts()}, ErrInvalidCouponPercentage},
		{"percentage over 100", CouponParams{Code: "A", Benefit: PercentageBenefit(101), Scope: AllProducts()}, ErrInvalidCouponPercentage},
		{"zero amount", CouponParams{Code: "A", Benefit: FixedAmountBenefit(Zero()), Scope: AllProducts()}, ErrInvalidCouponAmount},
		{"missing kind", CouponParams{Code: "A", Scope: AllProducts()}, ErrInvalidCouponKind},
		{"empty category", CouponParams{Code: "A", Benefit: FreeShippingBenefit(), Scope: CategoryScope(" ")}, ErrInvalidCouponScope},
		{"missing scope", CouponParams{Code: "A", Benefit: FreeShippingBenefit()}, ErrInvalidCouponScope},
		{"negative minimum", CouponParams{Code: "A", Benefit: FreeShippingBenefit(), Scope: AllProducts(), MinimumPurchase: NewMoney(-1, 1)}, ErrNegativeMinimumPurchase},
		{"negative uses", CouponParams{Code: "A", Benefit: FreeShippingBenefit(), Scope: AllProducts(), UsesTotal: -1}, ErrNegativeUsesTotal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoupon(tt.params, testNow)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestCoupon_Exhaustion(t *testing.T) {
	unlimited := ReconstructCoupon("FREE", FreeShippingBenefit(), AllProducts(), nil, 0, 1000, nil, true, testNow, testNow)
	assert.False(t, unlimited.IsExhausted(), "usesTotal 0 means unlimited")

	capped := ReconstructCoupon("CAP", FreeShippingBenefit(), AllProducts(), nil, 100, 100, nil, true, testNow, testNow)
	assert.True(t, capped.IsExhausted())

	left := ReconstructCoupon("CAP", FreeShippingBenefit(), AllProducts(), nil, 100, 99, nil, true, testNow, testNow)
	assert.False(t, left.IsExhausted())
}

func TestCoupon_Deactivate(t *testing.T) {
	c, err := NewCoupon(CouponParams{Code: "X", Benefit: FreeShippingBenefit(), Scope: AllProducts()}, testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Minute)
	require.NoError(t, c.Deactivate(later))
	assert.False(t, c.IsActive())
	assert.True(t, c.Changes().Dirty(FieldCouponActive))
	assert.Equal(t, later, c.UpdatedAt())

	assert.ErrorIs(t, c.Deactivate(later), ErrCouponAlreadyInactive)
}

func TestScope_Matches(t *testing.T) {
	line := PricedLine{ProductID: "p-1", Category: "Leggings"}

	assert.True(t, AllProducts().Matches(line))
	assert.True(t, CategoryScope("leggings").Matches(line))
	assert.False(t, CategoryScope("tops").Matches(line))
	assert.True(t, ProductScope("p-1").Matches(line))
	assert.False(t, ProductScope("p-2").Matches(line))
}

func TestErrCouponExhausted_IsConcurrencyConflict(t *testing.T) {
	assert.ErrorIs(t, ErrCouponExhausted, ErrConcurrencyConflict)
	assert.False(t, IsConfigurationError(ErrCouponExhausted))
}

package repo

import (
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/models/m_product"
)

var now = time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

// TestInsertValues_NoDiscount verifies the insert map for a product without a discount.
func TestInsertValues_NoDiscount(t *testing.T) {
	base := domain.MustMoney("19.99")
	p := domain.ReconstructProduct("prod-no-discount", "Crew Socks", "socks", base, nil, true, 12, now, now)

	values := buildInsertValues(p)
	require.NotNil(t, values)

	price, ok := values[m_product.ColBasePrice].(spanner.NullNumeric)
	require.True(t, ok, "base price missing")
	assert.True(t, price.Valid)
	assert.Equal(t, "19.99", price.Numeric.FloatString(2))
	assert.Equal(t, int64(12), values[m_product.ColStock])

	for _, col := range m_product.DiscountColumns {
		v, ok := values[col]
		require.True(t, ok, "expected key %s in insert map", col)
		assert.Nil(t, v, col)
	}

	require.NotNil(t, NewProductRepo().InsertMut(p))
}

// TestInsertValues_WithDiscount verifies the discount columns for both discount kinds.
func TestInsertValues_WithDiscount(t *testing.T) {
	exp := now.Add(48 * time.Hour)

	pct, err := domain.NewPercentageDiscount(25, &exp)
	require.NoError(t, err)
	p := domain.ReconstructProduct("prod-pct", "Tee", "tops", domain.MustMoney("20"), pct, true, 3, now, now)

	values := buildInsertValues(p)
	assert.Equal(t, "percentage", values[m_product.ColDiscountKind])
	assert.Equal(t, int64(25), values[m_product.ColDiscountPercent])
	assert.Nil(t, values[m_product.ColDiscountFixedPrice])
	assert.Equal(t, exp, values[m_product.ColDiscountExpiresAt])

	fixed, err := domain.NewFixedPriceDiscount(domain.MustMoney("39.99"), domain.MustMoney("49.99"), nil)
	require.NoError(t, err)
	p = domain.ReconstructProduct("prod-fixed", "Leggings", "leggings", domain.MustMoney("49.99"), fixed, true, 3, now, now)

	values = buildInsertValues(p)
	assert.Equal(t, "fixed_price", values[m_product.ColDiscountKind])
	assert.Nil(t, values[m_product.ColDiscountPercent])
	fp, ok := values[m_product.ColDiscountFixedPrice].(spanner.NullNumeric)
	require.True(t, ok)
	assert.Equal(t, "39.99", fp.Numeric.FloatString(2))
	assert.Nil(t, values[m_product.ColDiscountExpiresAt])
}

func TestUpdateValues_OnlyDirtyFields(t *testing.T) {
	p := domain.ReconstructProduct("prod-1", "Tee", "tops", domain.MustMoney("20"), nil, true, 3, now, now)
	assert.Nil(t, buildUpdateValues(p), "clean aggregate yields no update")
	assert.Nil(t, NewProductRepo().UpdateMut(p))

	d, _ := domain.NewPercentageDiscount(10, nil)
	later := now.Add(time.Minute)
	require.NoError(t, p.ApplyDiscount(d, later))

	values := buildUpdateValues(p)
	require.NotNil(t, values)
	assert.Equal(t, "percentage", values[m_product.ColDiscountKind])
	assert.Equal(t, later, values[m_product.ColUpdatedAt])
	_, hasPrice := values[m_product.ColBasePrice]
	assert.False(t, hasPrice)
}

func TestUpdateValues_RemovedDiscountClearsColumns(t *testing.T) {
	d, _ := domain.NewPercentageDiscount(10, nil)
	p := domain.ReconstructProduct("prod-1", "Tee", "tops", domain.MustMoney("20"), d, true, 3, now, now)
	require.NoError(t, p.RemoveDiscount(now))

	values := buildUpdateValues(p)
	for _, col := range m_product.DiscountColumns {
		v, ok := values[col]
		require.True(t, ok, col)
		assert.Nil(t, v, col)
	}
}

func TestCouponRow(t *testing.T) {
	exp := now.Add(24 * time.Hour)
	c, err := domain.NewCoupon(domain.CouponParams{
		Code:            "tenoff",
		Benefit:         domain.FixedAmountBenefit(domain.MustMoney("10")),
		Scope:           domain.CategoryScope("socks"),
		MinimumPurchase: domain.MustMoney("30"),
		UsesTotal:       100,
		ExpiresAt:       &exp,
	}, now)
	require.NoError(t, err)

	row := CouponRow(c)
	assert.Equal(t, "TENOFF", row.Code)
	assert.Equal(t, "fixed_amount", row.BenefitKind)
	assert.Equal(t, "10.00", row.BenefitAmount.FloatString(2))
	assert.Equal(t, "category", row.ScopeKind)
	assert.Equal(t, "socks", row.ScopeTarget)
	assert.Equal(t, int64(100), row.UsesTotal)
	assert.Equal(t, int64(0), row.UsesConsumed)

	r := NewCouponRepo()
	assert.NotNil(t, r.InsertMut(c))
	assert.Nil(t, r.UpdateMut(c))
	require.NoError(t, c.Deactivate(now))
	assert.NotNil(t, r.UpdateMut(c))
}

func TestOrderRepo_InsertMuts(t *testing.T) {
	m := domain.MustMoney("10")
	totals := &domain.OrderTotals{
		Lines: []domain.PricedLine{
			{ProductID: "a", Quantity: 1, UnitPrice: m, BasePrice: m, LineTotal: m},
			{ProductID: "b", Quantity: 2, UnitPrice: m, BasePrice: m, LineTotal: m.MultiplyByInt(2)},
		},
		Subtotal:       domain.MustMoney("30"),
		DiscountAmount: domain.Zero(),
		ShippingCost:   domain.Zero(),
		Total:          domain.MustMoney("30"),
	}
	o := domain.NewOrder("ord-1", "a@example.com", totals, now)

	muts := NewOrderRepo().InsertMuts(o)
	assert.Len(t, muts, 3)
	assert.Nil(t, NewOrderRepo().InsertMuts(nil))
}

package e2e

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain/services"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/repo"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/apply_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/place_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/purge_expired_discounts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/remove_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_price"
)

func newProduct(category, base string, stock int) *domain.Product {
	id := uuid.NewString()
	now := clk.Now()
	return domain.ReconstructProduct(id, "E2E "+category, category, domain.MustMoney(base), nil, true, stock, now, now)
}

func newCoupon(ctx context.Context, t *testing.T, params domain.CouponParams) *domain.Coupon {
	t.Helper()
	c, err := domain.NewCoupon(params, clk.Now())
	require.NoError(t, err)
	require.NoError(t, coupons.Insert(ctx, c))
	return c
}

func TestDiscountFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := newProduct("leggings", "49.99", 10)
	seedProduct(ctx, t, p)

	err := applyDisUC.Execute(ctx, apply_discount.Request{
		ProductID: p.ID(),
		Discount:  shared.DiscountSpec{Kind: domain.DiscountKindPercentage, Percentage: 20},
	})
	require.NoError(t, err)

	stored, err := readModel.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, stored.Discount())

	q := services.NewPricingCalculator().EffectivePrice(stored, clk.Now())
	assert.Equal(t, "39.99", q.EffectivePrice.String())
	assert.True(t, q.IsDiscounted)

	events := mustFetchOutboxEvents(ctx, t, spClient, p.ID())
	require.Len(t, events, 1)
	assert.Equal(t, "product.discount_applied", events[0].EventType)
	assert.Equal(t, "pending", events[0].Status)

	err = applyDisUC.Execute(ctx, apply_discount.Request{
		ProductID: p.ID(),
		Discount:  shared.DiscountSpec{Kind: domain.DiscountKindPercentage, Percentage: 10},
	})
	assert.ErrorIs(t, err, domain.ErrDiscountAlreadyExists)
}

func TestCheckoutFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := newProduct("tops", "30", 100)
	seedProduct(ctx, t, p)
	code := "E2E" + uuid.NewString()[:8]
	newCoupon(ctx, t, domain.CouponParams{
		Code:            code,
		Benefit:         domain.PercentageBenefit(20),
		Scope:           domain.AllProducts(),
		MinimumPurchase: domain.MustMoney("50"),
		UsesTotal:       10,
	})

	resp, err := placeUC.Execute(ctx, place_order.Request{
		CustomerEmail: "buyer@example.com",
		Items:         []shared.CartItem{{ProductID: p.ID(), Quantity: 2}},
		CouponCode:    code,
	})
	require.NoError(t, err)
	require.Nil(t, resp.CouponRejection)

	// 60.00 - 12.00 + 4.95
	assert.Equal(t, "52.95", resp.Totals.Total.String())

	total, stored := mustOrderTotal(ctx, t, spClient, resp.OrderID)
	require.True(t, total.Valid)
	assert.Equal(t, "52.95", total.Numeric.FloatString(2))
	assert.Equal(t, code, stored.StringVal)

	assert.EqualValues(t, 1, mustCouponUses(ctx, t, spClient, code))

	events := mustFetchOutboxEvents(ctx, t, spClient, resp.OrderID)
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].EventType)
}

func TestCouponLastUseRace(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	code := "RACE" + uuid.NewString()[:8]
	newCoupon(ctx, t, domain.CouponParams{
		Code:      code,
		Benefit:   domain.FreeShippingBenefit(),
		Scope:     domain.AllProducts(),
		UsesTotal: 1,
	})

	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = coupons.IncrementUse(ctx, code)
		}(i)
	}
	wg.Wait()

	var ok, exhausted int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrCouponExhausted):
			exhausted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, exhausted)
	assert.EqualValues(t, 1, mustCouponUses(ctx, t, spClient, code))
}

func TestPurgeExpiredDiscounts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expires := clk.Now().Add(time.Hour)
	p := newProduct("socks", "12.00", 5)
	seedProduct(ctx, t, p)
	require.NoError(t, applyDisUC.Execute(ctx, apply_discount.Request{
		ProductID: p.ID(),
		Discount:  shared.DiscountSpec{Kind: domain.DiscountKindPercentage, Percentage: 50, ExpiresAt: &expires},
	}))

	clk.Advance(2 * time.Hour)
	defer clk.Advance(-2 * time.Hour)

	var purged []string
	for {
		resp, err := purgeUC.Execute(ctx, purge_expired_discounts.Request{BatchSize: 50})
		require.NoError(t, err)
		purged = append(purged, resp.ProductIDs...)
		if len(resp.ProductIDs) < 50 {
			break
		}
	}
	assert.Contains(t, purged, p.ID())

	stored, err := readModel.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Nil(t, stored.Discount())

	events := mustFetchOutboxEvents(ctx, t, spClient, p.ID())
	require.Len(t, events, 2)
	assert.Equal(t, "product.discount_applied", events[0].EventType)
	assert.Equal(t, "product.discount_removed", events[1].EventType)
}

// interleavingCatalog runs a concurrent write once, right after the first read
// completes and before the caller commits.
type interleavingCatalog struct {
	contracts.CatalogStore
	once  sync.Once
	write func()
}

func (c *interleavingCatalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := c.CatalogStore.GetProduct(ctx, id)
	c.once.Do(c.write)
	return p, err
}

func (c *interleavingCatalog) ListExpiredDiscounts(ctx context.Context, now time.Time, limit int) ([]*domain.Product, error) {
	ps, err := c.CatalogStore.ListExpiredDiscounts(ctx, now, limit)
	c.once.Do(c.write)
	return ps, err
}

func countEvents(events []outboxEvent, eventType string) int {
	n := 0
	for _, e := range events {
		if e.EventType == eventType {
			n++
		}
	}
	return n
}

func TestPurgeKeepsDiscountAppliedAfterListing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expires := clk.Now().Add(time.Hour)
	p := newProduct("hoodies", "80.00", 5)
	seedProduct(ctx, t, p)
	require.NoError(t, applyDisUC.Execute(ctx, apply_discount.Request{
		ProductID: p.ID(),
		Discount:  shared.DiscountSpec{Kind: domain.DiscountKindPercentage, Percentage: 50, ExpiresAt: &expires},
	}))

	clk.Advance(2 * time.Hour)
	defer clk.Advance(-2 * time.Hour)

	outboxRepo := repo.NewOutboxRepo()
	removeUC := remove_discount.NewInteractor(productRepo, outboxRepo, cm, readModel, clk)
	catalog := &interleavingCatalog{CatalogStore: readModel, write: func() {
		// Replace the expired discount with a live one between listing and commit.
		require.NoError(t, removeUC.Execute(ctx, remove_discount.Request{ProductID: p.ID()}))
		require.NoError(t, applyDisUC.Execute(ctx, apply_discount.Request{
			ProductID: p.ID(),
			Discount:  shared.DiscountSpec{Kind: domain.DiscountKindPercentage, Percentage: 30},
		}))
	}}
	purge := purge_expired_discounts.NewInteractor(productRepo, outboxRepo, cm, catalog, clk, nil)

	resp, err := purge.Execute(ctx, purge_expired_discounts.Request{BatchSize: 500})
	require.NoError(t, err)
	assert.NotContains(t, resp.ProductIDs, p.ID())

	stored, err := readModel.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, stored.Discount(), "the live discount must survive the purge")
	assert.Equal(t, 30, stored.Discount().Percentage())
	assert.Nil(t, stored.Discount().ExpiresAt())

	events := mustFetchOutboxEvents(ctx, t, spClient, p.ID())
	assert.Equal(t, 1, countEvents(events, "product.discount_removed"), "only the explicit removal")
	assert.Equal(t, 2, countEvents(events, "product.discount_applied"))
}

func TestUpdatePriceRejectsConcurrentFixedPriceApply(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := newProduct("jackets", "50.00", 5)
	seedProduct(ctx, t, p)

	catalog := &interleavingCatalog{CatalogStore: readModel, write: func() {
		require.NoError(t, applyDisUC.Execute(ctx, apply_discount.Request{
			ProductID: p.ID(),
			Discount:  shared.DiscountSpec{Kind: domain.DiscountKindFixedPrice, FixedPrice: domain.MustMoney("45.00")},
		}))
	}}
	updateUC := update_price.NewInteractor(productRepo, repo.NewOutboxRepo(), cm, catalog, clk)

	err := updateUC.Execute(ctx, update_price.Request{ProductID: p.ID(), BasePrice: domain.MustMoney("40.00")})
	require.ErrorIs(t, err, domain.ErrProductChanged)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	stored, err := readModel.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, "50.00", stored.BasePrice().String())
	require.NotNil(t, stored.Discount())
	assert.LessOrEqual(t, stored.Discount().FixedPrice().Rat().Cmp(stored.BasePrice().Rat()), 0)

	// A retry sees the fixed price and is refused by the domain check.
	err = updateUC.Execute(ctx, update_price.Request{ProductID: p.ID(), BasePrice: domain.MustMoney("40.00")})
	assert.ErrorIs(t, err, domain.ErrFixedPriceAboveBase)
}

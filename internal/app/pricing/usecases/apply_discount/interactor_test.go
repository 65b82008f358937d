package apply_discount

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/store/memory"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/usecasetest"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

var now = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T, d *domain.ProductDiscount) (*Interactor, *usecasetest.ProductRepo, *usecasetest.Outbox, *commitplan.Recorder) {
	t.Helper()
	store := memory.New()
	store.PutProduct(domain.ReconstructProduct("p1", "Leggings", "leggings", domain.MustMoney("49.99"), d, true, 10, now, now))
	repo := &usecasetest.ProductRepo{}
	outbox := &usecasetest.Outbox{}
	rec := &commitplan.Recorder{}
	return NewInteractor(repo, outbox, rec, store, clock.NewFake(now)), repo, outbox, rec
}

func TestApplyDiscount_Percentage(t *testing.T) {
	it, repo, outbox, rec := setup(t, nil)

	err := it.Execute(context.Background(), Request{
		ProductID: "p1",
		Discount:  shared.DiscountSpec{Kind: domain.DiscountKindPercentage, Percentage: 20},
	})
	require.NoError(t, err)

	require.Len(t, repo.Updated, 1)
	assert.Equal(t, 20, repo.Updated[0].Discount().Percentage())
	assert.Equal(t, []string{"product.discount_applied"}, outbox.Types())
	require.Len(t, rec.Plans(), 1)
	assert.Equal(t, 2, rec.Plans()[0].Len())
	assert.Equal(t, []string{"p1"}, repo.Guarded)
	assert.Len(t, rec.Plans()[0].Guards(), 1, "write is conditional on the row still matching what was read")
}

func TestApplyDiscount_FixedPriceAboveBase(t *testing.T) {
	it, _, _, rec := setup(t, nil)

	err := it.Execute(context.Background(), Request{
		ProductID: "p1",
		Discount:  shared.DiscountSpec{Kind: domain.DiscountKindFixedPrice, FixedPrice: domain.MustMoney("59.99")},
	})
	assert.ErrorIs(t, err, domain.ErrFixedPriceAboveBase)
	assert.True(t, domain.IsConfigurationError(err))
	assert.Empty(t, rec.Plans())
}

func TestApplyDiscount_AlreadyDiscounted(t *testing.T) {
	existing, _ := domain.NewPercentageDiscount(10, nil)
	it, _, _, rec := setup(t, existing)

	err := it.Execute(context.Background(), Request{
		ProductID: "p1",
		Discount:  shared.DiscountSpec{Kind: domain.DiscountKindPercentage, Percentage: 30},
	})
	assert.ErrorIs(t, err, domain.ErrDiscountAlreadyExists)
	assert.Empty(t, rec.Plans())
}

func TestApplyDiscount_UnknownProduct(t *testing.T) {
	it, _, _, _ := setup(t, nil)
	err := it.Execute(context.Background(), Request{
		ProductID: "missing",
		Discount:  shared.DiscountSpec{Kind: domain.DiscountKindPercentage, Percentage: 30},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

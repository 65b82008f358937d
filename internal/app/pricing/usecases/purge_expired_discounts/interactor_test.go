package purge_expired_discounts

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/store/memory"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/usecasetest"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

var now = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	for id, exp := range map[string]*time.Time{"a": &past, "b": &past, "live": &future} {
		d, err := domain.NewPercentageDiscount(10, exp)
		require.NoError(t, err)
		store.PutProduct(domain.ReconstructProduct(id, id, "tops", domain.MustMoney("10"), d, true, 1, now, now))
	}
	return store
}

func TestPurgeExpiredDiscounts(t *testing.T) {
	repo := &usecasetest.ProductRepo{}
	outbox := &usecasetest.Outbox{}
	rec := &commitplan.Recorder{}
	it := NewInteractor(repo, outbox, rec, seed(t), clock.NewFake(now), nil)

	resp, err := it.Execute(context.Background(), Request{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, resp.ProductIDs)
	assert.Equal(t, []string{"product.discount_removed", "product.discount_removed"}, outbox.Types())
	require.Len(t, rec.Plans(), 1, "one batch, one transaction")
	assert.Equal(t, 4, rec.Plans()[0].Len())
}

func TestPurgeExpiredDiscounts_BatchSize(t *testing.T) {
	it := NewInteractor(&usecasetest.ProductRepo{}, &usecasetest.Outbox{}, &commitplan.Recorder{}, seed(t), clock.NewFake(now), nil)

	resp, err := it.Execute(context.Background(), Request{BatchSize: 1})
	require.NoError(t, err)
	assert.Len(t, resp.ProductIDs, 1)
}

func TestPurgeExpiredDiscounts_CommitFailure(t *testing.T) {
	rec := &commitplan.Recorder{Err: errors.New("spanner unavailable")}
	it := NewInteractor(&usecasetest.ProductRepo{}, &usecasetest.Outbox{}, rec, seed(t), clock.NewFake(now), nil)

	_, err := it.Execute(context.Background(), Request{})
	assert.Error(t, err)
}

// conflictingCommitter rejects the first n plans the way a failed guard would.
type conflictingCommitter struct {
	commitplan.Recorder
	conflicts int
	calls     int
}

func (c *conflictingCommitter) Apply(ctx context.Context, plan *commitplan.Plan) error {
	c.calls++
	if c.calls <= c.conflicts {
		return fmt.Errorf("product a: %w", domain.ErrProductChanged)
	}
	return c.Recorder.Apply(ctx, plan)
}

type countingCatalog struct {
	*memory.Store
	lists int
}

func (c *countingCatalog) ListExpiredDiscounts(ctx context.Context, at time.Time, limit int) ([]*domain.Product, error) {
	c.lists++
	return c.Store.ListExpiredDiscounts(ctx, at, limit)
}

func TestPurgeExpiredDiscounts_GuardsEveryPurgedProduct(t *testing.T) {
	repo := &usecasetest.ProductRepo{}
	rec := &commitplan.Recorder{}
	it := NewInteractor(repo, &usecasetest.Outbox{}, rec, seed(t), clock.NewFake(now), nil)

	_, err := it.Execute(context.Background(), Request{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, repo.Guarded, "live discount is never listed")
	require.Len(t, rec.Plans(), 1)
	assert.Len(t, rec.Plans()[0].Guards(), 2, "one guard per purged product")
}

func TestPurgeExpiredDiscounts_RelistsAfterConcurrentChange(t *testing.T) {
	catalog := &countingCatalog{Store: seed(t)}
	committer := &conflictingCommitter{conflicts: 1}
	it := NewInteractor(&usecasetest.ProductRepo{}, &usecasetest.Outbox{}, committer, catalog, clock.NewFake(now), nil)

	resp, err := it.Execute(context.Background(), Request{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, resp.ProductIDs)
	assert.Equal(t, 2, catalog.lists)
	assert.Len(t, committer.Plans(), 1)
}

func TestPurgeExpiredDiscounts_GivesUpAfterRepeatedConflicts(t *testing.T) {
	catalog := &countingCatalog{Store: seed(t)}
	committer := &conflictingCommitter{conflicts: maxAttempts}
	it := NewInteractor(&usecasetest.ProductRepo{}, &usecasetest.Outbox{}, committer, catalog, clock.NewFake(now), nil)

	_, err := it.Execute(context.Background(), Request{})
	assert.ErrorIs(t, err, domain.ErrProductChanged)
	assert.Equal(t, maxAttempts, catalog.lists)
	assert.Empty(t, committer.Plans())
}

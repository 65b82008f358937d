package purge_expired_discounts

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// DefaultBatchSize bounds how many products one run touches.
const DefaultBatchSize = 100

const maxAttempts = 3

type Request struct {
	BatchSize int
}

type Response struct {
	ProductIDs []string
}

type Interactor struct {
	ProductRepo contracts.ProductRepo
	OutboxRepo  contracts.OutboxRepo
	Committer   contracts.Committer
	Catalog     contracts.CatalogStore
	Clock       clock.Clock
	Logger      *zap.Logger
}

func NewInteractor(repo contracts.ProductRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, catalog contracts.CatalogStore, clk clock.Clock, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		ProductRepo: repo,
		OutboxRepo:  outboxRepo,
		Committer:   committer,
		Catalog:     catalog,
		Clock:       clk,
		Logger:      logger,
	}
}

// Execute removes discounts that expired before now, one batch in one transaction.
// Evaluation already ignores expired discounts; this only tidies storage.
// Every product is guarded, so a discount written after the listing survives:
// the batch is rejected and listed again.
func (it *Interactor) Execute(ctx context.Context, req Request) (*Response, error) {
	size := req.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var resp *Response
		resp, err = it.purge(ctx, size)
		if !errors.Is(err, domain.ErrProductChanged) {
			return resp, err
		}
		it.Logger.Info("purge batch raced a pricing change, relisting", zap.Int("attempt", attempt), zap.Error(err))
	}
	return nil, err
}

func (it *Interactor) purge(ctx context.Context, size int) (*Response, error) {
	now := it.Clock.Now()
	products, err := it.Catalog.ListExpiredDiscounts(ctx, now, size)
	if err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	resp := &Response{ProductIDs: make([]string, 0, len(products))}
	for _, p := range products {
		guard := it.ProductRepo.UnchangedGuard(p)
		if !p.PurgeExpiredDiscount(now) {
			continue
		}
		plan.Add(it.ProductRepo.UpdateMut(p))
		plan.Guard(guard)
		if err := shared.AppendOutboxEvents(plan, it.OutboxRepo, p.DomainEvents(), now); err != nil {
			return nil, err
		}
		resp.ProductIDs = append(resp.ProductIDs, p.ID())
	}

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return nil, err
	}
	if len(resp.ProductIDs) > 0 {
		it.Logger.Info("purged expired discounts", zap.Int("count", len(resp.ProductIDs)))
	}
	return resp, nil
}

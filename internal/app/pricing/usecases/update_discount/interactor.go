package update_discount

import (
	"context"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// Request replaces the discount already attached to a product.
type Request struct {
	ProductID string
	Discount  shared.DiscountSpec
}

type Interactor struct {
	ProductRepo contracts.ProductRepo
	OutboxRepo  contracts.OutboxRepo
	Committer   contracts.Committer
	Catalog     contracts.CatalogStore
	Clock       clock.Clock
}

func NewInteractor(repo contracts.ProductRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, catalog contracts.CatalogStore, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo: repo,
		OutboxRepo:  outboxRepo,
		Committer:   committer,
		Catalog:     catalog,
		Clock:       clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	now := it.Clock.Now()

	product, err := it.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return err
	}
	guard := it.ProductRepo.UnchangedGuard(product)

	discount, err := req.Discount.Build(product.BasePrice())
	if err != nil {
		return err
	}
	if err := product.UpdateDiscount(discount, now); err != nil {
		return err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.ProductRepo.UpdateMut(product))
	plan.Guard(guard)
	if err := shared.AppendOutboxEvents(plan, it.OutboxRepo, product.DomainEvents(), now); err != nil {
		return err
	}
	return it.Committer.Apply(ctx, plan)
}

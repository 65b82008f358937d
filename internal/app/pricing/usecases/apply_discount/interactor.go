package apply_discount

import (
	"context"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// Request to apply a discount to a product that has none.
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

	// 1. Load aggregate
	product, err := it.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return err
	}
	guard := it.ProductRepo.UnchangedGuard(product)

	// 2. Domain call
	discount, err := req.Discount.Build(product.BasePrice())
	if err != nil {
		return err
	}
	if err := product.ApplyDiscount(discount, now); err != nil {
		return err
	}

	// 3. Build commit plan
	plan := commitplan.NewPlan()
	plan.Add(it.ProductRepo.UpdateMut(product))
	plan.Guard(guard)
	if err := shared.AppendOutboxEvents(plan, it.OutboxRepo, product.DomainEvents(), now); err != nil {
		return err
	}

	// 4. Apply plan
	return it.Committer.Apply(ctx, plan)
}

package queries

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/queries/get_product"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/queries/list_expired_discounts"
)

// SpannerReadModel is an infrastructure adapter that satisfies contracts.CatalogStore.
// It composes the individual query implementations.
type SpannerReadModel struct {
	getQ     *get_product.SpannerGetProductQuery
	expiredQ *list_expired_discounts.SpannerListExpiredDiscountsQuery
}

func NewSpannerReadModel(client *spanner.Client) *SpannerReadModel {
	return &SpannerReadModel{
		getQ:     get_product.NewSpannerGetProductQuery(client),
		expiredQ: list_expired_discounts.NewSpannerListExpiredDiscountsQuery(client),
	}
}

func (rm *SpannerReadModel) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return rm.getQ.GetProduct(ctx, productID)
}

func (rm *SpannerReadModel) ListExpiredDiscounts(ctx context.Context, now time.Time, limit int) ([]*domain.Product, error) {
	return rm.expiredQ.ListExpiredDiscounts(ctx, now, limit)
}

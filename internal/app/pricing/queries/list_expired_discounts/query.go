package list_expired_discounts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/queries/get_product"
)

// DefaultLimit bounds one purge batch when the caller passes a non-positive limit.
const DefaultLimit = 100

type SpannerListExpiredDiscountsQuery struct {
	Client *spanner.Client
}

func NewSpannerListExpiredDiscountsQuery(client *spanner.Client) *SpannerListExpiredDiscountsQuery {
	return &SpannerListExpiredDiscountsQuery{Client: client}
}

// ListExpiredDiscounts returns products whose discount expired strictly before now,
// oldest expiry first.
func (q *SpannerListExpiredDiscountsQuery) ListExpiredDiscounts(ctx context.Context, now time.Time, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	stmt := spanner.Statement{
		SQL: `SELECT ` + get_product.Columns + `
		      FROM products
		      WHERE discount_kind IS NOT NULL
		        AND discount_expires_at IS NOT NULL
		        AND discount_expires_at < @now
		      ORDER BY discount_expires_at ASC
		      LIMIT @limit`,
		Params: map[string]interface{}{
			"now":   now.UTC(),
			"limit": int64(limit),
		},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*domain.Product, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		p, err := get_product.ScanProduct(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
}

package get_product

import (
	"context"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// SpannerGetProductQuery is a concrete query implementation that reads from Spanner directly.
type SpannerGetProductQuery struct {
	Client *spanner.Client
}

func NewSpannerGetProductQuery(client *spanner.Client) *SpannerGetProductQuery {
	return &SpannerGetProductQuery{Client: client}
}

// GetProduct loads one product with its discount, or domain.ErrProductNotFound.
func (q *SpannerGetProductQuery) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + Columns + ` FROM products WHERE product_id = @id`,
		Params: map[string]interface{}{"id": productID},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return ScanProduct(row)
}

package contracts

import (
	"context"
	"time"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// CatalogStore is the read side of the product catalog.
// active and stock are owned by the catalog; pricing only reads them.
type CatalogStore interface {
	// GetProduct returns domain.ErrProductNotFound for unknown ids.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ListExpiredDiscounts returns up to limit products whose discount expired before now.
	ListExpiredDiscounts(ctx context.Context, now time.Time, limit int) ([]*domain.Product, error)
}

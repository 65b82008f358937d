package shared

import (
	"context"
	"errors"
	"fmt"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// CartItem is a requested cart line before the product is loaded.
type CartItem struct {
	ProductID string
	Quantity  int
}

// LoadCart resolves cart items against the catalog and enforces purchasability:
// positive quantity, active product with stock, quantity within stock.
func LoadCart(ctx context.Context, catalog contracts.CatalogStore, items []CartItem) ([]domain.OrderLine, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	lines := make([]domain.OrderLine, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("product %s: %w", it.ProductID, domain.ErrInvalidQuantity)
		}
		p, err := catalog.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.IsPurchasable() {
			return nil, fmt.Errorf("product %s: %w", it.ProductID, domain.ErrProductUnavailable)
		}
		if it.Quantity > p.Stock() {
			return nil, fmt.Errorf("product %s: %w", it.ProductID, domain.ErrInsufficientStock)
		}
		lines = append(lines, domain.OrderLine{Product: p, Quantity: it.Quantity})
	}
	return lines, nil
}

// LookupCoupon loads a coupon by its canonical code. An unknown code yields a
// nil coupon so the validator reports NotFound.
func LookupCoupon(ctx context.Context, coupons contracts.CouponStore, code string) (*domain.Coupon, error) {
	c, err := coupons.GetCouponByCode(ctx, domain.CanonicalCouponCode(code))
	if errors.Is(err, domain.ErrCouponNotFound) {
		return nil, nil
	}
	return c, err
}

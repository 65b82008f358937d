package contracts

import (
	"context"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// CouponStore persists coupons. Codes passed in are canonical (upper case).
type CouponStore interface {
	// GetCouponByCode returns domain.ErrCouponNotFound for unknown codes.
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)

	// IncrementUse consumes one use. The check "uses left" and the increment
	// are a single atomic step: when the cap is reached it returns
	// domain.ErrCouponExhausted and leaves the counter untouched.
	IncrementUse(ctx context.Context, code string) error

	// Insert returns domain.ErrCouponAlreadyExists on a duplicate code.
	Insert(ctx context.Context, c *domain.Coupon) error

	// Update writes the coupon's dirty fields.
	Update(ctx context.Context, c *domain.Coupon) error
}

package domain

import (
	"errors"
	"fmt"
)

// Error categories. Leaf errors wrap one of these so callers can branch on
// either the specific failure or its category with errors.Is.
var (
	// ErrConfiguration marks a malformed discount or coupon definition.
	// These are rejected at creation time and never reach evaluation.
	ErrConfiguration = errors.New("invalid pricing configuration")

	// ErrConcurrencyConflict marks a lost race on a shared counter.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// Domain errors for the ProductDiscount value object
var (
	// ErrInvalidDiscountPercentage indicates the percentage is outside [1,100].
	ErrInvalidDiscountPercentage = fmt.Errorf("%w: discount percentage must be between 1 and 100", ErrConfiguration)

	// ErrNegativeFixedPrice indicates a fixed-price discount below zero.
	ErrNegativeFixedPrice = fmt.Errorf("%w: fixed price cannot be negative", ErrConfiguration)

	// ErrFixedPriceAboveBase indicates a fixed price higher than the product's base price.
	ErrFixedPriceAboveBase = fmt.Errorf("%w: fixed price cannot exceed the base price", ErrConfiguration)

	// ErrInvalidDiscountKind indicates a discount that is neither percentage nor fixed price.
	ErrInvalidDiscountKind = fmt.Errorf("%w: discount kind must be percentage or fixed_price", ErrConfiguration)

	// ErrInvalidExpiry indicates an expiry that is neither a date nor an RFC3339 timestamp.
	ErrInvalidExpiry = fmt.Errorf("%w: expiry must be YYYY-MM-DD or RFC3339", ErrConfiguration)

	// ErrDiscountAlreadyExists indicates an attempt to apply a discount when one is already set.
	ErrDiscountAlreadyExists = errors.New("product already has a discount")

	// ErrNoDiscount indicates an update of a discount that does not exist.
	ErrNoDiscount = errors.New("product has no discount")
)

// Domain errors for Product
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrNegativePrice indicates an attempt to set a negative base price.
	ErrNegativePrice = fmt.Errorf("%w: price cannot be negative", ErrConfiguration)

	// ErrProductUnavailable indicates an inactive or out-of-stock product in a cart.
	ErrProductUnavailable = errors.New("product is not available for purchase")

	// ErrProductChanged indicates the product's pricing columns moved between
	// the read and the commit of a pricing change.
	ErrProductChanged = fmt.Errorf("%w: product changed since it was read", ErrConcurrencyConflict)

	// ErrInsufficientStock indicates a cart line asking for more units than are in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Domain errors for Coupon
var (
	ErrInvalidCouponCode       = fmt.Errorf("%w: coupon code must be 1-64 characters", ErrConfiguration)
	ErrInvalidCouponKind       = fmt.Errorf("%w: coupon kind is required", ErrConfiguration)
	ErrInvalidCouponPercentage = fmt.Errorf("%w: coupon percentage must be between 1 and 100", ErrConfiguration)
	ErrInvalidCouponAmount     = fmt.Errorf("%w: coupon amount must be greater than zero", ErrConfiguration)
	ErrInvalidCouponScope      = fmt.Errorf("%w: coupon scope target is required", ErrConfiguration)
	ErrNegativeMinimumPurchase = fmt.Errorf("%w: minimum purchase cannot be negative", ErrConfiguration)
	ErrNegativeUsesTotal       = fmt.Errorf("%w: uses total cannot be negative", ErrConfiguration)

	// ErrCouponNotFound is what coupon stores return for an unknown code.
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponAlreadyExists indicates a duplicate canonical code.
	ErrCouponAlreadyExists = errors.New("coupon already exists")

	// ErrCouponAlreadyInactive indicates a deactivation of an inactive coupon.
	ErrCouponAlreadyInactive = errors.New("coupon is already inactive")

	// ErrCouponExhausted is returned by IncrementUse when the conditional
	// increment found no remaining uses.
	ErrCouponExhausted = fmt.Errorf("%w: coupon has no remaining uses", ErrConcurrencyConflict)

	// ErrCouponDeactivated and ErrCouponExpired are returned by IncrementUse
	// when the coupon stopped being redeemable after it was validated.
	ErrCouponDeactivated = fmt.Errorf("%w: coupon was deactivated", ErrConcurrencyConflict)
	ErrCouponExpired     = fmt.Errorf("%w: coupon has expired", ErrConcurrencyConflict)

	// ErrUnknownCouponBenefit indicates a stored coupon whose benefit kind
	// this build does not know how to price.
	ErrUnknownCouponBenefit = fmt.Errorf("%w: unknown coupon benefit kind", ErrConfiguration)
)

// Domain errors for order composition
var (
	// ErrInvalidQuantity indicates a negative (or, at the checkout boundary, zero) line quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrNegativeShippingCost indicates a negative shipping quote.
	ErrNegativeShippingCost = errors.New("shipping cost cannot be negative")

	// ErrInvalidCouponResult indicates a caller passed an Invalid coupon result
	// to the composer instead of dropping the coupon first.
	ErrInvalidCouponResult = errors.New("invalid coupon result cannot be composed into an order")

	// ErrEmptyCart indicates an order without lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// IsConfigurationError reports whether err is (or wraps) a configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

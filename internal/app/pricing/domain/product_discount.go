package domain

import (
	"fmt"
	"time"
)

// DiscountKind tags which variant a ProductDiscount holds.
type DiscountKind string

const (
	// DiscountKindPercentage takes a percentage off the base price.
	DiscountKindPercentage DiscountKind = "percentage"

	// DiscountKindFixedPrice replaces the base price with a fixed price.
	DiscountKindFixedPrice DiscountKind = "fixed_price"
)

// ProductDiscount is a price override attached to a catalog item.
// Exactly one variant is set. An optional expiry makes the discount inert
// once passed; it stays attached until a maintenance purge removes it.
// ProductDiscount is immutable once created.
type ProductDiscount struct {
	kind       DiscountKind
	percentage int
	fixedPrice *Money
	expiresAt  *time.Time
}

// NewPercentageDiscount creates a percentage discount. percentage must be in [1,100].
func NewPercentageDiscount(percentage int, expiresAt *time.Time) (*ProductDiscount, error) {
	if percentage < 1 || percentage > 100 {
		return nil, ErrInvalidDiscountPercentage
	}
	return &ProductDiscount{
		kind:       DiscountKindPercentage,
		percentage: percentage,
		expiresAt:  copyTime(expiresAt),
	}, nil
}

// NewFixedPriceDiscount creates a fixed-price discount.
// fixedPrice must be within [0, basePrice].
func NewFixedPriceDiscount(fixedPrice, basePrice *Money, expiresAt *time.Time) (*ProductDiscount, error) {
	if fixedPrice == nil || fixedPrice.IsNegative() {
		return nil, ErrNegativeFixedPrice
	}
	if basePrice != nil && fixedPrice.GreaterThan(basePrice) {
		return nil, ErrFixedPriceAboveBase
	}
	return &ProductDiscount{
		kind:       DiscountKindFixedPrice,
		fixedPrice: fixedPrice,
		expiresAt:  copyTime(expiresAt),
	}, nil
}

// ReconstructProductDiscount rebuilds a discount from persisted state without validation.
func ReconstructProductDiscount(kind DiscountKind, percentage int, fixedPrice *Money, expiresAt *time.Time) *ProductDiscount {
	return &ProductDiscount{
		kind:       kind,
		percentage: percentage,
		fixedPrice: fixedPrice,
		expiresAt:  copyTime(expiresAt),
	}
}

func (d *ProductDiscount) Kind() DiscountKind {
	return d.kind
}

// Percentage returns the percentage off (1-100), or 0 for fixed-price discounts.
func (d *ProductDiscount) Percentage() int {
	return d.percentage
}

// FixedPrice returns the fixed price, or nil for percentage discounts.
func (d *ProductDiscount) FixedPrice() *Money {
	return d.fixedPrice
}

func (d *ProductDiscount) ExpiresAt() *time.Time {
	return copyTime(d.expiresAt)
}

// IsExpiredAt reports whether expiresAt is set and strictly before now.
func (d *ProductDiscount) IsExpiredAt(now time.Time) bool {
	return d.expiresAt != nil && d.expiresAt.Before(now)
}

// Equals reports whether d and o describe the same discount. Two nils are equal.
func (d *ProductDiscount) Equals(o *ProductDiscount) bool {
	if d == nil || o == nil {
		return d == nil && o == nil
	}
	if d.kind != o.kind || d.percentage != o.percentage {
		return false
	}
	if (d.fixedPrice == nil) != (o.fixedPrice == nil) ||
		(d.fixedPrice != nil && !d.fixedPrice.Equals(o.fixedPrice)) {
		return false
	}
	if (d.expiresAt == nil) != (o.expiresAt == nil) {
		return false
	}
	return d.expiresAt == nil || d.expiresAt.Equal(*o.expiresAt)
}

// ApplyTo returns the unrounded discounted price for basePrice, never below zero.
func (d *ProductDiscount) ApplyTo(basePrice *Money) *Money {
	switch d.kind {
	case DiscountKindPercentage:
		off := basePrice.MultiplyByFraction(int64(d.percentage), 100)
		return basePrice.Subtract(off).ClampZero()
	case DiscountKindFixedPrice:
		return d.fixedPrice.ClampZero()
	}
	return basePrice
}

// ValidateAgainst checks the variant's invariant against a base price.
func (d *ProductDiscount) ValidateAgainst(basePrice *Money) error {
	if d.kind == DiscountKindFixedPrice && d.fixedPrice.GreaterThan(basePrice) {
		return ErrFixedPriceAboveBase
	}
	return nil
}

func (d *ProductDiscount) String() string {
	var s string
	switch d.kind {
	case DiscountKindPercentage:
		s = fmt.Sprintf("%d%% off", d.percentage)
	case DiscountKindFixedPrice:
		s = fmt.Sprintf("fixed price %s", d.fixedPrice)
	default:
		s = "unknown discount"
	}
	if d.expiresAt != nil {
		s += " until " + d.expiresAt.UTC().Format(time.RFC3339)
	}
	return s
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

package domain

import (
	"strings"
	"time"
)

// MaxCouponCodeLength bounds canonical coupon codes.
const MaxCouponCodeLength = 64

// Field constants for coupon change tracking
const (
	FieldCouponActive = "active"
)

// BenefitKind tags what a coupon gives the customer.
type BenefitKind string

const (
	BenefitPercentage   BenefitKind = "percentage"
	BenefitFixedAmount  BenefitKind = "fixed_amount"
	BenefitFreeShipping BenefitKind = "free_shipping"
)

// Benefit is the coupon's reward: a percentage off, a fixed amount off,
// or free shipping. The zero value is not a valid benefit.
type Benefit struct {
	kind       BenefitKind
	percentage int
	amount     *Money
}

// PercentageBenefit takes p percent off the applicable subtotal.
func PercentageBenefit(p int) Benefit {
	return Benefit{kind: BenefitPercentage, percentage: p}
}

// FixedAmountBenefit takes a fixed amount off, capped at the applicable subtotal.
func FixedAmountBenefit(amount *Money) Benefit {
	return Benefit{kind: BenefitFixedAmount, amount: amount}
}

// FreeShippingBenefit waives the shipping cost.
func FreeShippingBenefit() Benefit {
	return Benefit{kind: BenefitFreeShipping}
}

// ReconstructBenefit rebuilds a Benefit from persisted columns.
func ReconstructBenefit(kind BenefitKind, percentage int, amount *Money) Benefit {
	return Benefit{kind: kind, percentage: percentage, amount: amount}
}

func (b Benefit) Kind() BenefitKind {
	return b.kind
}

func (b Benefit) Percentage() int {
	return b.percentage
}

func (b Benefit) Amount() *Money {
	return b.amount
}

func (b Benefit) validate() error {
	switch b.kind {
	case BenefitPercentage:
		if b.percentage < 1 || b.percentage > 100 {
			return ErrInvalidCouponPercentage
		}
	case BenefitFixedAmount:
		if b.amount == nil || !b.amount.IsPositive() {
			return ErrInvalidCouponAmount
		}
	case BenefitFreeShipping:
	default:
		return ErrInvalidCouponKind
	}
	return nil
}

// ScopeKind tags which cart lines a coupon applies to.
type ScopeKind string

const (
	ScopeAllProducts ScopeKind = "all_products"
	ScopeCategory    ScopeKind = "category"
	ScopeProduct     ScopeKind = "product"
)

// Scope restricts a coupon to the whole cart, one category or one product.
type Scope struct {
	kind   ScopeKind
	target string
}

func AllProducts() Scope {
	return Scope{kind: ScopeAllProducts}
}

func CategoryScope(name string) Scope {
	return Scope{kind: ScopeCategory, target: strings.TrimSpace(name)}
}

func ProductScope(productID string) Scope {
	return Scope{kind: ScopeProduct, target: strings.TrimSpace(productID)}
}

// ReconstructScope rebuilds a Scope from persisted columns.
func ReconstructScope(kind ScopeKind, target string) Scope {
	return Scope{kind: kind, target: target}
}

func (s Scope) Kind() ScopeKind {
	return s.kind
}

// Target is the category name or product id; empty for AllProducts.
func (s Scope) Target() string {
	return s.target
}

// Matches reports whether a priced cart line falls inside the scope.
// Category names compare case-insensitively.
func (s Scope) Matches(line PricedLine) bool {
	switch s.kind {
	case ScopeAllProducts:
		return true
	case ScopeCategory:
		return strings.EqualFold(strings.TrimSpace(line.Category), s.target)
	case ScopeProduct:
		return line.ProductID == s.target
	}
	return false
}

func (s Scope) validate() error {
	switch s.kind {
	case ScopeAllProducts:
		return nil
	case ScopeCategory, ScopeProduct:
		if s.target == "" {
			return ErrInvalidCouponScope
		}
		return nil
	}
	return ErrInvalidCouponScope
}

// CouponParams collects the admin-supplied definition of a coupon.
type CouponParams struct {
	Code            string
	Benefit         Benefit
	Scope           Scope
	MinimumPurchase *Money
	// UsesTotal caps consumption; 0 means unlimited.
	UsesTotal int
	ExpiresAt *time.Time
}

// Coupon is a cart-level, code-activated discount.
type Coupon struct {
	code            string
	benefit         Benefit
	scope           Scope
	minimumPurchase *Money
	usesTotal       int
	usesConsumed    int
	expiresAt       *time.Time
	active          bool
	createdAt       time.Time
	updatedAt       time.Time
	changes         *ChangeTracker
}

// CanonicalCouponCode trims and upper-cases a customer-entered code.
func CanonicalCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewCoupon validates an admin definition and creates an active coupon.
// Every failure is a configuration error.
func NewCoupon(params CouponParams, now time.Time) (*Coupon, error) {
	code := CanonicalCouponCode(params.Code)
	if code == "" || len(code) > MaxCouponCodeLength {
		return nil, ErrInvalidCouponCode
	}
	if err := params.Benefit.validate(); err != nil {
		return nil, err
	}
	if err := params.Scope.validate(); err != nil {
		return nil, err
	}

	minimum := params.MinimumPurchase
	if minimum == nil {
		minimum = Zero()
	}
	if minimum.IsNegative() {
		return nil, ErrNegativeMinimumPurchase
	}
	if params.UsesTotal < 0 {
		return nil, ErrNegativeUsesTotal
	}

	return &Coupon{
		code:            code,
		benefit:         params.Benefit,
		scope:           params.Scope,
		minimumPurchase: minimum,
		usesTotal:       params.UsesTotal,
		expiresAt:       copyTime(params.ExpiresAt),
		active:          true,
		createdAt:       now,
		updatedAt:       now,
		changes:         NewChangeTracker(),
	}, nil
}

// ReconstructCoupon rebuilds a Coupon from persisted state.
func ReconstructCoupon(
	code string,
	benefit Benefit,
	scope Scope,
	minimumPurchase *Money,
	usesTotal, usesConsumed int,
	expiresAt *time.Time,
	active bool,
	createdAt, updatedAt time.Time,
) *Coupon {
	if minimumPurchase == nil {
		minimumPurchase = Zero()
	}
	return &Coupon{
		code:            code,
		benefit:         benefit,
		scope:           scope,
		minimumPurchase: minimumPurchase,
		usesTotal:       usesTotal,
		usesConsumed:    usesConsumed,
		expiresAt:       copyTime(expiresAt),
		active:          active,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		changes:         NewChangeTracker(),
	}
}

func (c *Coupon) Code() string {
	return c.code
}

func (c *Coupon) Benefit() Benefit {
	return c.benefit
}

func (c *Coupon) Scope() Scope {
	return c.scope
}

func (c *Coupon) MinimumPurchase() *Money {
	return c.minimumPurchase
}

func (c *Coupon) UsesTotal() int {
	return c.usesTotal
}

func (c *Coupon) UsesConsumed() int {
	return c.usesConsumed
}

func (c *Coupon) ExpiresAt() *time.Time {
	return copyTime(c.expiresAt)
}

func (c *Coupon) IsActive() bool {
	return c.active
}

func (c *Coupon) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Coupon) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Coupon) Changes() *ChangeTracker {
	return c.changes
}

func (c *Coupon) HasUseLimit() bool {
	return c.usesTotal > 0
}

func (c *Coupon) IsExpiredAt(t time.Time) bool {
	return c.expiresAt != nil && c.expiresAt.Before(t)
}

// IsExhausted reports whether a capped coupon has no uses left.
func (c *Coupon) IsExhausted() bool {
	return c.HasUseLimit() && c.usesConsumed >= c.usesTotal
}

// Deactivate flips the kill switch.
func (c *Coupon) Deactivate(now time.Time) error {
	if !c.active {
		return ErrCouponAlreadyInactive
	}
	c.active = false
	c.changes.MarkDirty(FieldCouponActive)
	c.updatedAt = now
	return nil
}

package domain

import (
	"time"
)

// Field constants for change tracking
const (
	FieldBasePrice = "base_price"
	FieldDiscount  = "discount"
)

// Product is the pricing view of a catalog item. The catalog store owns
// name, activity and stock; this aggregate only mutates price and discount.
type Product struct {
	id        string
	name      string
	category  string
	basePrice *Money
	discount  *ProductDiscount
	active    bool
	stock     int
	createdAt time.Time
	updatedAt time.Time
	changes   *ChangeTracker
	events    []DomainEvent
}

// ReconstructProduct reconstructs a Product from persisted state.
// Used by stores when loading from the database.
func ReconstructProduct(
	id, name, category string,
	basePrice *Money,
	discount *ProductDiscount,
	active bool,
	stock int,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:        id,
		name:      name,
		category:  category,
		basePrice: basePrice,
		discount:  discount,
		active:    active,
		stock:     stock,
		createdAt: createdAt,
		updatedAt: updatedAt,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}
}

// Getters

func (p *Product) ID() string {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Category() string {
	return p.category
}

func (p *Product) BasePrice() *Money {
	return p.basePrice
}

func (p *Product) Discount() *ProductDiscount {
	return p.discount
}

func (p *Product) IsActive() bool {
	return p.active
}

func (p *Product) Stock() int {
	return p.stock
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Product) Changes() *ChangeTracker {
	return p.changes
}

func (p *Product) DomainEvents() []DomainEvent {
	return p.events
}

// PricingSnapshot is the state a pricing write is computed from.
type PricingSnapshot struct {
	BasePrice *Money
	Discount  *ProductDiscount
}

// PricingSnapshot captures the current base price and discount. Both are
// immutable values, so the snapshot stays valid after later domain calls.
func (p *Product) PricingSnapshot() PricingSnapshot {
	return PricingSnapshot{BasePrice: p.basePrice, Discount: p.discount}
}

func (s PricingSnapshot) Equals(o PricingSnapshot) bool {
	return s.BasePrice.Equals(o.BasePrice) && s.Discount.Equals(o.Discount)
}

// IsPurchasable reports whether the product can be put in an order at all.
// Out-of-stock products are unavailable regardless of any discount.
func (p *Product) IsPurchasable() bool {
	return p.active && p.stock > 0
}

// HasActiveDiscount returns true if a discount is attached and not expired at now.
func (p *Product) HasActiveDiscount(now time.Time) bool {
	return p.discount != nil && !p.discount.IsExpiredAt(now)
}

// Business Methods

// ApplyDiscount attaches a discount. A product can carry a single discount;
// an expired one still attached counts as absent and is replaced.
func (p *Product) ApplyDiscount(discount *ProductDiscount, now time.Time) error {
	if p.HasActiveDiscount(now) {
		return ErrDiscountAlreadyExists
	}
	if err := discount.ValidateAgainst(p.basePrice); err != nil {
		return err
	}

	p.discount = discount
	p.changes.MarkDirty(FieldDiscount)
	p.updatedAt = now

	p.events = append(p.events, newDiscountEvent(p.id, discount, now, false))
	return nil
}

// UpdateDiscount replaces the attached discount.
func (p *Product) UpdateDiscount(discount *ProductDiscount, now time.Time) error {
	if p.discount == nil {
		return ErrNoDiscount
	}
	if err := discount.ValidateAgainst(p.basePrice); err != nil {
		return err
	}

	p.discount = discount
	p.changes.MarkDirty(FieldDiscount)
	p.updatedAt = now

	p.events = append(p.events, newDiscountEvent(p.id, discount, now, true))
	return nil
}

// RemoveDiscount removes any existing discount from the product.
func (p *Product) RemoveDiscount(now time.Time) error {
	if p.discount == nil {
		return nil // No discount to remove
	}
	p.clearDiscount(now, false)
	return nil
}

// PurgeExpiredDiscount drops the discount if it expired before now.
// It reports whether anything was removed.
func (p *Product) PurgeExpiredDiscount(now time.Time) bool {
	if p.discount == nil || !p.discount.IsExpiredAt(now) {
		return false
	}
	p.clearDiscount(now, true)
	return true
}

func (p *Product) clearDiscount(now time.Time, expired bool) {
	p.discount = nil
	p.changes.MarkDirty(FieldDiscount)
	p.updatedAt = now

	p.events = append(p.events, &DiscountRemovedEvent{
		ProductID: p.id,
		Expired:   expired,
		RemovedAt: now,
	})
}

// UpdatePrice changes the base price of the product. A fixed-price discount
// must stay at or below the new base price.
func (p *Product) UpdatePrice(newPrice *Money, now time.Time) error {
	if newPrice == nil || newPrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.discount != nil {
		if err := p.discount.ValidateAgainst(newPrice); err != nil {
			return err
		}
	}

	if !newPrice.Equals(p.basePrice) {
		oldPrice := p.basePrice
		p.basePrice = newPrice
		p.changes.MarkDirty(FieldBasePrice)
		p.updatedAt = now

		p.events = append(p.events, &PriceChangedEvent{
			ProductID: p.id,
			OldPrice:  oldPrice,
			NewPrice:  newPrice,
			ChangedAt: now,
		})
	}

	return nil
}

// ClearEvents clears the accumulated domain events.
// Should be called after events have been published.
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}

func newDiscountEvent(productID string, d *ProductDiscount, now time.Time, update bool) DomainEvent {
	e := DiscountSetEvent{
		ProductID:  productID,
		Kind:       d.Kind(),
		Percentage: d.Percentage(),
		FixedPrice: d.FixedPrice(),
		ExpiresAt:  d.ExpiresAt(),
		SetAt:      now,
	}
	if update {
		return &DiscountUpdatedEvent{DiscountSetEvent: e}
	}
	return &DiscountAppliedEvent{DiscountSetEvent: e}
}

package domain

import "time"

// DomainEvent is a marker interface for all domain events.
// Domain events represent facts about things that have happened in the domain.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// DiscountSetEvent carries the discount fields shared by apply and update events.
type DiscountSetEvent struct {
	ProductID  string
	Kind       DiscountKind
	Percentage int
	FixedPrice *Money
	ExpiresAt  *time.Time
	SetAt      time.Time
}

func (e *DiscountSetEvent) AggregateID() string {
	return e.ProductID
}

func (e *DiscountSetEvent) OccurredAt() time.Time {
	return e.SetAt
}

// DiscountAppliedEvent is raised when a discount is attached to a product.
type DiscountAppliedEvent struct {
	DiscountSetEvent
}

func (e *DiscountAppliedEvent) EventType() string {
	return "product.discount_applied"
}

// DiscountUpdatedEvent is raised when an attached discount is replaced.
type DiscountUpdatedEvent struct {
	DiscountSetEvent
}

func (e *DiscountUpdatedEvent) EventType() string {
	return "product.discount_updated"
}

// DiscountRemovedEvent is raised when a discount is removed from a product,
// either by an admin or by the expired-discount purge.
type DiscountRemovedEvent struct {
	ProductID string
	Expired   bool
	RemovedAt time.Time
}

func (e *DiscountRemovedEvent) EventType() string {
	return "product.discount_removed"
}

func (e *DiscountRemovedEvent) AggregateID() string {
	return e.ProductID
}

func (e *DiscountRemovedEvent) OccurredAt() time.Time {
	return e.RemovedAt
}

// PriceChangedEvent is raised when the base price of a product changes.
type PriceChangedEvent struct {
	ProductID string
	OldPrice  *Money
	NewPrice  *Money
	ChangedAt time.Time
}

func (e *PriceChangedEvent) EventType() string {
	return "price.changed"
}

func (e *PriceChangedEvent) AggregateID() string {
	return e.ProductID
}

func (e *PriceChangedEvent) OccurredAt() time.Time {
	return e.ChangedAt
}

// OrderPlacedEvent is raised when a priced order is persisted.
type OrderPlacedEvent struct {
	OrderID        string
	CustomerEmail  string
	CouponCode     string
	Subtotal       *Money
	DiscountAmount *Money
	ShippingCost   *Money
	Total          *Money
	PlacedAt       time.Time
}

func (e *OrderPlacedEvent) EventType() string {
	return "order.placed"
}

func (e *OrderPlacedEvent) AggregateID() string {
	return e.OrderID
}

func (e *OrderPlacedEvent) OccurredAt() time.Time {
	return e.PlacedAt
}

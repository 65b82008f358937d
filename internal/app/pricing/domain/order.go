package domain

import "time"

// OrderLine is a cart line before pricing.
type OrderLine struct {
	Product  *Product
	Quantity int
}

// PricedLine is a cart line after the product discount evaluator ran.
type PricedLine struct {
	ProductID    string
	Category     string
	Quantity     int
	UnitPrice    *Money
	BasePrice    *Money
	IsDiscounted bool
	LineTotal    *Money
}

// OrderTotals is the composed price of a cart.
// Total = max(0, Subtotal - DiscountAmount) + ShippingCost, where ShippingCost
// is already zero when FreeShipping is set.
type OrderTotals struct {
	Lines          []PricedLine
	Subtotal       *Money
	DiscountAmount *Money
	ShippingCost   *Money
	FreeShipping   bool
	CouponCode     string
	Total          *Money
}

// Order is a placed, priced order handed to the order store.
type Order struct {
	id            string
	customerEmail string
	totals        *OrderTotals
	placedAt      time.Time
	events        []DomainEvent
}

// NewOrder records a placed order and raises OrderPlacedEvent.
func NewOrder(id, customerEmail string, totals *OrderTotals, now time.Time) *Order {
	o := &Order{
		id:            id,
		customerEmail: customerEmail,
		totals:        totals,
		placedAt:      now,
	}
	o.events = append(o.events, &OrderPlacedEvent{
		OrderID:        id,
		CustomerEmail:  customerEmail,
		CouponCode:     totals.CouponCode,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		ShippingCost:   totals.ShippingCost,
		Total:          totals.Total,
		PlacedAt:       now,
	})
	return o
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

func (o *Order) Totals() *OrderTotals {
	return o.totals
}

func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

func (o *Order) DomainEvents() []DomainEvent {
	return o.events
}

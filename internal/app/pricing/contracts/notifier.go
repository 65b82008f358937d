package contracts

import (
	"context"
	"time"
)

// OrderConfirmation is what the notification sender gets after an order is placed.
// Amounts are decimal strings with two places.
type OrderConfirmation struct {
	OrderID        string    `json:"order_id"`
	CustomerEmail  string    `json:"customer_email"`
	CouponCode     string    `json:"coupon_code,omitempty"`
	DiscountAmount string    `json:"discount_amount"`
	Total          string    `json:"total"`
	PlacedAt       time.Time `json:"placed_at"`
}

// Notifier hands confirmations to whatever renders and sends them.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, c OrderConfirmation) error
}

package shared

import (
	"encoding/json"
	"fmt"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload suitable for the outbox.
// Money is written as a two-place decimal string.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.DiscountAppliedEvent:
		payload = discountSetPayload(&e.DiscountSetEvent)
	case *domain.DiscountUpdatedEvent:
		payload = discountSetPayload(&e.DiscountSetEvent)
	case *domain.DiscountRemovedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"expired":     e.Expired,
			"removed_at":  e.RemovedAt,
			"occurred_at": e.OccurredAt(),
		}
	case *domain.PriceChangedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"old_price":   moneyString(e.OldPrice),
			"new_price":   moneyString(e.NewPrice),
			"changed_at":  e.ChangedAt,
			"occurred_at": e.OccurredAt(),
		}
	case *domain.OrderPlacedEvent:
		payload = map[string]interface{}{
			"order_id":        e.OrderID,
			"customer_email":  e.CustomerEmail,
			"coupon_code":     e.CouponCode,
			"subtotal":        moneyString(e.Subtotal),
			"discount_amount": moneyString(e.DiscountAmount),
			"shipping_cost":   moneyString(e.ShippingCost),
			"total":           moneyString(e.Total),
			"placed_at":       e.PlacedAt,
		}
	}

	if payload != nil {
		b, err := json.Marshal(payload)
		return string(b), err
	}

	// Fallback: try to marshal the event directly.
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}

func discountSetPayload(e *domain.DiscountSetEvent) map[string]interface{} {
	p := map[string]interface{}{
		"product_id":  e.ProductID,
		"kind":        string(e.Kind),
		"set_at":      e.SetAt,
		"occurred_at": e.OccurredAt(),
	}
	switch e.Kind {
	case domain.DiscountKindPercentage:
		p["percentage"] = e.Percentage
	case domain.DiscountKindFixedPrice:
		p["fixed_price"] = moneyString(e.FixedPrice)
	}
	if e.ExpiresAt != nil {
		p["expires_at"] = e.ExpiresAt.UTC()
	}
	return p
}

func moneyString(m *domain.Money) string {
	if m == nil {
		return ""
	}
	return m.String()
}

package shared

import (
	"time"

	"github.com/google/uuid"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// AppendOutboxEvents adds one pending outbox row per domain event to plan.
func AppendOutboxEvents(plan *commitplan.Plan, outbox contracts.OutboxRepo, events []domain.DomainEvent, now time.Time) error {
	for _, ev := range events {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		plan.Add(outbox.InsertMut(&contracts.OutboxEvent{
			EventID:      uuid.New().String(),
			EventType:    ev.EventType(),
			AggregateID:  ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       contracts.OutboxStatusPending,
			CreatedAtUTC: now.UTC(),
		}))
	}
	return nil
}

// Package usecasetest holds fakes shared by the use case tests.
package usecasetest

import (
	"context"
	"sync"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// Outbox records every event handed to InsertMut.
type Outbox struct {
	mu     sync.Mutex
	events []contracts.OutboxEvent
}

func (o *Outbox) InsertMut(e *contracts.OutboxEvent) *spanner.Mutation {
	if e == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, *e)
	return spanner.Insert("outbox_events", []string{"event_id"}, []interface{}{e.EventID})
}

// Types returns the recorded event types in order.
func (o *Outbox) Types() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.EventType)
	}
	return out
}

func (o *Outbox) Events() []contracts.OutboxEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]contracts.OutboxEvent(nil), o.events...)
}

// Notifier records confirmations; Err makes every call fail.
type Notifier struct {
	mu   sync.Mutex
	sent []contracts.OrderConfirmation
	Err  error
}

func (n *Notifier) NotifyOrderPlaced(_ context.Context, c contracts.OrderConfirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.sent = append(n.sent, c)
	return nil
}

func (n *Notifier) Sent() []contracts.OrderConfirmation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]contracts.OrderConfirmation(nil), n.sent...)
}

// ProductRepo records the products it was asked to persist and guard.
type ProductRepo struct {
	mu      sync.Mutex
	Updated []*domain.Product
	Guarded []string
}

func (r *ProductRepo) UnchangedGuard(p *domain.Product) commitplan.Guard {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Guarded = append(r.Guarded, p.ID())
	return func(context.Context, *spanner.ReadWriteTransaction) error { return nil }
}

func (r *ProductRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	if p == nil || !p.Changes().HasChanges() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updated = append(r.Updated, p)
	return spanner.Update("products", []string{"product_id"}, []interface{}{p.ID()})
}

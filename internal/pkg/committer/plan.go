package committer

import (
	"context"

	"cloud.google.com/go/spanner"
)

// Guard runs inside the commit transaction before any mutation is buffered.
// A non-nil error aborts the commit and is returned to the caller.
type Guard func(ctx context.Context, txn *spanner.ReadWriteTransaction) error

// Plan is an ordered batch of mutations applied in one read-write transaction.
type Plan struct {
	mutations []*spanner.Mutation
	guards    []Guard
}

func NewPlan() *Plan {
	return &Plan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends m; nil mutations are skipped so repos can return nil for "no change".
func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

// AddAll appends every non-nil mutation in ms.
func (p *Plan) AddAll(ms []*spanner.Mutation) {
	for _, m := range ms {
		p.Add(m)
	}
}

// Guard registers a precondition checked at commit time.
func (p *Plan) Guard(g Guard) {
	if g == nil {
		return
	}
	p.guards = append(p.guards, g)
}

func (p *Plan) Guards() []Guard {
	return p.guards
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}

package committer

import (
	"context"
	"sync"
)

// Recorder collects plans instead of applying them. Tests use it in place of
// the Spanner adapter; Err makes every Apply fail.
type Recorder struct {
	mu    sync.Mutex
	plans []*Plan
	Err   error
}

func (r *Recorder) Apply(_ context.Context, plan *Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	r.plans = append(r.plans, plan)
	return nil
}

// Plans returns the applied plans in order.
func (r *Recorder) Plans() []*Plan {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Plan(nil), r.plans...)
}

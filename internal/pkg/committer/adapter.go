package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
)

// Adapter applies plans against Spanner.
type Adapter struct {
	client *spanner.Client
	logger *zap.Logger
}

func NewAdapter(client *spanner.Client, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{client: client, logger: logger}
}

// Apply checks the plan's guards and buffers every mutation in a single
// read-write transaction. Guards see the rows as of that transaction, so a
// write committed after the plan was built fails the guard instead of being
// overwritten.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	if a.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	commitTS, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		for _, g := range plan.Guards() {
			if err := g(ctx, tx); err != nil {
				return err
			}
		}
		return tx.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("committer: apply %d mutations: %w", plan.Len(), err)
	}

	a.logger.Debug("plan committed", zap.Int("mutations", plan.Len()), zap.Time("commit_ts", commitTS))
	return nil
}

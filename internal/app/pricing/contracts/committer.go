package contracts

import (
	"context"

	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// Committer applies a plan of mutations atomically. Use cases build plans
// and never talk to the database driver directly.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}

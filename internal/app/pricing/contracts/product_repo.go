package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// ProductRepo is the write-side repository for the pricing columns of products.
// Methods return Spanner mutations; they do not apply them.
type ProductRepo interface {
	// UpdateMut returns a mutation for the product's dirty fields (or nil).
	UpdateMut(p *domain.Product) *spanner.Mutation

	// UnchangedGuard fails the commit if the product's pricing moved after p
	// was loaded. Call it before changing p.
	UnchangedGuard(p *domain.Product) commitplan.Guard
}

// OrderRepo builds the mutations that persist a placed order and its lines.
type OrderRepo interface {
	InsertMuts(o *domain.Order) []*spanner.Mutation
}

package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/queries/get_product"
	"github.com/murkotick/storefront-pricing-service/internal/models/m_product"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// ProductRepo is the Spanner implementation of the write-side repository.
// It returns *spanner.Mutation objects but never applies them.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// discountColumns maps a domain discount onto its column shape.
func discountColumns(d *domain.ProductDiscount) *m_product.Discount {
	if d == nil {
		return nil
	}
	out := &m_product.Discount{
		Kind:      string(d.Kind()),
		ExpiresAt: d.ExpiresAt(),
	}
	switch d.Kind() {
	case domain.DiscountKindPercentage:
		out.Percent = int64(d.Percentage())
	case domain.DiscountKindFixedPrice:
		out.FixedPrice = d.FixedPrice().Rat()
	}
	return out
}

// buildInsertValues constructs the values map used for insertion.
// Unexported so tests in the same package can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(p *domain.Product) map[string]interface{} {
	return m_product.BuildInsertMap(p.ID(), p.Name(), p.Category(), p.BasePrice().Rat(),
		discountColumns(p.Discount()), p.IsActive(), int64(p.Stock()),
		p.CreatedAt().UTC(), p.UpdatedAt().UTC())
}

// buildUpdateValues returns the dirty pricing columns, or nil when nothing changed.
func buildUpdateValues(p *domain.Product) map[string]interface{} {
	if p == nil || p.Changes() == nil || !p.Changes().HasChanges() {
		return nil
	}

	updates := map[string]interface{}{}
	if p.Changes().Dirty(domain.FieldBasePrice) {
		updates[m_product.ColBasePrice] = spanner.NullNumeric{Numeric: *p.BasePrice().Rat(), Valid: true}
	}
	if p.Changes().Dirty(domain.FieldDiscount) {
		for col, v := range m_product.DiscountValues(discountColumns(p.Discount())) {
			updates[col] = v
		}
	}
	if len(updates) == 0 {
		return nil
	}

	updates[m_product.ColUpdatedAt] = p.UpdatedAt().UTC()
	return updates
}

// InsertMut builds an Insert mutation for a product row. Products are created
// by the catalog; this is used for seeding.
func (r *ProductRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	return m_product.InsertMutation(buildInsertValues(p))
}

// UpdateMut builds an Update mutation using the aggregate's ChangeTracker.
// It updates only dirty fields and always stamps updated_at when there are changes.
func (r *ProductRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	updates := buildUpdateValues(p)
	if updates == nil {
		return nil
	}
	return m_product.UpdateMutation(p.ID(), updates)
}

// UnchangedGuard re-reads the product inside the commit transaction and fails
// with domain.ErrProductChanged when its base price or discount no longer
// match what p held when the guard was built. Build it before the domain call.
func (r *ProductRepo) UnchangedGuard(p *domain.Product) commitplan.Guard {
	id, want := p.ID(), p.PricingSnapshot()
	return func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{id}, get_product.ColumnList)
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("reread product %s: %w", id, err)
		}
		cur, err := get_product.ScanProduct(row)
		if err != nil {
			return err
		}
		if !cur.PricingSnapshot().Equals(want) {
			return fmt.Errorf("product %s: %w", id, domain.ErrProductChanged)
		}
		return nil
	}
}

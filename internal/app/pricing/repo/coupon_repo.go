package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/models/m_coupon"
)

// CouponRepo builds coupon mutations. Use counting does not go through here;
// it needs a read-write transaction (see store/spannerstore).
type CouponRepo struct{}

func NewCouponRepo() *CouponRepo {
	return &CouponRepo{}
}

// CouponRow flattens a coupon into its column shape.
func CouponRow(c *domain.Coupon) m_coupon.Row {
	row := m_coupon.Row{
		Code:            c.Code(),
		BenefitKind:     string(c.Benefit().Kind()),
		BenefitPercent:  int64(c.Benefit().Percentage()),
		ScopeKind:       string(c.Scope().Kind()),
		ScopeTarget:     c.Scope().Target(),
		MinimumPurchase: c.MinimumPurchase().Rat(),
		UsesTotal:       int64(c.UsesTotal()),
		UsesConsumed:    int64(c.UsesConsumed()),
		ExpiresAt:       c.ExpiresAt(),
		Active:          c.IsActive(),
		CreatedAt:       c.CreatedAt().UTC(),
		UpdatedAt:       c.UpdatedAt().UTC(),
	}
	if a := c.Benefit().Amount(); a != nil {
		row.BenefitAmount = a.Rat()
	}
	return row
}

func (r *CouponRepo) InsertMut(c *domain.Coupon) *spanner.Mutation {
	if c == nil {
		return nil
	}
	return m_coupon.InsertMutation(m_coupon.BuildInsertMap(CouponRow(c)))
}

// UpdateMut writes the coupon's dirty fields, or returns nil.
func (r *CouponRepo) UpdateMut(c *domain.Coupon) *spanner.Mutation {
	if c == nil || !c.Changes().HasChanges() {
		return nil
	}
	updates := map[string]interface{}{}
	if c.Changes().Dirty(domain.FieldCouponActive) {
		updates[m_coupon.ColActive] = c.IsActive()
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_coupon.ColUpdatedAt] = c.UpdatedAt().UTC()
	return m_coupon.UpdateMutation(c.Code(), updates)
}

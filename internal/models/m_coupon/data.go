package m_coupon

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Row is the column-level shape of a coupon.
type Row struct {
	Code            string
	BenefitKind     string
	BenefitPercent  int64
	BenefitAmount   *big.Rat
	ScopeKind       string
	ScopeTarget     string
	MinimumPurchase *big.Rat
	UsesTotal       int64
	UsesConsumed    int64
	ExpiresAt       *time.Time
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BuildInsertMap maps a Row onto the coupons columns.
func BuildInsertMap(r Row) map[string]interface{} {
	m := map[string]interface{}{
		ColCode:            r.Code,
		ColBenefitKind:     r.BenefitKind,
		ColBenefitPercent:  nil,
		ColBenefitAmount:   nil,
		ColScopeKind:       r.ScopeKind,
		ColScopeTarget:     nil,
		ColMinimumPurchase: spanner.NullNumeric{Numeric: *r.MinimumPurchase, Valid: true},
		ColUsesTotal:       r.UsesTotal,
		ColUsesConsumed:    r.UsesConsumed,
		ColExpiresAt:       nil,
		ColActive:          r.Active,
		ColCreatedAt:       r.CreatedAt,
		ColUpdatedAt:       r.UpdatedAt,
	}
	if r.BenefitPercent > 0 {
		m[ColBenefitPercent] = r.BenefitPercent
	}
	if r.BenefitAmount != nil {
		m[ColBenefitAmount] = spanner.NullNumeric{Numeric: *r.BenefitAmount, Valid: true}
	}
	if r.ScopeTarget != "" {
		m[ColScopeTarget] = r.ScopeTarget
	}
	if r.ExpiresAt != nil {
		m[ColExpiresAt] = r.ExpiresAt.UTC()
	}
	return m
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation updates the given columns of the coupon keyed by code.
func UpdateMutation(code string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColCode}
	vals := []interface{}{code}
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Update(TableName, cols, vals)
}

// IncrementMutation sets uses_consumed to the already-incremented value read in the same transaction.
func IncrementMutation(code string, usesConsumed int64, updatedAt time.Time) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{ColCode, ColUsesConsumed, ColUpdatedAt},
		[]interface{}{code, usesConsumed, updatedAt})
}

package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Discount is the column-level shape of a product discount. A nil *Discount clears the columns.
type Discount struct {
	Kind       string
	Percent    int64
	FixedPrice *big.Rat
	ExpiresAt  *time.Time
}

// DiscountValues returns the discount columns for d, all NULL when d is nil.
func DiscountValues(d *Discount) map[string]interface{} {
	m := map[string]interface{}{
		ColDiscountKind:       nil,
		ColDiscountPercent:    nil,
		ColDiscountFixedPrice: nil,
		ColDiscountExpiresAt:  nil,
	}
	if d == nil {
		return m
	}
	m[ColDiscountKind] = d.Kind
	if d.Percent > 0 {
		m[ColDiscountPercent] = d.Percent
	}
	if d.FixedPrice != nil {
		m[ColDiscountFixedPrice] = spanner.NullNumeric{Numeric: *d.FixedPrice, Valid: true}
	}
	if d.ExpiresAt != nil {
		m[ColDiscountExpiresAt] = d.ExpiresAt.UTC()
	}
	return m
}

// BuildInsertMap prepares a full products row. The catalog owns inserts;
// this is used for seeding and tests.
func BuildInsertMap(productID, name, category string, basePrice *big.Rat, d *Discount,
	active bool, stock int64, createdAt, updatedAt time.Time) map[string]interface{} {

	m := map[string]interface{}{
		ColProductID: productID,
		ColName:      name,
		ColCategory:  category,
		ColBasePrice: spanner.NullNumeric{Numeric: *basePrice, Valid: true},
		ColActive:    active,
		ColStock:     stock,
		ColCreatedAt: createdAt,
		ColUpdatedAt: updatedAt,
	}
	for col, v := range DiscountValues(d) {
		m[col] = v
	}
	return m
}

// InsertMutation builds a spanner.Insert mutation from a column map.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols, vals := split(values)
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation. values must not contain product_id.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColProductID}
	vals := []interface{}{productID}
	c, v := split(values)
	return spanner.Update(TableName, append(cols, c...), append(vals, v...))
}

func split(values map[string]interface{}) ([]string, []interface{}) {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return cols, vals
}

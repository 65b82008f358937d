package get_product

import (
	"math/big"
	"strings"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

// ColumnList is the column order ScanProduct expects.
var ColumnList = []string{
	"product_id", "name", "category", "base_price",
	"discount_kind", "discount_percent", "discount_fixed_price", "discount_expires_at",
	"active", "stock", "created_at", "updated_at",
}

// Columns is ColumnList as a select list.
var Columns = strings.Join(ColumnList, ", ")

// ScanProduct reconstructs a Product aggregate from a row selected with Columns.
func ScanProduct(row *spanner.Row) (*domain.Product, error) {
	var (
		id, name, category   string
		basePrice            big.Rat
		discountKind         spanner.NullString
		discountPercent      spanner.NullInt64
		discountFixed        spanner.NullNumeric
		discountExpires      spanner.NullTime
		active               bool
		stock                int64
		createdAt, updatedAt time.Time
	)

	if err := row.Columns(&id, &name, &category, &basePrice,
		&discountKind, &discountPercent, &discountFixed, &discountExpires,
		&active, &stock, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var discount *domain.ProductDiscount
	if discountKind.Valid {
		var expiresAt *time.Time
		if discountExpires.Valid {
			e := discountExpires.Time.UTC()
			expiresAt = &e
		}
		var fixed *domain.Money
		if discountFixed.Valid {
			fixed = domain.NewMoneyFromRat(&discountFixed.Numeric)
		}
		discount = domain.ReconstructProductDiscount(
			domain.DiscountKind(discountKind.StringVal),
			int(discountPercent.Int64),
			fixed,
			expiresAt,
		)
	}

	return domain.ReconstructProduct(
		id, name, category,
		domain.NewMoneyFromRat(&basePrice),
		discount,
		active,
		int(stock),
		createdAt.UTC(),
		updatedAt.UTC(),
	), nil
}

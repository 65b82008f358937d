package get_coupon

import (
	"context"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/models/m_coupon"
)

// SpannerGetCouponQuery reads a single coupon row by its canonical code.
type SpannerGetCouponQuery struct {
	Client *spanner.Client
}

func NewSpannerGetCouponQuery(client *spanner.Client) *SpannerGetCouponQuery {
	return &SpannerGetCouponQuery{Client: client}
}

// GetCouponByCode returns domain.ErrCouponNotFound for unknown codes.
func (q *SpannerGetCouponQuery) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return ReadCoupon(ctx, q.Client.Single(), code)
}

// RowReader is satisfied by both read-only and read-write transactions.
type RowReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

// ReadCoupon reads and reconstructs a coupon through txn.
func ReadCoupon(ctx context.Context, txn RowReader, code string) (*domain.Coupon, error) {
	row, err := txn.ReadRow(ctx, m_coupon.TableName, spanner.Key{code}, m_coupon.AllColumns)
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, domain.ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return ScanCoupon(row)
}

// ScanCoupon reconstructs a coupon from a row read with m_coupon.AllColumns.
func ScanCoupon(row *spanner.Row) (*domain.Coupon, error) {
	var (
		code, benefitKind, scopeKind string
		benefitPercent               spanner.NullInt64
		benefitAmount                spanner.NullNumeric
		scopeTarget                  spanner.NullString
		minimum                      big.Rat
		usesTotal, usesConsumed      int64
		expiresAt                    spanner.NullTime
		active                       bool
		createdAt, updatedAt         time.Time
	)
	if err := row.Columns(&code, &benefitKind, &benefitPercent, &benefitAmount,
		&scopeKind, &scopeTarget, &minimum,
		&usesTotal, &usesConsumed, &expiresAt, &active,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var amount *domain.Money
	if benefitAmount.Valid {
		amount = domain.NewMoneyFromRat(&benefitAmount.Numeric)
	}
	var exp *time.Time
	if expiresAt.Valid {
		e := expiresAt.Time.UTC()
		exp = &e
	}

	return domain.ReconstructCoupon(
		code,
		domain.ReconstructBenefit(domain.BenefitKind(benefitKind), int(benefitPercent.Int64), amount),
		domain.ReconstructScope(domain.ScopeKind(scopeKind), scopeTarget.StringVal),
		domain.NewMoneyFromRat(&minimum),
		int(usesTotal), int(usesConsumed),
		exp,
		active,
		createdAt.UTC(), updatedAt.UTC(),
	), nil
}

package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

const uniqueViolation = "23505"

const selectCoupon = `
SELECT code, benefit_kind, benefit_percent, benefit_amount::text, scope_kind, scope_target,
       minimum_purchase::text, uses_total, uses_consumed, expires_at, active, created_at, updated_at
FROM coupons
WHERE code = $1`

// CouponStore keeps coupons in PostgreSQL. The use counter is advanced with a
// single conditional UPDATE so concurrent checkouts never oversell a coupon.
type CouponStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewCouponStore(pool *pgxpool.Pool, logger *zap.Logger) *CouponStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CouponStore{pool: pool, logger: logger}
}

func (s *CouponStore) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var (
		c                          couponRow
		benefitPercent             *int32
		benefitAmount, scopeTarget *string
	)
	err := s.pool.QueryRow(ctx, selectCoupon, code).Scan(
		&c.code, &c.benefitKind, &benefitPercent, &benefitAmount, &c.scopeKind, &scopeTarget,
		&c.minimumPurchase, &c.usesTotal, &c.usesConsumed, &c.expiresAt, &c.active, &c.createdAt, &c.updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get coupon %s: %w", code, err)
	}
	if benefitPercent != nil {
		c.benefitPercent = int(*benefitPercent)
	}
	if benefitAmount != nil {
		c.benefitAmount = *benefitAmount
	}
	if scopeTarget != nil {
		c.scopeTarget = *scopeTarget
	}
	return c.toDomain()
}

// IncrementUse consumes one use of an active, unexpired coupon that is
// unlimited or below its cap. When no row qualifies the current row is read
// back to name the reason.
func (s *CouponStore) IncrementUse(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, `
UPDATE coupons
SET uses_consumed = uses_consumed + 1, updated_at = NOW()
WHERE code = $1
  AND active
  AND (expires_at IS NULL OR expires_at >= NOW())
  AND (uses_total = 0 OR uses_consumed < uses_total)`, code)
	if err != nil {
		return fmt.Errorf("increment coupon %s: %w", code, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var active, expired bool
	err = s.pool.QueryRow(ctx, `
SELECT active, (expires_at IS NOT NULL AND expires_at < NOW())
FROM coupons WHERE code = $1`, code).Scan(&active, &expired)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCouponNotFound
	}
	if err != nil {
		return fmt.Errorf("check coupon %s: %w", code, err)
	}
	switch {
	case !active:
		return domain.ErrCouponDeactivated
	case expired:
		return domain.ErrCouponExpired
	}
	s.logger.Info("coupon increment lost race", zap.String("code", code))
	return domain.ErrCouponExhausted
}

func (s *CouponStore) Insert(ctx context.Context, c *domain.Coupon) error {
	var percent *int
	if c.Benefit().Kind() == domain.BenefitPercentage {
		p := c.Benefit().Percentage()
		percent = &p
	}
	var amount, target *string
	if a := c.Benefit().Amount(); a != nil {
		v := a.String()
		amount = &v
	}
	if t := c.Scope().Target(); t != "" {
		target = &t
	}

	_, err := s.pool.Exec(ctx, `
INSERT INTO coupons (code, benefit_kind, benefit_percent, benefit_amount, scope_kind, scope_target,
                     minimum_purchase, uses_total, uses_consumed, expires_at, active, created_at, updated_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7::numeric, $8, $9, $10, $11, $12, $13)`,
		c.Code(), string(c.Benefit().Kind()), percent, amount, string(c.Scope().Kind()), target,
		c.MinimumPurchase().String(), c.UsesTotal(), c.UsesConsumed(), c.ExpiresAt(), c.IsActive(),
		c.CreatedAt().UTC(), c.UpdatedAt().UTC())

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrCouponAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert coupon %s: %w", c.Code(), err)
	}
	return nil
}

func (s *CouponStore) Update(ctx context.Context, c *domain.Coupon) error {
	if !c.Changes().Dirty(domain.FieldCouponActive) {
		return nil
	}
	tag, err := s.pool.Exec(ctx, `UPDATE coupons SET active = $2, updated_at = $3 WHERE code = $1`,
		c.Code(), c.IsActive(), c.UpdatedAt().UTC())
	if err != nil {
		return fmt.Errorf("update coupon %s: %w", c.Code(), err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCouponNotFound
	}
	return nil
}

type couponRow struct {
	code            string
	benefitKind     string
	benefitPercent  int
	benefitAmount   string
	scopeKind       string
	scopeTarget     string
	minimumPurchase string
	usesTotal       int
	usesConsumed    int
	expiresAt       *time.Time
	active          bool
	createdAt       time.Time
	updatedAt       time.Time
}

func (r couponRow) toDomain() (*domain.Coupon, error) {
	minimum, err := domain.NewMoneyFromDecimal(r.minimumPurchase)
	if err != nil {
		return nil, fmt.Errorf("coupon %s minimum_purchase: %w", r.code, err)
	}
	var amount *domain.Money
	if r.benefitAmount != "" {
		if amount, err = domain.NewMoneyFromDecimal(r.benefitAmount); err != nil {
			return nil, fmt.Errorf("coupon %s benefit_amount: %w", r.code, err)
		}
	}
	var exp *time.Time
	if r.expiresAt != nil {
		e := r.expiresAt.UTC()
		exp = &e
	}
	return domain.ReconstructCoupon(
		r.code,
		domain.ReconstructBenefit(domain.BenefitKind(r.benefitKind), r.benefitPercent, amount),
		domain.ReconstructScope(domain.ScopeKind(r.scopeKind), r.scopeTarget),
		minimum,
		r.usesTotal, r.usesConsumed,
		exp,
		r.active,
		r.createdAt.UTC(), r.updatedAt.UTC(),
	), nil
}

package cached

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/cache"
)

const (
	couponOperation     = "coupon"
	generationOperation = "coupon-gen"
)

// CouponStore is a read-through cache in front of another CouponStore.
// Writes go to the inner store first, then bump the code's generation and
// drop the cached entry. An entry is only served while its generation matches
// the current one, so a fill racing a write can never outlive that write.
// A cache failure is logged and never fails the call.
type CouponStore struct {
	inner  contracts.CouponStore
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCouponStore(inner contracts.CouponStore, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CouponStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CouponStore{inner: inner, cache: c, ttl: ttl, logger: logger}
}

// snapshot is the cached JSON form of a coupon. Rats marshal as exact fractions.
type snapshot struct {
	Generation      string     `json:"generation"`
	Code            string     `json:"code"`
	BenefitKind     string     `json:"benefit_kind"`
	BenefitPercent  int        `json:"benefit_percent,omitempty"`
	BenefitAmount   *big.Rat   `json:"benefit_amount,omitempty"`
	ScopeKind       string     `json:"scope_kind"`
	ScopeTarget     string     `json:"scope_target,omitempty"`
	MinimumPurchase *big.Rat   `json:"minimum_purchase"`
	UsesTotal       int        `json:"uses_total"`
	UsesConsumed    int        `json:"uses_consumed"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toSnapshot(c *domain.Coupon) snapshot {
	s := snapshot{
		Code:            c.Code(),
		BenefitKind:     string(c.Benefit().Kind()),
		BenefitPercent:  c.Benefit().Percentage(),
		ScopeKind:       string(c.Scope().Kind()),
		ScopeTarget:     c.Scope().Target(),
		MinimumPurchase: c.MinimumPurchase().Rat(),
		UsesTotal:       c.UsesTotal(),
		UsesConsumed:    c.UsesConsumed(),
		ExpiresAt:       c.ExpiresAt(),
		Active:          c.IsActive(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
	if a := c.Benefit().Amount(); a != nil {
		s.BenefitAmount = a.Rat()
	}
	return s
}

func (s snapshot) toDomain() *domain.Coupon {
	var amount *domain.Money
	if s.BenefitAmount != nil {
		amount = domain.NewMoneyFromRat(s.BenefitAmount)
	}
	return domain.ReconstructCoupon(
		s.Code,
		domain.ReconstructBenefit(domain.BenefitKind(s.BenefitKind), s.BenefitPercent, amount),
		domain.ReconstructScope(domain.ScopeKind(s.ScopeKind), s.ScopeTarget),
		domain.NewMoneyFromRat(s.MinimumPurchase),
		s.UsesTotal, s.UsesConsumed,
		s.ExpiresAt,
		s.Active,
		s.CreatedAt, s.UpdatedAt,
	)
}

func (s *CouponStore) key(code string) string {
	return s.cache.GenerateKey(couponOperation, code)
}

func (s *CouponStore) generationKey(code string) string {
	return s.cache.GenerateKey(generationOperation, code)
}

func (s *CouponStore) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	key := s.key(code)

	// The generation must be read before the inner store.
	gen, err := s.cache.Get(ctx, s.generationKey(code))
	if err != nil {
		s.logger.Warn("coupon cache read failed", zap.String("key", key), zap.Error(err))
		return s.inner.GetCouponByCode(ctx, code)
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("coupon cache read failed", zap.String("key", key), zap.Error(err))
	}
	if raw != "" {
		var snap snapshot
		switch err := json.Unmarshal([]byte(raw), &snap); {
		case err != nil:
			s.logger.Warn("dropping undecodable coupon cache entry", zap.String("key", key))
		case snap.Generation == gen:
			return snap.toDomain(), nil
		}
	}

	c, err := s.inner.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	snap := toSnapshot(c)
	snap.Generation = gen
	body, err := json.Marshal(snap)
	if err == nil {
		err = s.cache.Set(ctx, key, body, s.ttl)
	}
	if err != nil {
		s.logger.Warn("coupon cache write failed", zap.String("key", key), zap.Error(err))
	}
	return c, nil
}

func (s *CouponStore) IncrementUse(ctx context.Context, code string) error {
	err := s.inner.IncrementUse(ctx, code)
	s.invalidate(ctx, code)
	return err
}

func (s *CouponStore) Insert(ctx context.Context, c *domain.Coupon) error {
	if err := s.inner.Insert(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx, c.Code())
	return nil
}

func (s *CouponStore) Update(ctx context.Context, c *domain.Coupon) error {
	if err := s.inner.Update(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx, c.Code())
	return nil
}

func (s *CouponStore) invalidate(ctx context.Context, code string) {
	if _, err := s.cache.Incr(ctx, s.generationKey(code)); err != nil {
		s.logger.Warn("coupon cache generation bump failed", zap.String("code", code), zap.Error(err))
	}
	if err := s.cache.Delete(ctx, s.key(code)); err != nil {
		s.logger.Warn("coupon cache invalidation failed", zap.String("code", code), zap.Error(err))
	}
}

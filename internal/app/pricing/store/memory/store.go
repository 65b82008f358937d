package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
)

// Store is an in-process CatalogStore and CouponStore. Every read returns a
// fresh aggregate so callers never share state with the store.
type Store struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	coupons  map[string]*domain.Coupon
	clock    clock.Clock
}

func New() *Store {
	return NewWithClock(clock.RealClock{})
}

// NewWithClock builds a store whose IncrementUse judges expiry against clk.
func NewWithClock(clk clock.Clock) *Store {
	return &Store{
		products: make(map[string]*domain.Product),
		coupons:  make(map[string]*domain.Coupon),
		clock:    clk,
	}
}

// PutProduct seeds or replaces a product.
func (s *Store) PutProduct(p *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID()] = cloneProduct(p)
}

func (s *Store) GetProduct(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (s *Store) ListExpiredDiscounts(_ context.Context, now time.Time, limit int) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Product, 0)
	for _, p := range s.products {
		d := p.Discount()
		if d != nil && d.IsExpiredAt(now) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Discount().ExpiresAt().Before(*out[j].Discount().ExpiresAt())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) GetCouponByCode(_ context.Context, code string) (*domain.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[code]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	return cloneCoupon(c, c.UsesConsumed()), nil
}

// IncrementUse checks and advances the counter under the store lock.
func (s *Store) IncrementUse(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[code]
	if !ok {
		return domain.ErrCouponNotFound
	}
	if !c.IsActive() {
		return domain.ErrCouponDeactivated
	}
	if c.IsExpiredAt(s.clock.Now()) {
		return domain.ErrCouponExpired
	}
	if c.IsExhausted() {
		return domain.ErrCouponExhausted
	}
	s.coupons[code] = cloneCoupon(c, c.UsesConsumed()+1)
	return nil
}

func (s *Store) Insert(_ context.Context, c *domain.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[c.Code()]; ok {
		return domain.ErrCouponAlreadyExists
	}
	s.coupons[c.Code()] = cloneCoupon(c, c.UsesConsumed())
	return nil
}

// Update writes the dirty fields; the stored use counter wins over the caller's copy.
func (s *Store) Update(_ context.Context, c *domain.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.coupons[c.Code()]
	if !ok {
		return domain.ErrCouponNotFound
	}
	if !c.Changes().Dirty(domain.FieldCouponActive) {
		return nil
	}
	s.coupons[c.Code()] = domain.ReconstructCoupon(cur.Code(), cur.Benefit(), cur.Scope(), cur.MinimumPurchase(),
		cur.UsesTotal(), cur.UsesConsumed(), cur.ExpiresAt(), c.IsActive(), cur.CreatedAt(), c.UpdatedAt())
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	return domain.ReconstructProduct(p.ID(), p.Name(), p.Category(), p.BasePrice(), p.Discount(),
		p.IsActive(), p.Stock(), p.CreatedAt(), p.UpdatedAt())
}

func cloneCoupon(c *domain.Coupon, usesConsumed int) *domain.Coupon {
	return domain.ReconstructCoupon(c.Code(), c.Benefit(), c.Scope(), c.MinimumPurchase(),
		c.UsesTotal(), usesConsumed, c.ExpiresAt(), c.IsActive(), c.CreatedAt(), c.UpdatedAt())
}

package spannerstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/queries/get_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/repo"
	"github.com/murkotick/storefront-pricing-service/internal/models/m_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// CouponStore keeps coupons in Spanner. Reads go through get_coupon, writes
// through CouponRepo mutations, and IncrementUse runs its own read-write
// transaction so the cap check and the write commit together.
type CouponStore struct {
	client    *spanner.Client
	getQ      *get_coupon.SpannerGetCouponQuery
	repo      *repo.CouponRepo
	committer contracts.Committer
	clock     clock.Clock
	logger    *zap.Logger
}

func NewCouponStore(client *spanner.Client, committer contracts.Committer, clk clock.Clock, logger *zap.Logger) *CouponStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CouponStore{
		client:    client,
		getQ:      get_coupon.NewSpannerGetCouponQuery(client),
		repo:      repo.NewCouponRepo(),
		committer: committer,
		clock:     clk,
		logger:    logger,
	}
}

func (s *CouponStore) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return s.getQ.GetCouponByCode(ctx, code)
}

// IncrementUse reads the coupon and buffers the increment in one transaction.
// Spanner aborts and retries the loser of a concurrent race, which then sees
// the cap reached. Active and expiry are judged on the row read here, not on
// whatever the caller validated earlier.
func (s *CouponStore) IncrementUse(ctx context.Context, code string) error {
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		c, err := get_coupon.ReadCoupon(ctx, txn, code)
		if err != nil {
			return err
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
		return txn.BufferWrite([]*spanner.Mutation{
			m_coupon.IncrementMutation(code, int64(c.UsesConsumed()+1), s.clock.Now().UTC()),
		})
	})
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrCouponNotFound):
		return domain.ErrCouponNotFound
	case errors.Is(err, domain.ErrCouponDeactivated):
		return domain.ErrCouponDeactivated
	case errors.Is(err, domain.ErrCouponExpired):
		return domain.ErrCouponExpired
	case errors.Is(err, domain.ErrCouponExhausted):
		s.logger.Info("coupon increment lost race", zap.String("code", code))
		return domain.ErrCouponExhausted
	}
	return fmt.Errorf("increment coupon %s: %w", code, err)
}

func (s *CouponStore) Insert(ctx context.Context, c *domain.Coupon) error {
	plan := commitplan.NewPlan()
	plan.Add(s.repo.InsertMut(c))
	err := s.committer.Apply(ctx, plan)
	if spanner.ErrCode(err) == codes.AlreadyExists {
		return domain.ErrCouponAlreadyExists
	}
	return err
}

func (s *CouponStore) Update(ctx context.Context, c *domain.Coupon) error {
	plan := commitplan.NewPlan()
	plan.Add(s.repo.UpdateMut(c))
	if plan.IsEmpty() {
		return nil
	}
	err := s.committer.Apply(ctx, plan)
	if spanner.ErrCode(err) == codes.NotFound {
		return domain.ErrCouponNotFound
	}
	return err
}

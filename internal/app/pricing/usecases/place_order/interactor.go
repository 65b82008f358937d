package place_order

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain/services"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/quote_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
)

// ErrMissingCustomerEmail indicates an order without a customer to confirm to.
var ErrMissingCustomerEmail = errors.New("customer email is required")

type Request struct {
	CustomerEmail string
	Items         []shared.CartItem
	CouponCode    string
	ShippingCost  *domain.Money
}

type Response struct {
	OrderID         string
	Totals          *domain.OrderTotals
	CouponRejection *domain.ValidationFailure
}

type Interactor struct {
	Catalog         contracts.CatalogStore
	Coupons         contracts.CouponStore
	OrderRepo       contracts.OrderRepo
	OutboxRepo      contracts.OutboxRepo
	Committer       contracts.Committer
	Notifier        contracts.Notifier
	Composer        *services.OrderTotalComposer
	Validator       *services.CouponValidator
	DefaultShipping *domain.Money
	Clock           clock.Clock
	Logger          *zap.Logger
}

func NewInteractor(
	catalog contracts.CatalogStore,
	coupons contracts.CouponStore,
	orderRepo contracts.OrderRepo,
	outboxRepo contracts.OutboxRepo,
	committer contracts.Committer,
	notifier contracts.Notifier,
	defaultShipping *domain.Money,
	clk clock.Clock,
	logger *zap.Logger,
) *Interactor {
	if defaultShipping == nil {
		defaultShipping = domain.Zero()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		Catalog:         catalog,
		Coupons:         coupons,
		OrderRepo:       orderRepo,
		OutboxRepo:      outboxRepo,
		Committer:       committer,
		Notifier:        notifier,
		Composer:        services.NewOrderTotalComposer(nil),
		Validator:       services.NewCouponValidator(),
		DefaultShipping: defaultShipping,
		Clock:           clk,
		Logger:          logger,
	}
}

// Execute prices the cart, consumes one coupon use, persists the order and
// queues the confirmation. Losing the race for a coupon's last use does not
// fail the order: it is placed without the coupon and the rejection reported.
func (it *Interactor) Execute(ctx context.Context, req Request) (*Response, error) {
	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return nil, ErrMissingCustomerEmail
	}
	now := it.Clock.Now()
	shipping := req.ShippingCost
	if shipping == nil {
		shipping = it.DefaultShipping
	}

	// 1. Price the cart
	q, err := quote_order.Price(ctx, quote_order.PriceInput{
		Catalog:   it.Catalog,
		Coupons:   it.Coupons,
		Composer:  it.Composer,
		Validator: it.Validator,
		Items:     req.Items,
		Code:      req.CouponCode,
		Shipping:  shipping,
		Now:       now,
	})
	if err != nil {
		return nil, err
	}
	totals, rejection := q.Totals, q.Rejection
	if rejection != nil && domain.IsConfigurationError(rejection) {
		it.Logger.Error("stored coupon cannot be evaluated", zap.String("code", rejection.Code), zap.Error(rejection))
	}

	// 2. Consume the coupon
	if q.Coupon != nil {
		err := it.Coupons.IncrementUse(ctx, q.Coupon.Code())
		if reason, lost := lostCouponReason(err); lost {
			it.Logger.Info("coupon no longer redeemable at checkout",
				zap.String("code", q.Coupon.Code()), zap.String("reason", string(reason)))
			rejection = &domain.ValidationFailure{Code: q.Coupon.Code(), Reason: reason}
			if totals, err = it.Composer.Compose(q.Lines, nil, shipping, now); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
	}

	// 3. Persist order, lines and outbox event
	order := domain.NewOrder(uuid.New().String(), email, totals, now)
	plan := commitplan.NewPlan()
	plan.AddAll(it.OrderRepo.InsertMuts(order))
	if err := shared.AppendOutboxEvents(plan, it.OutboxRepo, order.DomainEvents(), now); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		it.Logger.Error("order commit failed",
			zap.String("order_id", order.ID()),
			zap.String("coupon_code", totals.CouponCode),
			zap.Error(err))
		return nil, err
	}

	// 4. Notify
	if it.Notifier != nil {
		conf := contracts.OrderConfirmation{
			OrderID:        order.ID(),
			CustomerEmail:  email,
			CouponCode:     totals.CouponCode,
			DiscountAmount: totals.DiscountAmount.String(),
			Total:          totals.Total.String(),
			PlacedAt:       now,
		}
		if err := it.Notifier.NotifyOrderPlaced(ctx, conf); err != nil {
			it.Logger.Warn("order confirmation not queued", zap.String("order_id", order.ID()), zap.Error(err))
		}
	}

	return &Response{OrderID: order.ID(), Totals: totals, CouponRejection: rejection}, nil
}

// lostCouponReason maps an IncrementUse conflict to the reason shown to the
// customer. The order then proceeds without the coupon.
func lostCouponReason(err error) (domain.InvalidReason, bool) {
	switch {
	case errors.Is(err, domain.ErrCouponExhausted):
		return domain.ReasonExhausted, true
	case errors.Is(err, domain.ErrCouponDeactivated):
		return domain.ReasonInactive, true
	case errors.Is(err, domain.ErrCouponExpired):
		return domain.ReasonExpired, true
	}
	return "", false
}

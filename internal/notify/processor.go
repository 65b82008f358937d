package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
)

// Sender renders and delivers a confirmation to the customer.
type Sender interface {
	Send(ctx context.Context, c contracts.OrderConfirmation) error
}

// LogSender only logs confirmations. It stands in for a mail provider.
type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(_ context.Context, c contracts.OrderConfirmation) error {
	s.Logger.Info("order confirmation",
		zap.String("order_id", c.OrderID),
		zap.String("customer_email", c.CustomerEmail),
		zap.String("total", c.Total),
		zap.String("discount_amount", c.DiscountAmount),
		zap.String("coupon_code", c.CouponCode))
	return nil
}

// Processor drains the confirmation queue into a Sender.
type Processor struct {
	queue   *Queue
	sender  Sender
	logger  *zap.Logger
	poll    time.Duration
	backoff time.Duration
}

func NewProcessor(q *Queue, sender Sender, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{queue: q, sender: sender, logger: logger, poll: 5 * time.Second, backoff: RetryBackoff}
}

// Process delivers one job.
func (p *Processor) Process(ctx context.Context, job *Job) error {
	if job.Type != JobTypeOrderConfirmation {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var c contracts.OrderConfirmation
	if err := json.Unmarshal(job.Payload, &c); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return p.sender.Send(ctx, c)
}

// Run dequeues and processes jobs until ctx is done, retrying failures.
func (p *Processor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx, p.poll)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			p.sleep(ctx)
			continue
		}
		if job == nil {
			continue
		}

		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			p.sleep(ctx)
		}
	}
}

func (p *Processor) sleep(ctx context.Context) {
	t := time.NewTimer(p.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

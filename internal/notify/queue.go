package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
)

const (
	// MaxRetries is the number of attempts before a job moves to the dead-letter list.
	MaxRetries = 3
	// RetryBackoff is the pause after a failed job or dequeue.
	RetryBackoff = 10 * time.Second
)

type JobType string

const JobTypeOrderConfirmation JobType = "order_confirmation"

// Job is the envelope pushed onto the Redis list.
type Job struct {
	ID        string          `json:"id"`
	Type      JobType         `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempt   int             `json:"attempt"`
	CreatedAt time.Time       `json:"created_at"`
}

// listClient is the subset of *redis.Client the queue needs.
type listClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// Queue hands order confirmations to the notification sender through a Redis list.
// It implements contracts.Notifier.
type Queue struct {
	client listClient
	key    string
	dlqKey string
	logger *zap.Logger
	now    func() time.Time
}

var _ contracts.Notifier = (*Queue)(nil)

func NewQueue(client listClient, key string, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{client: client, key: key, dlqKey: key + ":dlq", logger: logger, now: time.Now}
}

func (q *Queue) Key() string    { return q.key }
func (q *Queue) DLQKey() string { return q.dlqKey }

// NotifyOrderPlaced enqueues a confirmation job.
func (q *Queue) NotifyOrderPlaced(ctx context.Context, c contracts.OrderConfirmation) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	job := Job{
		ID:        uuid.New().String(),
		Type:      JobTypeOrderConfirmation,
		Payload:   body,
		CreatedAt: q.now().UTC(),
	}
	if err := q.push(ctx, q.key, &job); err != nil {
		return err
	}
	q.logger.Debug("enqueued order confirmation", zap.String("job_id", job.ID), zap.String("order_id", c.OrderID))
	return nil
}

// Dequeue waits up to timeout for a job. It returns (nil, nil) when nothing
// arrived or the entry could not be decoded.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BLPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}
	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		q.logger.Warn("invalid job payload", zap.String("raw", result[1]), zap.Error(err))
		return nil, nil
	}
	return &job, nil
}

// Retry re-enqueues job with its attempt incremented, or parks it on the
// dead-letter list once MaxRetries is reached.
func (q *Queue) Retry(ctx context.Context, job *Job) error {
	job.Attempt++
	if job.Attempt >= MaxRetries {
		if err := q.push(ctx, q.dlqKey, job); err != nil {
			q.logger.Error("dlq push failed", zap.String("job_id", job.ID), zap.Error(err))
			return err
		}
		q.logger.Warn("job moved to DLQ", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
		return nil
	}
	if err := q.push(ctx, q.key, job); err != nil {
		return err
	}
	q.logger.Info("job retried", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
	return nil
}

func (q *Queue) push(ctx context.Context, key string, job *Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.RPush(ctx, key, raw).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	return nil
}

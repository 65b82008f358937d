package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
)

// fakeList is an in-memory stand-in for the Redis list commands.
type fakeList struct {
	mu    sync.Mutex
	lists map[string][]string
	err   error
}

func newFakeList() *fakeList {
	return &fakeList{lists: map[string][]string{}}
}

func (f *fakeList) RPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	for _, v := range values {
		switch b := v.(type) {
		case []byte:
			f.lists[key] = append(f.lists[key], string(b))
		case string:
			f.lists[key] = append(f.lists[key], b)
		}
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

func (f *fakeList) BLPop(_ context.Context, _ time.Duration, keys ...string) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		if len(f.lists[k]) > 0 {
			v := f.lists[k][0]
			f.lists[k] = f.lists[k][1:]
			return redis.NewStringSliceResult([]string{k, v}, nil)
		}
	}
	return redis.NewStringSliceResult(nil, redis.Nil)
}

func (f *fakeList) len(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lists[key])
}

func confirmation() contracts.OrderConfirmation {
	return contracts.OrderConfirmation{
		OrderID:        "order-1",
		CustomerEmail:  "ana@example.com",
		CouponCode:     "VERANO20",
		DiscountAmount: "12.00",
		Total:          "53.00",
		PlacedAt:       time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestQueue_EnqueueAndDequeue(t *testing.T) {
	list := newFakeList()
	q := NewQueue(list, "pricing:test", nil)
	ctx := context.Background()

	require.NoError(t, q.NotifyOrderPlaced(ctx, confirmation()))
	assert.Equal(t, 1, list.len("pricing:test"))

	job, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, JobTypeOrderConfirmation, job.Type)
	assert.NotEmpty(t, job.ID)
	assert.Zero(t, job.Attempt)

	var got contracts.OrderConfirmation
	require.NoError(t, json.Unmarshal(job.Payload, &got))
	assert.Equal(t, confirmation(), got)

	job, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Nil(t, job, "empty queue")
}

func TestQueue_PushError(t *testing.T) {
	list := newFakeList()
	list.err = errors.New("connection refused")

	err := NewQueue(list, "k", nil).NotifyOrderPlaced(context.Background(), confirmation())
	assert.ErrorContains(t, err, "connection refused")
}

func TestQueue_InvalidEntryIsSkipped(t *testing.T) {
	list := newFakeList()
	list.RPush(context.Background(), "k", "not json")

	job, err := NewQueue(list, "k", nil).Dequeue(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestQueue_RetryThenDLQ(t *testing.T) {
	list := newFakeList()
	q := NewQueue(list, "k", nil)
	ctx := context.Background()
	job := &Job{ID: "j", Type: JobTypeOrderConfirmation}

	for i := 1; i < MaxRetries; i++ {
		require.NoError(t, q.Retry(ctx, job))
		assert.Equal(t, i, list.len("k"))
	}
	require.NoError(t, q.Retry(ctx, job))
	assert.Equal(t, MaxRetries, job.Attempt)
	assert.Equal(t, 1, list.len(q.DLQKey()))
}

type recordingSender struct {
	mu   sync.Mutex
	sent []contracts.OrderConfirmation
	err  error
}

func (s *recordingSender) Send(_ context.Context, c contracts.OrderConfirmation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, c)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestProcessor_Run(t *testing.T) {
	list := newFakeList()
	q := NewQueue(list, "k", nil)
	sender := &recordingSender{}
	p := NewProcessor(q, sender, nil)
	p.poll = time.Millisecond

	require.NoError(t, q.NotifyOrderPlaced(context.Background(), confirmation()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestProcessor_FailedJobIsRetried(t *testing.T) {
	list := newFakeList()
	q := NewQueue(list, "k", nil)
	p := NewProcessor(q, &recordingSender{err: errors.New("smtp down")}, nil)
	p.poll = time.Millisecond
	p.backoff = time.Millisecond

	require.NoError(t, q.NotifyOrderPlaced(context.Background(), confirmation()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return list.len(q.DLQKey()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestProcessor_UnknownJobType(t *testing.T) {
	p := NewProcessor(NewQueue(newFakeList(), "k", nil), &recordingSender{}, nil)
	assert.Error(t, p.Process(context.Background(), &Job{Type: "other"}))
}

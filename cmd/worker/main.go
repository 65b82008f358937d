// Package main runs background jobs: purging expired product discounts and
// draining the order confirmation queue.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/queries"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/repo"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/purge_expired_discounts"
	"github.com/murkotick/storefront-pricing-service/internal/notify"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/cache"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	committer "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/config"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		log.Fatal("spanner client", zap.Error(err))
	}
	defer client.Close()

	purge := purge_expired_discounts.NewInteractor(
		repo.NewProductRepo(),
		repo.NewOutboxRepo(),
		committer.NewAdapter(client, log),
		queries.NewSpannerReadModel(client),
		clock.RealClock{},
		log,
	)

	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		q := notify.NewQueue(rdb, cfg.Redis.QueueKey, log)
		go notify.NewProcessor(q, notify.LogSender{Logger: log}, log).Run(ctx)
	}

	log.Info("worker started", zap.Duration("purge_interval", cfg.Maintenance.PurgeInterval))
	runPurge(ctx, purge, cfg.Maintenance.PurgeBatchSize, cfg.Maintenance.PurgeInterval, log)
	log.Info("worker stopped")
}

// runPurge drains expired discounts batch by batch on every tick.
func runPurge(ctx context.Context, uc *purge_expired_discounts.Interactor, batch int, every time.Duration, log *zap.Logger) {
	if batch <= 0 {
		batch = purge_expired_discounts.DefaultBatchSize
	}
	if every <= 0 {
		every = 10 * time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		for {
			resp, err := uc.Execute(ctx, purge_expired_discounts.Request{BatchSize: batch})
			if err != nil {
				if ctx.Err() == nil {
					log.Error("purge expired discounts", zap.Error(err))
				}
				break
			}
			if len(resp.ProductIDs) < batch {
				break
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

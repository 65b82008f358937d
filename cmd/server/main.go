package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/contracts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/queries"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/repo"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/store/cached"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/store/pgstore"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/store/spannerstore"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/apply_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/create_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/deactivate_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/place_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/purge_expired_discounts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/quote_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/remove_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_price"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/validate_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/notify"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/cache"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/clock"
	committer "github.com/murkotick/storefront-pricing-service/internal/pkg/committer"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/config"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/database"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/logger"
	grpcpricing "github.com/murkotick/storefront-pricing-service/internal/transport/grpc/pricing"
	httppricing "github.com/murkotick/storefront-pricing-service/internal/transport/http/pricing"
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

	defaultShipping, err := domain.NewMoneyFromDecimal(cfg.Pricing.DefaultShipping)
	if err != nil {
		log.Fatal("DEFAULT_SHIPPING_COST", zap.Error(err))
	}

	clk := clock.RealClock{}
	cm := committer.NewAdapter(client, log)
	readModel := queries.NewSpannerReadModel(client)
	productRepo := repo.NewProductRepo()
	outboxRepo := repo.NewOutboxRepo()
	orderRepo := repo.NewOrderRepo()

	// Coupon backend
	var coupons contracts.CouponStore
	switch cfg.CouponBackend {
	case config.CouponBackendPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres.DSN, log)
		if err != nil {
			log.Fatal("postgres", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatal("postgres migrate", zap.Error(err))
		}
		coupons = pgstore.NewCouponStore(pool, log)
	default:
		coupons = spannerstore.NewCouponStore(client, cm, clk, log)
	}

	// Redis: coupon cache and confirmation queue
	var notifier contracts.Notifier
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		coupons = cached.NewCouponStore(coupons, cache.NewRedisCache(rdb, "pricing"), cfg.Redis.CouponCacheTTL, log)
		notifier = notify.NewQueue(rdb, cfg.Redis.QueueKey, log)
	} else {
		log.Warn("REDIS_ADDR not set; coupon cache and order confirmations disabled")
	}

	quoteUC := quote_order.NewInteractor(readModel, coupons, defaultShipping, clk)
	placeUC := place_order.NewInteractor(readModel, coupons, orderRepo, outboxRepo, cm, notifier, defaultShipping, clk, log)
	validateUC := validate_coupon.NewInteractor(readModel, coupons, clk)
	applyUC := apply_discount.NewInteractor(productRepo, outboxRepo, cm, readModel, clk)
	removeUC := remove_discount.NewInteractor(productRepo, outboxRepo, cm, readModel, clk)

	httpHandler := httppricing.NewHandler(
		httppricing.Checkout{Quote: quoteUC, Place: placeUC, Validate: validateUC},
		httppricing.Admin{
			ApplyDiscount:    applyUC,
			UpdateDiscount:   update_discount.NewInteractor(productRepo, outboxRepo, cm, readModel, clk),
			RemoveDiscount:   removeUC,
			UpdatePrice:      update_price.NewInteractor(productRepo, outboxRepo, cm, readModel, clk),
			CreateCoupon:     create_coupon.NewInteractor(coupons, clk),
			DeactivateCoupon: deactivate_coupon.NewInteractor(coupons, clk),
			PurgeExpired:     purge_expired_discounts.NewInteractor(productRepo, outboxRepo, cm, readModel, clk, log),
		},
		log,
	)
	httpSrv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      httppricing.NewRouter(httpHandler, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	grpcSrv := grpcpricing.NewServer(grpcpricing.NewHandler(grpcpricing.Commands{
		Quote:          quoteUC,
		Place:          placeUC,
		Validate:       validateUC,
		ApplyDiscount:  applyUC,
		RemoveDiscount: removeUC,
	}), log)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatal("listen", zap.String("addr", cfg.Server.GRPCAddr), zap.Error(err))
	}

	go func() {
		log.Info("gRPC server listening", zap.String("addr", cfg.Server.GRPCAddr))
		if err := grpcSrv.Serve(lis); err != nil {
			log.Error("grpc serve", zap.Error(err))
			stop()
		}
	}()
	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcSrv.Stop()
	}

	log.Info("server stopped")
}

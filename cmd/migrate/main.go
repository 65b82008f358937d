package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/pkg/config"
	pgdatabase "github.com/murkotick/storefront-pricing-service/internal/pkg/database"
	"github.com/murkotick/storefront-pricing-service/internal/pkg/logger"
)

// Applies migrations/001_initial_schema.sql to SPANNER_DATABASE and, when
// COUPON_BACKEND=postgres, the embedded coupon migrations to DATABASE_URL.
//
// Usage (emulator):
//
//	SPANNER_EMULATOR_HOST=localhost:9010 \
//	SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db \
//	go run ./cmd/migrate
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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ddlPath := filepath.Join("migrations", "001_initial_schema.sql")
	stmts, err := readDDLStatements(ddlPath)
	if err != nil {
		log.Fatal("read DDL", zap.String("path", ddlPath), zap.Error(err))
	}
	if len(stmts) == 0 {
		log.Fatal("no DDL statements found", zap.String("path", ddlPath))
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		log.Fatal("database admin client", zap.Error(err))
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   cfg.Spanner.Database,
		Statements: stmts,
	})
	if err != nil {
		log.Fatal("UpdateDatabaseDdl", zap.Error(err))
	}
	if err := op.Wait(ctx); err != nil {
		log.Fatal("UpdateDatabaseDdl wait", zap.Error(err))
	}
	log.Info("spanner schema applied", zap.Int("statements", len(stmts)), zap.String("database", cfg.Spanner.Database))

	if cfg.CouponBackend != config.CouponBackendPostgres {
		return
	}
	pool, err := pgdatabase.NewPostgresPool(ctx, cfg.Postgres.DSN, log)
	if err != nil {
		log.Fatal("postgres", zap.Error(err))
	}
	defer pool.Close()
	if err := pgdatabase.Migrate(ctx, pool); err != nil {
		log.Fatal("postgres migrate", zap.Error(err))
	}
	names, _ := pgdatabase.MigrationNames()
	log.Info("postgres coupon schema applied", zap.Strings("migrations", names))
}

func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sql := strings.ReplaceAll(string(b), "\r\n", "\n")

	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out, nil
}

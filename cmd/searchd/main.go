package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/soukly/searchd/internal/cache"
	"github.com/soukly/searchd/internal/config"
	"github.com/soukly/searchd/internal/db"
	dbRedis "github.com/soukly/searchd/internal/db/redis"
	"github.com/soukly/searchd/internal/domain"
	logpkg "github.com/soukly/searchd/internal/logger"
	"github.com/soukly/searchd/internal/metrics"
	catalogrepo "github.com/soukly/searchd/internal/repository/catalog"
	primaryrepo "github.com/soukly/searchd/internal/repository/primary"
	"github.com/soukly/searchd/internal/suggest"
	chiTransport "github.com/soukly/searchd/internal/transport/chi"
	healthuc "github.com/soukly/searchd/internal/usecase/health"
	"github.com/soukly/searchd/internal/usecase/resolve"
	"github.com/soukly/searchd/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchd suggest server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register resolver metrics explicitly (no init())
	metrics.RegisterSuggestMetrics()

	if err := ensureCatalogIndex(ctx, store); err != nil {
		logger.Fatal("Failed to create catalog index", zap.Error(err))
	}

	catalogRepo := catalogrepo.New(store)
	if items, err := catalogRepo.Reload(ctx); err != nil {
		// The fuzzy tier retries the snapshot load lazily; startup proceeds.
		logger.Warn("Catalog snapshot preload failed", zap.Error(err))
	} else {
		logger.Info("Catalog snapshot loaded", zap.Int("items", len(items)))
	}

	primaryRepo := primaryrepo.New(store)
	fallbackCache := cache.NewFallback(
		cfg.Search.CacheMaxEntries,
		time.Duration(cfg.Search.CacheTTLSec)*time.Second,
	)

	resolver := resolve.New(primaryRepo, catalogRepo, fallbackCache, logger).
		WithLimits(cfg.Search.MinQueryLen, cfg.Search.MaxQueryLen).
		WithPrimaryLimit(cfg.Search.PrimaryLimit).
		WithPrimaryTimeout(time.Duration(cfg.Search.PrimaryTimeout) * time.Millisecond).
		WithCaps(suggest.Caps{
			Product:  cfg.Search.ProductCap,
			Brand:    cfg.Search.BrandCap,
			Category: cfg.Search.CategoryCap,
		})

	healthSvc := healthuc.New(store, catalogChecker{repo: catalogRepo})

	server := chiTransport.NewServer(resolver, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// ensureCatalogIndex creates the bilingual FT index over product hashes with
// per-field weights mirroring the fuzzy tier's field ordering. An existing
// index is left untouched.
func ensureCatalogIndex(ctx context.Context, store db.Store) error {
	def := db.NewIndex(domain.CatalogIndex).
		Prefix(domain.KeyPrefix).
		Language("arabic").
		TextWeighted("name", 10).
		TextWeighted("brand", 8).
		TextWeighted("description", 5).
		TextWeighted("category", 3).
		TextWeighted("subcategory", 3).
		Build()

	err := store.CreateIndex(ctx, def)
	if errors.Is(err, db.ErrIndexExists) {
		return nil
	}
	return err
}

// catalogChecker adapts the catalog repository to the health contract.
type catalogChecker struct {
	repo *catalogrepo.Repo
}

func (c catalogChecker) HealthCheck(ctx context.Context) error {
	_, err := c.repo.Snapshot(ctx)
	return err
}

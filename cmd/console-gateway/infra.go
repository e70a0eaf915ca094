package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/handler"
	"github.com/noah-isme/sma-console-gateway/internal/repository"
	"github.com/noah-isme/sma-console-gateway/internal/service"
	"github.com/noah-isme/sma-console-gateway/pkg/cache"
	"github.com/noah-isme/sma-console-gateway/pkg/config"
	"github.com/noah-isme/sma-console-gateway/pkg/database"
	"github.com/noah-isme/sma-console-gateway/pkg/storage"
)

// infra holds the optional Redis and PostgreSQL connections.
type infra struct {
	redis *redis.Client
	db    *sqlx.DB
}

// openInfra connects only to what the configuration needs. Redis is required
// by the redis store driver; for the dashboard cache alone an unreachable
// server disables caching instead of failing startup.
func openInfra(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*infra, error) {
	out := &infra{}

	storeNeedsRedis := cfg.OverrideStore.Driver == config.StoreDriverRedis
	if storeNeedsRedis || cfg.Dashboard.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		switch {
		case err == nil:
			out.redis = client
		case storeNeedsRedis:
			return nil, err
		default:
			logger.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		}
	}

	if cfg.OverrideStore.Driver == config.StoreDriverPostgres {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			out.Close()
			return nil, err
		}
		out.db = db
	}
	return out, nil
}

// blobRepository returns the override store driver selected by cfg.
func (i *infra) blobRepository(ctx context.Context, cfg *config.Config) (service.BlobRepository, error) {
	switch cfg.OverrideStore.Driver {
	case config.StoreDriverRedis:
		return repository.NewRedisBlobRepository(i.redis, "console:"), nil
	case config.StoreDriverPostgres:
		repo := repository.NewPostgresBlobRepository(i.db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure blob schema: %w", err)
		}
		return repo, nil
	default:
		local, err := storage.NewLocalStorage(cfg.OverrideStore.Dir)
		if err != nil {
			return nil, fmt.Errorf("open override store dir: %w", err)
		}
		return repository.NewFileBlobRepository(local), nil
	}
}

// cacheClient returns the Redis client as a Cmdable, or an untyped nil when
// there is none so the cache repository can detect it.
func (i *infra) cacheClient() redis.Cmdable {
	if i.redis == nil {
		return nil
	}
	return i.redis
}

func (i *infra) readinessChecks() []handler.ReadinessCheck {
	var checks []handler.ReadinessCheck
	if i.redis != nil {
		client := i.redis
		checks = append(checks, handler.ReadinessCheck{Name: "redis", Probe: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	}
	if i.db != nil {
		db := i.db
		checks = append(checks, handler.ReadinessCheck{Name: "postgres", Probe: db.PingContext})
	}
	return checks
}

func (i *infra) Close() {
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

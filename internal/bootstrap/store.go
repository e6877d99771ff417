package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bugjanitor/go-janitor-backend/config"
	"github.com/bugjanitor/go-janitor-backend/internal/docstore"
	"github.com/bugjanitor/go-janitor-backend/internal/docstore/memory"
	"github.com/bugjanitor/go-janitor-backend/internal/docstore/postgres"
	redisstore "github.com/bugjanitor/go-janitor-backend/internal/docstore/redis"
)

// OpenStore connects the document store selected by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		return memory.New(), nil

	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		slog.Info("connected to redis", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.KeyPrefix)
		return redisstore.New(client, cfg.Redis.KeyPrefix), nil

	case config.StorePostgres:
		store, err := postgres.Open(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		slog.Info("connected to postgres", "driver", cfg.Database.Driver)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

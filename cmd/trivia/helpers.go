package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/trivia/internal/config"
	"github.com/at-ishikawa/trivia/internal/database"
	"github.com/at-ishikawa/trivia/internal/result"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// openResultStore opens the results store selected by storage.backend.
// The returned function releases its connections.
func openResultStore(ctx context.Context, cfg *config.Config) (result.Store, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		if err := database.Ping(ctx, db, cfg.Database); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Ping() > %w", err)
		}

		store := result.NewDBStore(db, result.WithRetry(
			cfg.Database.RetryAttempts,
			time.Duration(cfg.Database.RetryDelayMs)*time.Millisecond,
		))
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("store.EnsureSchema() > %w", err)
		}
		return store, db.Close, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("client.Ping() > %w", err)
		}
		return result.NewRedisStore(client, cfg.Redis.Key), client.Close, nil

	default:
		return result.NewFileStore(cfg.Data.LeaderboardPath), func() error { return nil }, nil
	}
}

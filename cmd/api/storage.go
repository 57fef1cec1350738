package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/tripcrew/internal/cache"
	"github.com/pkordes/tripcrew/internal/config"
	"github.com/pkordes/tripcrew/internal/repo"
	"github.com/pkordes/tripcrew/migrations"
)

// storage bundles the repositories the service needs with the function that
// releases their backing resources.
type storage struct {
	trips   repo.TripRepo
	members repo.MembershipRepo
	close   func()
}

// openStorage builds the repositories selected by STORAGE_DRIVER. For
// postgres it verifies the database is reachable and, when MIGRATE_ON_START
// is set, applies pending migrations before returning.
func openStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("using in-memory storage; data is lost on restart")
		return storage{
			trips:   repo.NewMemoryTripRepo(),
			members: repo.NewMemoryMembershipRepo(),
			close:   func() {},
		}, nil
	}

	// New() does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return storage{}, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return storage{}, fmt.Errorf("ping: %w", err)
	}
	log.Info("database connection established")

	if cfg.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(ctx, db)
		_ = db.Close()
		if err != nil {
			pool.Close()
			return storage{}, err
		}
		log.Info("migrations applied", "count", n)
	}

	return storage{
		trips:   repo.NewTripRepo(pool),
		members: repo.NewMembershipRepo(pool),
		close:   pool.Close,
	}, nil
}

// openCodeIndex connects to REDIS_URL and returns the join-code index.
func openCodeIndex(ctx context.Context, cfg config.Config) (*cache.CodeIndex, func(), error) {
	client, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewCodeIndex(client, cfg.RedisPrefix, cfg.CodeCacheTTL), func() { _ = client.Close() }, nil
}

// Package storage selects the document store implementation at startup.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
	"staybook/internal/shared"
	"staybook/internal/storage/memory"
	"staybook/internal/storage/mongo"
	"staybook/internal/storage/mysql"
)

// Open connects the store named by cfg.StoreDriver and prepares its schema.
func Open(ctx context.Context, cfg shared.Config) (domain.Store, error) {
	switch cfg.StoreDriver {
	case "mongo", "":
		repo, err := mongo.Open(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("db", cfg.MongoDB).Msg("mongo store ready")
		return repo, nil
	case "mysql":
		repo, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if err := repo.Migrate(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, fmt.Errorf("mysql migrate: %w", err)
		}
		log.Info().Msg("mysql store ready")
		return repo, nil
	case "memory":
		log.Warn().Msg("using in-memory store; data is lost on exit")
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/campus-desk/internal/config"
)

// KV is string-keyed durable storage for JSON-serialized blobs. Writing
// replaces the entire value for a key; reading a missing key reports found
// as false without error.
type KV interface {
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Set(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the KV backend selected by configuration.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (KV, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return NewSQLite(cfg.Storage.SQLitePath, logger)
	case "redis":
		return NewRedis(cfg.Redis, logger), nil
	case "postgres":
		return NewPostgres(ctx, cfg.Postgres, logger)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/goatkit/adminshell/internal/config"
	"github.com/goatkit/adminshell/internal/plugin"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend selected by cfg. The returned closer releases its
// connections.
func Open(ctx context.Context, cfg config.StateConfig, logger *slog.Logger) (plugin.StateStore, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.File, logger), nopCloser{}, nil
	case config.BackendRedis:
		s, err := NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.BackendSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLite.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.BackendMemory:
		return NewMemoryStore(nil), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}

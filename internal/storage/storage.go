// ABOUTME: Durable key/value stores that back the session record
// ABOUTME: Selects a file, sqlite, redis or in-memory backend from config

package storage

import (
	"fmt"

	"github.com/markalston/petcare-cli/internal/config"
)

// Store is a string key/value store. A missing key is reported with
// found=false and a nil error.
type Store interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Open creates the backend named by cfg.Backend.
func Open(cfg config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Dir), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLiteFile())
	case config.BackendRedis:
		return NewRedisStore(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported session backend: %s", cfg.Backend)
	}
}

// Package db opens the pool the question pipeline reads from.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/askdb/askdb/internal/config"
	"github.com/askdb/askdb/internal/dialect"
)

// Open connects to the target database using the dialect's registered
// driver and verifies the connection with a bounded ping.
func Open(ctx context.Context, d dialect.Dialect, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is required")
	}

	pool, err := sql.Open(d.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", d.Name, err)
	}

	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxIdleTime > 0 {
		pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping %s db: %w", d.Name, err)
	}

	return pool, nil
}

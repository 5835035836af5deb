// Package postgres opens the pgx connection pool for the agency store.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gtmquest/agencymatch/internal/db"
)

// Compile-time check: Pool implements db.Pinger.
var _ db.Pinger = (*Pool)(nil)

// Config holds Postgres connection parameters.
type Config struct {
	DSN      string
	MaxConns int32
}

// Pool wraps a pgxpool.Pool.
type Pool struct {
	pool *pgxpool.Pool
}

// New parses the DSN and creates a lazily connecting pool.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}
	return &Pool{pool: pool}, nil
}

// Ping checks connectivity.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (p *Pool) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, p, timeout)
}

// Pgx exposes the underlying pool for repositories.
func (p *Pool) Pgx() *pgxpool.Pool { return p.pool }

// Close releases all connections.
func (p *Pool) Close() {
	p.pool.Close()
}

// Package pgrecords is the Postgres record store. It satisfies the same
// recordstore interfaces as the Mongo stores and is selected with
// record_store = "postgres".
package pgrecords

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions tunes the connection pool. Zero values use the defaults.
type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

// Open parses dsn, builds a pool and pings it once so a bad DSN fails at
// startup rather than on the first request.
func Open(ctx context.Context, dsn string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	// Fail fast
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}

// NewBackend wires the three Postgres stores around one pool.
func NewBackend(pool *pgxpool.Pool) recordstore.Backend {
	return recordstore.Backend{
		Internships: NewInternships(pool),
		Regions:     NewRegions(pool),
		Users:       NewUsers(pool),
		Ping:        pool.Ping,
		Name:        "postgres",
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// validID reports whether id can be compared against a uuid column.
// Anything else cannot match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

package repository

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the subset of a pgx pool used by the repository.
// Both *pgxpool.Pool and pgxmock pools satisfy it.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS jobs (
		id                 BIGSERIAL PRIMARY KEY,
		job_title          TEXT,
		company_name       TEXT,
		location           TEXT,
		lat                DOUBLE PRECISION,
		lng                DOUBLE PRECISION,
		salary_string      TEXT,
		job_weight         DOUBLE PRECISION,
		geocoding_attempts INTEGER NOT NULL DEFAULT 0,
		geocoding_error    TEXT
	);
`

// PostgresDSN builds a connection URL from discrete settings.
func PostgresDSN(host, port, user, password, name string) string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     name,
		RawQuery: "sslmode=disable",
	}
	return dsn.String()
}

// NewDatabase creates a connection pool, checks connectivity and makes sure
// the jobs table exists.
func NewDatabase(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const pingTimeout = 5 * time.Second

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if _, err = pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}

	return pool, nil
}

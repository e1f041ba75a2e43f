package repository

import (
	"context"
	"fmt"
	"log/slog"
)

// StoreType selects the backend holding job postings.
type StoreType string

const (
	// StoreTypeMongo keeps postings in a MongoDB collection.
	StoreTypeMongo StoreType = "mongo"
	// StoreTypePostgres keeps postings in a PostgreSQL table.
	StoreTypePostgres StoreType = "postgres"
	// StoreTypeSQLite keeps postings in a local SQLite file.
	StoreTypeSQLite StoreType = "sqlite"
)

// Config holds the connection settings of every backend; only the fields of
// the selected Type are used.
type Config struct {
	Type            StoreType
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	PostgresDSN     string
	SQLitePath      string
	Logger          *slog.Logger
}

// Open connects to the configured backend and verifies it is reachable.
// The returned store must be released with Close.
func Open(ctx context.Context, cfg Config) (Interface, error) {
	switch cfg.Type {
	case StoreTypeMongo:
		repo, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, cfg.Logger)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case StoreTypePostgres:
		pool, err := NewDatabase(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresRepository(pool, cfg.Logger), nil
	case StoreTypeSQLite:
		repo, err := OpenSQLite(ctx, cfg.SQLitePath, cfg.Logger)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}

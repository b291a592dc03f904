package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"marketplace-admin/internal/config"

	_ "github.com/lib/pq"
)

const pingTimeout = 5 * time.Second

// Pool bounds the connections held open to Postgres.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxIdleTime time.Duration
}

// DefaultPool suits the ledger's few short writes per assignment.
var DefaultPool = Pool{MaxOpen: 5, MaxIdle: 2, MaxIdleTime: 5 * time.Minute}

// NewDatabase opens the assignment ledger database named by cfg.DBURL.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return Open(context.Background(), "postgres", cfg.DBURL, DefaultPool)
}

// Open connects with driver and verifies the connection with a ping.
func Open(ctx context.Context, driver, dsn string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return db, nil
}

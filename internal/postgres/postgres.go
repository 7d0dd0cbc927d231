// Package postgres owns the database pool and the transactional helpers the
// lending engine runs its units of work through.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"libralend/internal/config"
)

// Open connects to Postgres and configures the connection pool.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	return db, nil
}

// RunSerializable executes fn inside a serializable transaction. The
// transaction commits when fn returns nil and rolls back otherwise, so a
// failed unit of work has no observable effect.
func RunSerializable(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Serialization failures can surface from any statement in fn, not just
	// writes; map them here so every path yields the retryable sentinel.
	if err := fn(tx); err != nil {
		return MapError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", MapError(err))
	}

	return nil
}

// RunSnapshot executes fn inside a read-only repeatable-read transaction, so
// every query in fn observes one consistent snapshot.
func RunSnapshot(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// Package sqldb holds the database/sql implementation shared by the sqlite and
// postgres drivers. Queries are written with ? placeholders and rebound to the
// driver's bindvar style by sqlx.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/jmoiron/sqlx"
)

// Dialect captures what differs between the supported databases once the
// schema is in place.
type Dialect struct {
	// DriverName is the database/sql driver to open.
	DriverName string

	// IsUniqueViolation reports whether err came from a UNIQUE constraint.
	IsUniqueViolation func(err error) bool
}

type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

// Open connects to dsn with the dialect's driver and verifies the connection.
func Open(ctx context.Context, d Dialect, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, d.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", d.DriverName, err)
	}
	return New(db, d), nil
}

// New wraps an already opened handle.
func New(db *sqlx.DB, d Dialect) *Store {
	if d.IsUniqueViolation == nil {
		d.IsUniqueViolation = func(error) bool { return false }
	}
	return &Store{db: db, dialect: d}
}

// DB exposes the underlying handle for migration drivers.
func (s *Store) DB() *sql.DB { return s.db.DB }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ApplyMigrations is a no-op here; the sqlite and postgres drivers override it
// with their embedded schema.
func (s *Store) ApplyMigrations() error { return nil }

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.dialect), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users { return &usersRepo{q: s.db, dialect: s.dialect} }

// mapError translates driver errors into the store sentinels.
func (d Dialect) mapError(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case d.IsUniqueViolation(err):
		return store.ErrAlreadyExists
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

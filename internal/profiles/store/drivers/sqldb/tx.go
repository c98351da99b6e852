package sqldb

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/jmoiron/sqlx"
)

type txStore struct {
	tx      *sqlx.Tx
	dialect Dialect
}

func newTx(tx *sqlx.Tx, d Dialect) *txStore {
	return &txStore{tx: tx, dialect: d}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer DB stays open after commit/rollback.
func (t *txStore) Close() error { return nil }

// Ping is a no-op for transactions, the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users { return &usersRepo{q: t.tx, dialect: t.dialect} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx

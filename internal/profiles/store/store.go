package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off it as methods so that a Tx-scoped
// Store hands out repositories bound to that transaction.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A non-nil error from fn rolls
	// the transaction back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// ListUsers returns every user, newest created_at first (id breaks ties).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts the user fields and timestamps and returns the
	// generated id. ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// GetUserByID returns ErrNotFound when no row has the id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// UpdateUser overwrites the five user fields and updated_at of u.ID.
	// created_at is never touched.
	UpdateUser(ctx context.Context, u domain.User) error
}

package sqldb

import (
	"context"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, first_name, last_name, email, age, bio, created_at, updated_at`

type usersRepo struct {
	q       sqlx.ExtContext
	dialect Dialect
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC`
	if err := sqlx.SelectContext(ctx, r.q, &users, query); err != nil {
		return nil, r.dialect.mapError("list users", err)
	}
	return users, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	query := r.q.Rebind(`INSERT INTO users (first_name, last_name, email, age, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	var id int64
	err := r.q.QueryRowxContext(ctx, query,
		u.FirstName, u.LastName, u.Email, u.Age, u.Bio, u.CreatedAt, u.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, r.dialect.mapError("create user", err)
	}
	return id, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	query := r.q.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.q, &u, query, id); err != nil {
		return domain.User{}, r.dialect.mapError("get user", err)
	}
	return u, nil
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	query := r.q.Rebind(`UPDATE users
		SET first_name = ?, last_name = ?, email = ?, age = ?, bio = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.q.ExecContext(ctx, query,
		u.FirstName, u.LastName, u.Email, u.Age, u.Bio, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return r.dialect.mapError("update user", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return r.dialect.mapError("update user", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

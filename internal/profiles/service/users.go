package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email address already exists")
)

type UserService struct {
	Store store.Store

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// now is UTC with microsecond precision, the finest both drivers keep.
func (s *UserService) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Truncate(time.Microsecond)
}

// ListUsers returns every profile, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// RegisterUser stores a new profile from already validated fields.
func (s *UserService) RegisterUser(ctx context.Context, f domain.UserFields) (domain.User, error) {
	l := slogx.FromContext(ctx)

	now := s.now()
	u := domain.User{UserFields: f, CreatedAt: now, UpdatedAt: now}

	id, err := s.Store.Users().CreateUser(ctx, u)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		l.Info("registration rejected: email already in use")
		return domain.User{}, ErrDuplicateEmail
	case err != nil:
		l.Error("failed to create user", "error", err)
		return domain.User{}, err
	}

	u.ID = id
	l.Info("user registered", "user_id", id)
	return u, nil
}

// GetUser fetches a single profile.
func (s *UserService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrUserNotFound
	case err != nil:
		slogx.FromContext(ctx).Error("failed to get user", "user_id", id, "error", err)
		return domain.User{}, err
	}
	return u, nil
}

// UpdateUser overwrites all user fields of an existing profile. The lookup
// and the write share a transaction, and updated_at always moves forward
// even when the clock has not.
func (s *UserService) UpdateUser(ctx context.Context, id int64, f domain.UserFields) (domain.User, error) {
	l := slogx.FromContext(ctx)

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		updatedAt := s.now()
		if !updatedAt.After(current.UpdatedAt) {
			updatedAt = current.UpdatedAt.Add(time.Microsecond)
		}

		updated = current
		updated.UserFields = f
		updated.UpdatedAt = updatedAt

		return tx.Users().UpdateUser(ctx, updated)
	})

	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrUserNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		l.Info("update rejected: email already in use", "user_id", id)
		return domain.User{}, ErrDuplicateEmail
	case err != nil:
		l.Error("failed to update user", "user_id", id, "error", err)
		return domain.User{}, err
	}

	l.Info("user updated", "user_id", id)
	return updated, nil
}

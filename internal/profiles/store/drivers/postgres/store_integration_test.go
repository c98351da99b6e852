//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/internal/profiles/store/drivers/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway postgres container and returns a migrated store.
func setupPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "profiles",
			"POSTGRES_PASSWORD": "profiles",
			"POSTGRES_DB":       "profiles",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://profiles:profiles@%s:%s/profiles?sslmode=disable", host, port.Port())
	st, err := postgres.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	st := setupPostgres(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.User{
		UserFields: domain.UserFields{
			FirstName: "Jo",
			LastName:  "Lee",
			Email:     "jo@example.com",
			Age:       30,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := st.Users().CreateUser(ctx, u)
	require.NoError(t, err)
	u.ID = id

	t.Run("get", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, u.UserFields, got.UserFields)
		require.True(t, got.CreatedAt.Equal(now))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := st.Users().CreateUser(ctx, u)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		changed := u
		changed.Age = 31
		changed.UpdatedAt = now.Add(time.Second)
		require.NoError(t, st.Users().UpdateUser(ctx, changed))

		got, err := st.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, 31, got.Age)
		require.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, id+1000)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, st.ApplyMigrations())
	})
}

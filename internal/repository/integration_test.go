//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"fast-zero/internal/config"
	"fast-zero/internal/db"
	"fast-zero/internal/domain"
	"fast-zero/internal/repository"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "fast_zero_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/fast_zero_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestPgUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	pool, err := db.NewPool(ctx, &config.Config{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.Migrate(ctx, pool))

	repo := repository.NewPgUserRepository(pool)

	alice, err := repo.Create(ctx, domain.User{Username: "alice", Email: "alice@exemplo.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.Equal(t, int64(1), alice.ID)
	require.False(t, alice.CreatedAt.IsZero())

	bob, err := repo.Create(ctx, domain.User{Username: "bob", Email: "bob@exemplo.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.Equal(t, int64(2), bob.ID)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := repo.Create(ctx, domain.User{Username: "alice", Email: "other@exemplo.com", PasswordHash: "hash"})
		require.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, domain.User{Username: "other", Email: "alice@exemplo.com", PasswordHash: "hash"})
		require.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("lookups", func(t *testing.T) {
		byEmail, err := repo.GetByEmail(ctx, "bob@exemplo.com")
		require.NoError(t, err)
		require.Equal(t, bob.ID, byEmail.ID)

		found, err := repo.FindByUsernameOrEmail(ctx, "nobody", "alice@exemplo.com")
		require.NoError(t, err)
		require.Equal(t, alice.ID, found.ID)

		_, err = repo.GetByEmail(ctx, "ghost@exemplo.com")
		require.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("list pages", func(t *testing.T) {
		users, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, users, 2)

		users, err = repo.List(ctx, 0, 1<<40)
		require.NoError(t, err)
		require.Len(t, users, 2)

		users, err = repo.List(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, bob.ID, users[0].ID)
	})

	t.Run("update collision", func(t *testing.T) {
		bob.Username = "alice"
		_, err := repo.Update(ctx, bob)
		require.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("update and delete", func(t *testing.T) {
		alice.Username = "alice_updated"
		updated, err := repo.Update(ctx, alice)
		require.NoError(t, err)
		require.Equal(t, "alice_updated", updated.Username)
		require.Equal(t, alice.ID, updated.ID)

		require.NoError(t, repo.Delete(ctx, alice.ID))
		require.ErrorIs(t, repo.Delete(ctx, alice.ID), repository.ErrUserNotFound)
	})
}

package integration

import (
	"context"
	"testing"

	"supermanager/internal/model"
	"supermanager/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	repo := repository.NewUserRepository(testDB.Pool, zerolog.Nop())
	ctx := context.Background()

	t.Run("Create and get by email", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := &model.User{
			Email:            "mario@example.com",
			Name:             "Mario",
			PasswordHash:     "$2a$10$abcdefghijklmnopqrstuv",
			Verified:         false,
			VerificationCode: "123456",
		}

		id, err := repo.Create(ctx, user)
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))

		got, err := repo.GetByEmail(ctx, "mario@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, id, got.ID)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.Name, got.Name)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
		assert.Equal(t, user.VerificationCode, got.VerificationCode)
		assert.False(t, got.Verified)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user := &model.User{Email: "mario@example.com", Name: "Mario", PasswordHash: "x"}
		_, err := repo.Create(ctx, user)
		require.NoError(t, err)

		_, err = repo.Create(ctx, &model.User{Email: "mario@example.com", Name: "Impostor", PasswordHash: "y"})
		assert.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("Unknown email is a miss", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		got, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Set verified", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		id, err := repo.Create(ctx, &model.User{
			Email: "mario@example.com", Name: "Mario", PasswordHash: "x", VerificationCode: "123456",
		})
		require.NoError(t, err)

		require.NoError(t, repo.SetVerified(ctx, id))

		got, err := repo.GetByEmail(ctx, "mario@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Verified)
	})

	t.Run("Set verified on unknown user", func(t *testing.T) {
		err := repo.SetVerified(ctx, 9999)
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

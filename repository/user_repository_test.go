package repository

import (
	"context"
	"testing"

	"rollf/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Upsert(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates on first sight", func(t *testing.T) {
		user, err := repo.Upsert(ctx, 123456, "testuser")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(123456), user.DiscordID)
		assert.Equal(t, "testuser", user.Username)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("refreshes username", func(t *testing.T) {
		_, err := repo.Upsert(ctx, 789012, "before")
		require.NoError(t, err)

		user, err := repo.Upsert(ctx, 789012, "after")
		require.NoError(t, err)
		assert.Equal(t, "after", user.Username)

		stored, err := repo.GetByDiscordID(ctx, 789012)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "after", stored.Username)
	})
}

func TestUserRepository_GetByDiscordID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByDiscordID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		created, err := repo.Upsert(ctx, 123456, "testuser")
		require.NoError(t, err)

		user, err := repo.GetByDiscordID(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, created.DiscordID, user.DiscordID)
		assert.Equal(t, created.Username, user.Username)
	})
}

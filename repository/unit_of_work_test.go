package repository

import (
	"context"
	"testing"
	"time"

	"rollf/domain/entities"
	"rollf/domain/services"
	"rollf/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitMakesWritesVisible(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.UserRepository().Upsert(ctx, 123456, "testuser")
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	// Visible outside the transaction
	user, err := NewUserRepository(testDB.DB).GetByDiscordID(ctx, 123456)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB)
	ctx := context.Background()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.UserRepository().Upsert(ctx, 123456, "testuser")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())

	user, err := NewUserRepository(testDB.DB).GetByDiscordID(ctx, 123456)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUnitOfWork_AccessorPanicsBeforeBegin(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	uow := NewUnitOfWorkFactory(testDB.DB).Create()

	assert.Panics(t, func() { uow.RollRepository() })
	assert.Panics(t, func() { uow.UserRepository() })
	assert.Panics(t, func() { uow.GuildSettingsRepository() })
}

func TestUnitOfWork_DoubleBeginFails(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	uow := NewUnitOfWorkFactory(testDB.DB).Create()

	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(ctx))
}

// The full daily-roll flow against a real store: first roll lands, the
// second attempt the same day is denied with the next-midnight hint.
func TestRollFlow_OncePerDay(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB)
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	service := services.NewRollService(uow.RollRepository(), uow.UserRepository())

	outcome, err := service.Roll(ctx, 123456, "testuser", now)
	require.NoError(t, err)
	require.NotNil(t, outcome.Roll)
	assert.False(t, outcome.AlreadyRolled)
	require.NoError(t, uow.Commit())

	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))
	service = services.NewRollService(uow.RollRepository(), uow.UserRepository())

	again, err := service.Roll(ctx, 123456, "testuser", now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, again.AlreadyRolled)
	assert.Nil(t, again.Roll)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), again.NextRollAt)
	require.NoError(t, uow.Commit())

	// Exactly one stored roll
	totals, err := NewRollRepository(testDB.DB).UserTotals(ctx, 123456)
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Rolls)
	assert.Equal(t, int64(outcome.Roll.Value), totals.Score)
	assert.GreaterOrEqual(t, outcome.Roll.Value, entities.MinRollValue)
	assert.LessOrEqual(t, outcome.Roll.Value, entities.MaxRollValue)
}

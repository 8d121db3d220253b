package bot

import (
	"context"
	"testing"
	"time"

	"rollf/application"
	"rollf/domain/entities"
	"rollf/domain/interfaces"
	"rollf/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeUnitOfWork struct {
	guildSettingsRepo *testhelpers.MockGuildSettingsRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) RollRepository() interfaces.RollRepository { return nil }
func (u *fakeUnitOfWork) UserRepository() interfaces.UserRepository { return nil }
func (u *fakeUnitOfWork) GuildSettingsRepository() interfaces.GuildSettingsRepository {
	return u.guildSettingsRepo
}

type fakeUnitOfWorkFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUnitOfWorkFactory) Create() application.UnitOfWork { return f.uow }

func newTestBot(guildSettingsRepo *testhelpers.MockGuildSettingsRepository) *Bot {
	return &Bot{
		uowFactory: &fakeUnitOfWorkFactory{
			uow: &fakeUnitOfWork{guildSettingsRepo: guildSettingsRepo},
		},
	}
}

func guildSettings(sent bool, channelID *int64) *entities.GuildSettings {
	return &entities.GuildSettings{
		GuildID:        500,
		RollChannelID:  channelID,
		OnboardingSent: sent,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestOnboardingNeeded_FreshGuild(t *testing.T) {
	repo := new(testhelpers.MockGuildSettingsRepository)
	repo.On("GetOrCreateGuildSettings", mock.Anything, int64(500)).
		Return(guildSettings(false, nil), nil)

	needed, err := newTestBot(repo).onboardingNeeded(context.Background(), 500)

	require.NoError(t, err)
	assert.True(t, needed)
}

func TestOnboardingNeeded_AlreadySent(t *testing.T) {
	repo := new(testhelpers.MockGuildSettingsRepository)
	repo.On("GetOrCreateGuildSettings", mock.Anything, int64(500)).
		Return(guildSettings(true, nil), nil)

	needed, err := newTestBot(repo).onboardingNeeded(context.Background(), 500)

	require.NoError(t, err)
	assert.False(t, needed)
}

// A guild that already has a roll channel configured is set up even when the
// sent flag is missing, so a re-join must not repeat the instructions.
func TestOnboardingNeeded_ChannelConfigured(t *testing.T) {
	channelID := int64(42)
	repo := new(testhelpers.MockGuildSettingsRepository)
	repo.On("GetOrCreateGuildSettings", mock.Anything, int64(500)).
		Return(guildSettings(false, &channelID), nil)

	needed, err := newTestBot(repo).onboardingNeeded(context.Background(), 500)

	require.NoError(t, err)
	assert.False(t, needed)
}

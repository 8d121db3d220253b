package testhelpers

import (
	"context"
	"time"

	"rollf/domain/entities"
	"rollf/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockRollRepository is a mock implementation of RollRepository
type MockRollRepository struct {
	mock.Mock
}

func (m *MockRollRepository) Create(ctx context.Context, roll *entities.Roll) error {
	args := m.Called(ctx, roll)
	return args.Error(0)
}

func (m *MockRollRepository) ExistsForDate(ctx context.Context, actorID int64, actorType entities.ActorType, date time.Time) (bool, error) {
	args := m.Called(ctx, actorID, actorType, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockRollRepository) Leaderboard(ctx context.Context, filter interfaces.RollFilter, kind interfaces.AggregateKind, limit int) ([]*entities.LeaderboardEntry, error) {
	args := m.Called(ctx, filter, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LeaderboardEntry), args.Error(1)
}

func (m *MockRollRepository) ScoreRank(ctx context.Context, actorID int64, filter interfaces.RollFilter, kind interfaces.AggregateKind) (*entities.RankedScore, error) {
	args := m.Called(ctx, actorID, filter, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RankedScore), args.Error(1)
}

func (m *MockRollRepository) ParticipationStats(ctx context.Context, filter interfaces.RollFilter) (*entities.ParticipationStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ParticipationStats), args.Error(1)
}

func (m *MockRollRepository) DistinctRollDates(ctx context.Context, actorID int64) ([]time.Time, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockRollRepository) AllActorRollDates(ctx context.Context) ([]*interfaces.ActorDates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*interfaces.ActorDates), args.Error(1)
}

func (m *MockRollRepository) UserTotals(ctx context.Context, actorID int64) (*interfaces.UserRollTotals, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.UserRollTotals), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, discordID int64, username string) (*entities.User, error) {
	args := m.Called(ctx, discordID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// MockGuildSettingsRepository is a mock implementation of GuildSettingsRepository
type MockGuildSettingsRepository struct {
	mock.Mock
}

func (m *MockGuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsRepository) SetRollChannel(ctx context.Context, guildID, channelID int64) error {
	args := m.Called(ctx, guildID, channelID)
	return args.Error(0)
}

func (m *MockGuildSettingsRepository) MarkOnboardingSent(ctx context.Context, guildID int64) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}

func (m *MockGuildSettingsRepository) ListRollChannels(ctx context.Context) ([]*entities.RollChannel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RollChannel), args.Error(1)
}

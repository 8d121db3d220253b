package services

import (
	"context"
	"testing"
	"time"

	"rollf/domain/entities"
	"rollf/domain/interfaces"
	"rollf/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignRanks_TiesShareRank(t *testing.T) {
	entries := []*entities.LeaderboardEntry{
		{ActorID: 1, Score: 100},
		{ActorID: 2, Score: 100},
		{ActorID: 3, Score: 90},
		{ActorID: 4, Score: 90},
		{ActorID: 5, Score: 80},
	}

	assignRanks(entries)

	// Competition ranking: 1, 1, 3, 3, 5
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, 3, entries[3].Rank)
	assert.Equal(t, 5, entries[4].Rank)
}

func TestAssignRanks_NoTies(t *testing.T) {
	entries := []*entities.LeaderboardEntry{
		{ActorID: 1, Score: 30},
		{ActorID: 2, Score: 20},
		{ActorID: 3, Score: 10},
	}

	assignRanks(entries)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestFilterFor_DayBoardIncludesBot(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	filter, kind := filterFor(entities.PeriodDay, now)

	assert.Equal(t, interfaces.AggregateMax, kind)
	assert.Contains(t, filter.ActorTypes, entities.ActorTypeBot)
	assert.Contains(t, filter.ActorTypes, entities.ActorTypeUser)
	require.NotNil(t, filter.Window)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), filter.Window.Start)
}

func TestFilterFor_PeriodBoardsAreUserOnlySums(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	for _, period := range []entities.Period{entities.PeriodWeek, entities.PeriodMonth, entities.PeriodYear} {
		filter, kind := filterFor(period, now)
		assert.Equal(t, interfaces.AggregateSum, kind, "period %s", period)
		assert.Equal(t, []entities.ActorType{entities.ActorTypeUser}, filter.ActorTypes, "period %s", period)
		assert.NotNil(t, filter.Window, "period %s", period)
	}

	filter, kind := filterFor(entities.PeriodAllTime, now)
	assert.Equal(t, interfaces.AggregateSum, kind)
	assert.Nil(t, filter.Window)
}

func TestLeaderboardService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	mockRollRepo := new(testhelpers.MockRollRepository)
	service := NewLeaderboardService(mockRollRepo, NewStreakService(mockRollRepo))

	mockRollRepo.On("Leaderboard", ctx, mock.AnythingOfType("interfaces.RollFilter"), interfaces.AggregateSum, 10).
		Return([]*entities.LeaderboardEntry{
			{ActorID: 1, Username: "alpha", Score: 500},
			{ActorID: 2, Username: "beta", Score: 500},
			{ActorID: 3, Username: "gamma", Score: 400},
		}, nil)

	entries, err := service.Leaderboard(ctx, entities.PeriodAllTime, now, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)

	mockRollRepo.AssertExpectations(t)
}

func TestLeaderboardService_StreakLeaderboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	mockRollRepo := new(testhelpers.MockRollRepository)
	service := NewLeaderboardService(mockRollRepo, NewStreakService(mockRollRepo))

	mockRollRepo.On("AllActorRollDates", ctx).Return([]*interfaces.ActorDates{
		{ActorID: 1, Username: "steady", Dates: []time.Time{
			day(2024, 3, 13), day(2024, 3, 14), day(2024, 3, 15),
		}},
		{ActorID: 2, Username: "sporadic", Dates: []time.Time{
			day(2024, 3, 1), day(2024, 3, 15),
		}},
	}, nil)

	entries, err := service.StreakLeaderboard(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "steady", entries[0].Username)
	assert.Equal(t, 3, entries[0].Best)
	assert.Equal(t, 3, entries[0].Current)

	assert.Equal(t, "sporadic", entries[1].Username)
	assert.Equal(t, 1, entries[1].Best)
	assert.Equal(t, 1, entries[1].Current)
}

func TestLeaderboardService_UserStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	mockRollRepo := new(testhelpers.MockRollRepository)
	service := NewLeaderboardService(mockRollRepo, NewStreakService(mockRollRepo))

	mockRollRepo.On("UserTotals", ctx, int64(123456)).Return(&interfaces.UserRollTotals{
		Rolls:         12,
		Score:         640,
		Best:          98,
		Average:       53.3,
		Last10Average: 55.0,
	}, nil)
	mockRollRepo.On("ScoreRank", ctx, int64(123456), mock.AnythingOfType("interfaces.RollFilter"), interfaces.AggregateSum).
		Return(&entities.RankedScore{Rank: 4, Score: 640}, nil)
	mockRollRepo.On("DistinctRollDates", ctx, int64(123456)).Return([]time.Time{
		day(2024, 3, 14), day(2024, 3, 15),
	}, nil)

	stats, err := service.UserStats(ctx, 123456, now)
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 12, stats.TotalRolls)
	assert.Equal(t, int64(640), stats.TotalScore)
	assert.Equal(t, 98, stats.BestRoll)
	assert.Equal(t, 4, stats.Rank)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.BestStreak)
}

func TestLeaderboardService_UserStats_NeverRolled(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

	mockRollRepo := new(testhelpers.MockRollRepository)
	service := NewLeaderboardService(mockRollRepo, NewStreakService(mockRollRepo))

	mockRollRepo.On("UserTotals", ctx, int64(999)).Return(&interfaces.UserRollTotals{}, nil)

	stats, err := service.UserStats(ctx, 999, now)
	require.NoError(t, err)
	assert.Nil(t, stats)

	mockRollRepo.AssertNotCalled(t, "ScoreRank")
}

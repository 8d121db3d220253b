package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rollf/domain/entities"
	"rollf/domain/interfaces"
)

// LeaderboardLimit is the number of visible rows on any board
const LeaderboardLimit = 10

// LeaderboardService aggregates rolls into ranked boards and per-participant
// statistics
type LeaderboardService struct {
	rollRepo interfaces.RollRepository
	streaks  *StreakService
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(rollRepo interfaces.RollRepository, streaks *StreakService) *LeaderboardService {
	return &LeaderboardService{
		rollRepo: rollRepo,
		streaks:  streaks,
	}
}

// filterFor builds the aggregation inputs for a period. The day board shows
// the single best roll of the day and includes the bot's own roll; every
// other period sums participant rolls only.
func filterFor(period entities.Period, now time.Time) (interfaces.RollFilter, interfaces.AggregateKind) {
	filter := interfaces.RollFilter{
		ActorTypes: []entities.ActorType{entities.ActorTypeUser},
	}
	kind := interfaces.AggregateSum

	if period == entities.PeriodDay {
		filter.ActorTypes = []entities.ActorType{entities.ActorTypeUser, entities.ActorTypeBot}
		kind = interfaces.AggregateMax
	}
	if window, ok := period.Window(now); ok {
		filter.Window = &window
	}
	return filter, kind
}

// Leaderboard returns the period's top entries with tie-aware competition
// ranks: equal scores share a rank, the next lower score ranks below all of
// them (1, 1, 3 rather than 1, 1, 2).
func (s *LeaderboardService) Leaderboard(ctx context.Context, period entities.Period, now time.Time, limit int) ([]*entities.LeaderboardEntry, error) {
	filter, kind := filterFor(period, now)

	entries, err := s.rollRepo.Leaderboard(ctx, filter, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s leaderboard: %w", period, err)
	}

	assignRanks(entries)
	return entries, nil
}

// RankOf returns a participant's rank and score for the period, even when
// they fall outside the visible board. Returns nil when they have no rolls
// in the window.
func (s *LeaderboardService) RankOf(ctx context.Context, discordID int64, period entities.Period, now time.Time) (*entities.RankedScore, error) {
	filter, kind := filterFor(period, now)

	ranked, err := s.rollRepo.ScoreRank(ctx, discordID, filter, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to rank user %d for %s: %w", discordID, period, err)
	}
	return ranked, nil
}

// ParticipationStats counts distinct participants and total rolls for the period
func (s *LeaderboardService) ParticipationStats(ctx context.Context, period entities.Period, now time.Time) (*entities.ParticipationStats, error) {
	filter, _ := filterFor(period, now)

	stats, err := s.rollRepo.ParticipationStats(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load participation stats for %s: %w", period, err)
	}
	return stats, nil
}

// StreakLeaderboard ranks participants by best streak. There is no time
// window; a participant with no rolls has no entry at all.
func (s *LeaderboardService) StreakLeaderboard(ctx context.Context, now time.Time, limit int) ([]*entities.StreakEntry, error) {
	actors, err := s.rollRepo.AllActorRollDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roll dates: %w", err)
	}

	today := entities.DateOf(now, now.Location())
	entries := make([]*entities.StreakEntry, 0, len(actors))
	for _, actor := range actors {
		current, best := CalculateStreaks(actor.Dates, today)
		entries = append(entries, &entities.StreakEntry{
			ActorID:  actor.ActorID,
			Username: actor.Username,
			Current:  current,
			Best:     best,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Best > entries[j].Best
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// UserStats assembles the /stats block: all-time totals, global rank and
// streaks. Returns nil when the participant has never rolled.
func (s *LeaderboardService) UserStats(ctx context.Context, discordID int64, now time.Time) (*entities.UserRollStats, error) {
	totals, err := s.rollRepo.UserTotals(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load totals for %d: %w", discordID, err)
	}
	if totals.Rolls == 0 {
		return nil, nil
	}

	ranked, err := s.RankOf(ctx, discordID, entities.PeriodAllTime, now)
	if err != nil {
		return nil, err
	}
	rank := 0
	if ranked != nil {
		rank = ranked.Rank
	}

	today := entities.DateOf(now, now.Location())
	current, best, err := s.streaks.Streaks(ctx, discordID, today)
	if err != nil {
		return nil, err
	}

	return &entities.UserRollStats{
		TotalRolls:    totals.Rolls,
		TotalScore:    totals.Score,
		BestRoll:      totals.Best,
		Average:       totals.Average,
		Last10Average: totals.Last10Average,
		Rank:          rank,
		CurrentStreak: current,
		BestStreak:    best,
	}, nil
}

// assignRanks writes competition ranks onto score-descending entries:
// rank = 1 + number of entries with a strictly greater score
func assignRanks(entries []*entities.LeaderboardEntry) {
	for i, entry := range entries {
		if i > 0 && entry.Score == entries[i-1].Score {
			entry.Rank = entries[i-1].Rank
		} else {
			entry.Rank = i + 1
		}
	}
}

package entities

// LeaderboardEntry is one row of a score leaderboard
type LeaderboardEntry struct {
	ActorID  int64
	Username string
	Score    int64
	Rank     int
}

// RankedScore is a single participant's rank and score within a period,
// computable even when the participant is outside the visible top set
type RankedScore struct {
	Rank  int
	Score int64
}

// StreakEntry is one row of the streak leaderboard. Participants with no
// rolls at all never appear here.
type StreakEntry struct {
	ActorID  int64
	Username string
	Current  int
	Best     int
}

// ParticipationStats summarizes activity within a period
type ParticipationStats struct {
	DistinctParticipants int
	TotalRolls           int
}

// UserRollStats is the per-participant statistics block behind /stats
type UserRollStats struct {
	TotalRolls    int
	TotalScore    int64
	BestRoll      int
	Average       float64
	Last10Average float64
	Rank          int
	CurrentStreak int
	BestStreak    int
}

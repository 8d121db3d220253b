package interfaces

import (
	"context"
	"time"

	"rollf/domain/entities"
)

// AggregateKind selects how per-actor scores are computed within a window
type AggregateKind string

const (
	AggregateMax AggregateKind = "max"
	AggregateSum AggregateKind = "sum"
)

// RollFilter restricts aggregation queries to a window and actor classes.
// A nil Window means the unbounded alltime query.
type RollFilter struct {
	Window     *entities.TimeRange
	ActorTypes []entities.ActorType
}

// ActorDates groups a participant's distinct roll dates for streak queries
type ActorDates struct {
	ActorID  int64
	Username string
	Dates    []time.Time
}

// UserRollTotals are the raw per-participant aggregates behind /stats
type UserRollTotals struct {
	Rolls         int
	Score         int64
	Best          int
	Average       float64
	Last10Average float64
}

// RollRepository persists and aggregates roll records
type RollRepository interface {
	// Create inserts a roll. It returns entities.ErrAlreadyRolledToday when
	// the actor already has a roll on the record's calendar date; the
	// uniqueness is enforced by the store, not by a prior read.
	Create(ctx context.Context, roll *entities.Roll) error

	// ExistsForDate reports whether the actor has a roll on the given
	// calendar date
	ExistsForDate(ctx context.Context, actorID int64, actorType entities.ActorType, date time.Time) (bool, error)

	// Leaderboard returns the best `limit` actors by aggregated score,
	// ordered descending. Rank assignment is left to the caller.
	Leaderboard(ctx context.Context, filter RollFilter, kind AggregateKind, limit int) ([]*entities.LeaderboardEntry, error)

	// ScoreRank returns an actor's competition rank and score over the full
	// aggregate, regardless of any leaderboard truncation. Returns nil when
	// the actor has no rolls matching the filter.
	ScoreRank(ctx context.Context, actorID int64, filter RollFilter, kind AggregateKind) (*entities.RankedScore, error)

	// ParticipationStats counts distinct participants and total rolls
	ParticipationStats(ctx context.Context, filter RollFilter) (*entities.ParticipationStats, error)

	// DistinctRollDates returns the ascending distinct calendar dates on
	// which the participant rolled
	DistinctRollDates(ctx context.Context, actorID int64) ([]time.Time, error)

	// AllActorRollDates returns every participant's distinct roll dates,
	// dates ascending within each actor
	AllActorRollDates(ctx context.Context) ([]*ActorDates, error)

	// UserTotals returns the all-time aggregates for one participant
	UserTotals(ctx context.Context, actorID int64) (*UserRollTotals, error)
}

// UserRepository persists participant profiles
type UserRepository interface {
	// Upsert creates the profile on first sight and refreshes the username
	// on every subsequent call
	Upsert(ctx context.Context, discordID int64, username string) (*entities.User, error)

	// GetByDiscordID returns nil, nil when the profile does not exist
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error)
}

// GuildSettingsRepository persists per-guild configuration
type GuildSettingsRepository interface {
	GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error)

	// SetRollChannel configures the guild's announcement channel, replacing
	// any previous one
	SetRollChannel(ctx context.Context, guildID, channelID int64) error

	// MarkOnboardingSent records the one-shot welcome as delivered
	MarkOnboardingSent(ctx context.Context, guildID int64) error

	// ListRollChannels returns every guild with a configured channel
	ListRollChannels(ctx context.Context) ([]*entities.RollChannel, error)
}

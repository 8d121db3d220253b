package entities

import (
	"fmt"
	"time"
)

// ActorType distinguishes participant rolls from the bot's own daily roll
type ActorType string

const (
	ActorTypeUser ActorType = "user"
	ActorTypeBot  ActorType = "bot"
)

// BotActorID is the actor_id used for the bot's unattended daily roll
const BotActorID int64 = 0

// Roll value bounds
const (
	MinRollValue = 1
	MaxRollValue = 100
)

// Roll represents a single daily roll. Rolls are immutable once created.
type Roll struct {
	ID        int64     `db:"id"`
	ActorID   int64     `db:"actor_id"`
	Username  string    `db:"username"`
	Value     int       `db:"value"`
	ActorType ActorType `db:"actor_type"`
	RolledAt  time.Time `db:"rolled_at"`
	// RolledOn is the calendar date of RolledAt in the configured timezone,
	// normalized to local midnight. It carries the uniqueness constraint.
	RolledOn  time.Time `db:"rolled_on"`
	CreatedAt time.Time `db:"created_at"`
}

// NewUserRoll creates a participant roll with validation
func NewUserRoll(discordID int64, username string, value int, rolledAt time.Time) (*Roll, error) {
	if discordID <= 0 {
		return nil, fmt.Errorf("discordID must be greater than 0, got %d", discordID)
	}
	return newRoll(discordID, username, value, ActorTypeUser, rolledAt)
}

// NewBotRoll creates the bot's system roll with validation
func NewBotRoll(botName string, value int, rolledAt time.Time) (*Roll, error) {
	return newRoll(BotActorID, botName, value, ActorTypeBot, rolledAt)
}

func newRoll(actorID int64, username string, value int, actorType ActorType, rolledAt time.Time) (*Roll, error) {
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if value < MinRollValue || value > MaxRollValue {
		return nil, fmt.Errorf("value must be in [%d,%d], got %d", MinRollValue, MaxRollValue, value)
	}
	if rolledAt.IsZero() {
		return nil, fmt.Errorf("rolledAt cannot be zero time")
	}

	return &Roll{
		ActorID:   actorID,
		Username:  username,
		Value:     value,
		ActorType: actorType,
		RolledAt:  rolledAt,
		RolledOn:  DateOf(rolledAt, rolledAt.Location()),
	}, nil
}

// IsBot reports whether this roll was produced by the unattended scheduler
func (r *Roll) IsBot() bool {
	return r.ActorType == ActorTypeBot
}

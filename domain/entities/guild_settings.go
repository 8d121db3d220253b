package entities

import "time"

// GuildSettings holds per-guild configuration: the channel the daily bot roll
// is announced in (at most one per guild, a new /setchannel replaces the old
// one) and the one-shot onboarding flag.
type GuildSettings struct {
	GuildID        int64     `db:"guild_id"`
	RollChannelID  *int64    `db:"roll_channel_id"`
	OnboardingSent bool      `db:"onboarding_sent"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// HasRollChannel reports whether a daily roll channel is configured
func (g *GuildSettings) HasRollChannel() bool {
	return g.RollChannelID != nil && *g.RollChannelID != 0
}

// RollChannel is the destination the scheduler fans out to: one row per guild
// with a configured channel.
type RollChannel struct {
	GuildID   int64 `db:"guild_id"`
	ChannelID int64 `db:"roll_channel_id"`
}

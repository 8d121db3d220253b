package entities

import "time"

// User is a participant profile. It is created on a participant's first roll
// and its username tracks the most recent one seen; profiles are never deleted.
type User struct {
	DiscordID int64     `db:"discord_id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

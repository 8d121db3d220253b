package testutil

import (
	"time"

	"rollf/domain/entities"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(discordID int64, username string) *entities.User {
	now := time.Now()
	return &entities.User{
		DiscordID: discordID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestRoll creates a user roll on a specific instant
func CreateTestRoll(discordID int64, username string, value int, rolledAt time.Time) *entities.Roll {
	return &entities.Roll{
		ActorID:   discordID,
		Username:  username,
		Value:     value,
		ActorType: entities.ActorTypeUser,
		RolledAt:  rolledAt,
		RolledOn:  entities.DateOf(rolledAt, rolledAt.Location()),
	}
}

// CreateTestBotRoll creates the scheduler's roll on a specific instant
func CreateTestBotRoll(botName string, value int, rolledAt time.Time) *entities.Roll {
	roll := CreateTestRoll(entities.BotActorID, botName, value, rolledAt)
	roll.ActorType = entities.ActorTypeBot
	return roll
}

// CreateTestGuildSettings creates guild settings with a configured roll channel
func CreateTestGuildSettings(guildID, channelID int64) *entities.GuildSettings {
	return &entities.GuildSettings{
		GuildID:       guildID,
		RollChannelID: &channelID,
	}
}

package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// commandDefinitions lists every slash command the bot registers. All
// commands are guild-only: the handlers read i.Member, which Discord omits
// for DM interactions.
func commandDefinitions() []*discordgo.ApplicationCommand {
	dmPermission := false

	return []*discordgo.ApplicationCommand{
		{
			Name:         "roll",
			Description:  "Roll your daily number (once per day)",
			DMPermission: &dmPermission,
		},
		{
			Name:         "leaderboards",
			Description:  "Show the leaderboards",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "board",
					Description: "Which board to show (defaults to today + all time)",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Today", Value: "day"},
						{Name: "This Week", Value: "week"},
						{Name: "This Month", Value: "month"},
						{Name: "This Year", Value: "year"},
						{Name: "All Time", Value: "alltime"},
						{Name: "Streaks", Value: "streaks"},
					},
				},
			},
		},
		{
			Name:         "stats",
			Description:  "View roll statistics",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check stats for (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:         "setchannel",
			Description:  "Set the channel for the automatic daily roll (admin only)",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "The channel to post daily rolls in",
					Required:    true,
				},
			},
		},
		{
			Name:         "help",
			Description:  "Show the setup instructions (admin only)",
			DMPermission: &dmPermission,
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range commandDefinitions() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

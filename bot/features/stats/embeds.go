package stats

import (
	"fmt"

	"rollf/bot/common"
	"rollf/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// buildStatsEmbed renders the /stats block for one participant
func buildStatsEmbed(username string, stats *entities.UserRollStats) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Stats for %s", username),
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "All-time",
				Value: fmt.Sprintf(
					"Total rolls: **%d**\n"+
						"Total score: **%s**\n"+
						"Global rank: **#%d**\n"+
						"Best roll: **%d**",
					stats.TotalRolls,
					common.FormatScore(stats.TotalScore),
					stats.Rank,
					stats.BestRoll,
				),
				Inline: false,
			},
			{
				Name: "Averages",
				Value: fmt.Sprintf(
					"All-time avg: **%.1f**\n"+
						"Last 10 rolls avg: **%.1f**",
					stats.Average,
					stats.Last10Average,
				),
				Inline: false,
			},
			{
				Name: "Streaks",
				Value: fmt.Sprintf(
					"Current streak: **%d**\n"+
						"Best streak: **%d**",
					stats.CurrentStreak,
					stats.BestStreak,
				),
				Inline: false,
			},
		},
	}
}

package leaderboard

import (
	"fmt"
	"strings"
	"time"

	"rollf/bot/common"
	"rollf/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// boardStreaks is the board option value for the streak leaderboard
const boardStreaks = "streaks"

// periodTitles maps periods to their board headings
var periodTitles = map[entities.Period]string{
	entities.PeriodDay:     "Today — Highest Roll",
	entities.PeriodWeek:    "This Week",
	entities.PeriodMonth:   "This Month",
	entities.PeriodYear:    "This Year",
	entities.PeriodAllTime: "All Time",
}

// buildOverviewEmbed is the default /leaderboards view. resetAt is the next
// local midnight, when the day board starts over.
func buildOverviewEmbed(today, alltime []*entities.LeaderboardEntry, resetAt time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Leaderboards",
		Description: fmt.Sprintf("Today's board resets %s", common.FormatDiscordTimestamp(resetAt, "R")),
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   periodTitles[entities.PeriodDay],
				Value:  scoreTable(today, "ROLL", "No rolls today."),
				Inline: false,
			},
			{
				Name:   periodTitles[entities.PeriodAllTime],
				Value:  scoreTable(alltime, "TOTAL", "No data."),
				Inline: false,
			},
		},
	}
}

// buildPeriodEmbed renders a single period board
func buildPeriodEmbed(period entities.Period, entries []*entities.LeaderboardEntry) *discordgo.MessageEmbed {
	scoreHeader := "TOTAL"
	if period == entities.PeriodDay {
		scoreHeader = "ROLL"
	}
	return &discordgo.MessageEmbed{
		Title: "Leaderboards",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   periodTitles[period],
				Value:  scoreTable(entries, scoreHeader, "No data."),
				Inline: false,
			},
		},
	}
}

// buildStreakEmbed renders the consecutive-day streak board
func buildStreakEmbed(entries []*entities.StreakEntry) *discordgo.MessageEmbed {
	var lines []string
	header := fmt.Sprintf("%-3s %-16s %5s %5s", "#", "USER", "BEST", "NOW")
	lines = append(lines, header, strings.Repeat("-", len(header)))

	for n, entry := range entries {
		lines = append(lines, fmt.Sprintf("%-3d %-16s %5d %5d",
			n+1, common.TrimName(entry.Username), entry.Best, entry.Current))
	}

	block := "No data."
	if len(entries) > 0 {
		block = strings.Join(lines, "\n")
	}

	return &discordgo.MessageEmbed{
		Title: "Leaderboards",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Streaks — Consecutive Days",
				Value:  fmt.Sprintf("```%s```", block),
				Inline: false,
			},
		},
	}
}

// scoreTable renders ranked entries as a monospace code block. Tied entries
// show the same rank.
func scoreTable(entries []*entities.LeaderboardEntry, scoreHeader, empty string) string {
	if len(entries) == 0 {
		return fmt.Sprintf("```%s```", empty)
	}

	width := 4
	if scoreHeader != "ROLL" {
		width = 9
	}

	var lines []string
	header := fmt.Sprintf("%-3s %-16s %*s", "#", "USER", width, scoreHeader)
	lines = append(lines, header, strings.Repeat("-", len(header)))

	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%-3d %-16s %*s",
			entry.Rank, common.TrimName(entry.Username), width, common.FormatScore(entry.Score)))
	}

	return fmt.Sprintf("```%s```", strings.Join(lines, "\n"))
}

package stats

import (
	"context"
	"time"

	"rollf/bot/common"
	"rollf/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleStats shows the all-time statistics block for a participant,
// defaulting to the caller
func (f *Feature) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	target := i.Member.User
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 && opts[0].Name == "user" {
		target = opts[0].UserValue(s)
	}

	targetID, err := common.ParseUserID(target.ID)
	if err != nil {
		return common.NewSystemError(err, "Failed to parse user ID")
	}

	now := time.Now().In(f.location)
	ctx := context.Background()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return common.NewSystemError(err, "Error beginning transaction")
	}
	defer uow.Rollback()

	streakService := services.NewStreakService(uow.RollRepository())
	boardService := services.NewLeaderboardService(uow.RollRepository(), streakService)

	userStats, err := boardService.UserStats(ctx, targetID, now)
	if err != nil {
		return common.NewSystemError(err, "Failed to load statistics")
	}

	if err := uow.Commit(); err != nil {
		return common.NewSystemError(err, "Error committing transaction")
	}

	if userStats == nil {
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "No statistics exists for this user.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			log.Errorf("Failed to respond to interaction: %v", err)
		}
		return nil
	}

	embed := buildStatsEmbed(target.Username, userStats)

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
	return nil
}

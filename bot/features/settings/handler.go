package settings

import (
	"context"
	"fmt"

	"rollf/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleSetChannel handles /setchannel. Each guild has at most one daily
// roll channel; setting a new one replaces the previous choice.
func (f *Feature) handleSetChannel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !common.HasManageGuild(s, i) {
		return common.NewUserError(
			"You need the Manage Server permission to use this command",
			"setchannel denied for member without Manage Server")
	}

	guildID, err := common.ParseUserID(i.GuildID)
	if err != nil {
		return common.NewSystemError(err, "Failed to parse guild ID")
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return common.NewUserError(
			"Pick a channel for daily rolls",
			"setchannel called without a channel option")
	}

	channel := options[0].ChannelValue(s)
	channelID, err := common.ParseUserID(channel.ID)
	if err != nil {
		return common.NewSystemError(err, "Failed to parse channel ID")
	}

	ctx := context.Background()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return common.NewSystemError(err, "Error beginning transaction")
	}
	defer uow.Rollback()

	if err := uow.GuildSettingsRepository().SetRollChannel(ctx, guildID, channelID); err != nil {
		return common.NewSystemError(err, "Failed to set roll channel")
	}

	if err := uow.Commit(); err != nil {
		return common.NewSystemError(err, "Error committing transaction")
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Daily rolls will be posted in <#%d>", channelID),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
	return nil
}

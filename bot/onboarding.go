package bot

import (
	"context"

	"rollf/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleGuildCreate posts the one-shot onboarding message when the bot joins
// a guild. The sent flag is only written after a successful post, so a guild
// with no postable channel gets the message on a later join.
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	ctx := context.Background()

	guildID, err := common.ParseUserID(g.ID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	needed, err := b.onboardingNeeded(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to check onboarding state for guild %d: %v", guildID, err)
		return
	}
	if !needed {
		return
	}

	channelID := firstPostableChannel(s, g.Guild)
	if channelID == "" {
		// No channel the bot can post in. Stay silent.
		return
	}

	if _, err := s.ChannelMessageSend(channelID, common.OnboardingText); err != nil {
		log.Warnf("Failed to send onboarding message to guild %d: %v", guildID, err)
		return
	}

	if err := b.markOnboardingSent(ctx, guildID); err != nil {
		log.Errorf("Failed to mark onboarding sent for guild %d: %v", guildID, err)
		return
	}

	log.WithFields(log.Fields{
		"guild_id":   guildID,
		"guild_name": g.Name,
	}).Info("Onboarding message delivered")
}

// onboardingNeeded reports whether the guild still needs the setup message.
// A guild with a roll channel already configured is set up, even if the sent
// flag predates it (a re-join after the bot was kicked and re-invited).
func (b *Bot) onboardingNeeded(ctx context.Context, guildID int64) (bool, error) {
	uow := b.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	settings, err := uow.GuildSettingsRepository().GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return false, err
	}

	if err := uow.Commit(); err != nil {
		return false, err
	}
	return !settings.OnboardingSent && !settings.HasRollChannel(), nil
}

func (b *Bot) markOnboardingSent(ctx context.Context, guildID int64) error {
	uow := b.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.GuildSettingsRepository().MarkOnboardingSent(ctx, guildID); err != nil {
		return err
	}
	return uow.Commit()
}

// firstPostableChannel returns the first text channel the bot can both view
// and send messages in, or "" when there is none
func firstPostableChannel(s *discordgo.Session, g *discordgo.Guild) string {
	for _, ch := range g.Channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		perms, err := s.UserChannelPermissions(s.State.User.ID, ch.ID)
		if err != nil {
			continue
		}
		needed := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages)
		if perms&needed == needed {
			return ch.ID
		}
	}
	return ""
}

package bot

import (
	"context"
	"errors"

	"rollf/application"
	"rollf/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// announcer delivers scheduler announcements over the Discord session. It
// implements application.Announcer: outcomes are classified values, never
// errors, so the scheduler can decide per destination what to do.
type announcer struct {
	session *discordgo.Session
}

// NewAnnouncer wraps a Discord session as an application.Announcer
func NewAnnouncer(session *discordgo.Session) application.Announcer {
	return &announcer{session: session}
}

// Send posts content to a channel and classifies the outcome
func (a *announcer) Send(ctx context.Context, channelID int64, content string) application.DeliveryStatus {
	_, err := a.session.ChannelMessageSend(common.FormatUserID(channelID), content, discordgo.WithContext(ctx))
	if err == nil {
		return application.Delivered
	}

	status := classifyDeliveryError(err)
	logDelivery(channelID, status, err)
	return status
}

// logDelivery records a failed delivery attempt. A gone destination is an
// expected state, not a problem worth operator attention, so it stays at
// debug level.
func logDelivery(channelID int64, status application.DeliveryStatus, err error) {
	entry := log.WithFields(log.Fields{
		"channel_id": channelID,
		"status":     status,
		"error":      err,
	})
	if status == application.DeliveryNotFound {
		entry.Debug("Announcement destination is gone")
		return
	}
	entry.Warn("Announcement delivery failed")
}

// NotifyOwner sends a best-effort private notice to the guild's owner.
// All failures are swallowed; there is nowhere left to report them.
func (a *announcer) NotifyOwner(ctx context.Context, guildID int64, content string) {
	guildIDStr := common.FormatUserID(guildID)

	guild, err := a.session.State.Guild(guildIDStr)
	if err != nil {
		guild, err = a.session.Guild(guildIDStr, discordgo.WithContext(ctx))
		if err != nil {
			log.Debugf("Could not resolve guild %d for owner notice: %v", guildID, err)
			return
		}
	}

	dm, err := a.session.UserChannelCreate(guild.OwnerID, discordgo.WithContext(ctx))
	if err != nil {
		log.Debugf("Could not open DM with owner of guild %d: %v", guildID, err)
		return
	}

	if _, err := a.session.ChannelMessageSend(dm.ID, content, discordgo.WithContext(ctx)); err != nil {
		log.Debugf("Could not DM owner of guild %d: %v", guildID, err)
	}
}

// classifyDeliveryError maps a Discord API error to a delivery status
func classifyDeliveryError(err error) application.DeliveryStatus {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownChannel:
			return application.DeliveryNotFound
		case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
			return application.DeliveryForbidden
		}
	}
	return application.DeliveryTransientError
}

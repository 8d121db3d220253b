package roll

import (
	"context"
	"fmt"
	"time"

	"rollf/bot/common"
	"rollf/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// alreadyRolledMessages are picked at random when a second roll is denied
var alreadyRolledMessages = []string{
	"%s, you've already rolled today. Rules didn’t change.",
	"%s, one roll per day. Still.",
	"%s, that roll already happened.",
	"%s, try again tomorrow. Today is done.",
	"%s, no rerolls. Ever.",
	"%s, denied! Only once a day.",
}

// maxAnimationSteps bounds the fake "rolling" edits before the real value
const maxAnimationSteps = 6

const animationStepDelay = 350 * time.Millisecond

// handleRoll performs the daily roll. The insert happens before any
// animation so the durable outcome never depends on Discord edits landing.
func (f *Feature) handleRoll(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		return common.NewSystemError(err, "Failed to parse user ID")
	}
	username := i.Member.User.Username
	now := time.Now().In(f.location)

	ctx := context.Background()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return common.NewSystemError(err, "Error beginning transaction")
	}
	defer uow.Rollback()

	rollService := services.NewRollService(uow.RollRepository(), uow.UserRepository())

	outcome, err := rollService.Roll(ctx, userID, username, now)
	if err != nil {
		return common.NewSystemError(err, "Failed to perform roll")
	}

	if err := uow.Commit(); err != nil {
		return common.NewSystemError(err, "Error committing transaction")
	}

	mention := common.GetUserMention(userID)

	if outcome.AlreadyRolled {
		pick, _ := services.RandomBelow(len(alreadyRolledMessages))
		msg := fmt.Sprintf(alreadyRolledMessages[pick], mention)
		msg += fmt.Sprintf(" Next roll in %s.", common.FormatDuration(outcome.NextRollAt.Sub(now)))
		respond(s, i, msg)
		return nil
	}

	f.animateRoll(s, i, mention, outcome.Roll.Value)
	return nil
}

// animateRoll plays 0 to 5 fake values before revealing the real one.
// Edit failures are ignored; the roll is already stored.
func (f *Feature) animateRoll(s *discordgo.Session, i *discordgo.InteractionCreate, mention string, value int) {
	finalContent := fmt.Sprintf("%s rolled **%d** 🎲", mention, value)

	steps, err := services.RandomBelow(maxAnimationSteps)
	if err != nil || steps == 0 {
		respond(s, i, finalContent)
		return
	}

	respond(s, i, fmt.Sprintf("%s rolling...", mention))

	for n := 0; n < steps; n++ {
		fake, err := fakeValue(value)
		if err != nil {
			break
		}

		content := fmt.Sprintf("%s rolling %d", mention, fake)
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		}); err != nil {
			log.Debugf("Roll animation edit failed: %v", err)
			break
		}
		time.Sleep(animationStepDelay)
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &finalContent,
	}); err != nil {
		log.Errorf("Failed to post final roll value: %v", err)
	}
}

// fakeValue draws a display value that is never the actual result
func fakeValue(actual int) (int, error) {
	for {
		v, err := services.RandomBelow(100)
		if err != nil {
			return 0, err
		}
		if v+1 != actual {
			return v + 1, nil
		}
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

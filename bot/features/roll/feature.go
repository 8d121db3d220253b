package roll

import (
	"time"

	"rollf/application"
	"rollf/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /roll command
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	location   *time.Location
}

// NewFeature creates a new roll feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory, location *time.Location) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		location:   location,
	}
}

// HandleCommand handles the /roll command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := f.handleRoll(s, i); err != nil {
		common.HandleError(s, i, err)
	}
}

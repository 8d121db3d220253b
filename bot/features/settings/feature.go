package settings

import (
	"rollf/application"
	"rollf/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Feature handles guild settings management
type Feature struct {
	uowFactory application.UnitOfWorkFactory
}

// NewFeature creates a new settings feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		uowFactory: uowFactory,
	}
}

// HandleCommand routes /setchannel to the handler
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := f.handleSetChannel(s, i); err != nil {
		common.HandleError(s, i, err)
	}
}

package stats

import (
	"time"

	"rollf/application"
	"rollf/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /stats command
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	location   *time.Location
}

// NewFeature creates a new stats feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory, location *time.Location) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		location:   location,
	}
}

// HandleCommand routes /stats to the handler
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := f.handleStats(s, i); err != nil {
		common.HandleError(s, i, err)
	}
}

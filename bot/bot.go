package bot

import (
	"fmt"
	"time"

	"rollf/application"
	"rollf/bot/features/help"
	"rollf/bot/features/leaderboard"
	"rollf/bot/features/roll"
	"rollf/bot/features/settings"
	"rollf/bot/features/stats"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token    string
	Location *time.Location
}

// Bot manages the Discord bot and all feature modules
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory

	// Feature modules
	roll        *roll.Feature
	leaderboard *leaderboard.Feature
	stats       *stats.Feature
	settings    *settings.Feature
	help        *help.Feature
}

// New creates a new bot instance with all features
func New(config Config, uowFactory application.UnitOfWorkFactory) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
	}

	bot.roll = roll.NewFeature(uowFactory, config.Location)
	bot.leaderboard = leaderboard.NewFeature(uowFactory, config.Location)
	bot.stats = stats.NewFeature(uowFactory, config.Location)
	bot.settings = settings.NewFeature(uowFactory)
	bot.help = help.NewFeature()

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleGuildCreate)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.Info("Bot online and commands registered")

	return bot, nil
}

// GetAnnouncer returns an Announcer bound to this bot's session
func (b *Bot) GetAnnouncer() application.Announcer {
	return NewAnnouncer(b.session)
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "roll":
		b.roll.HandleCommand(s, i)
	case "leaderboards":
		b.leaderboard.HandleCommand(s, i)
	case "stats":
		b.stats.HandleCommand(s, i)
	case "setchannel":
		b.settings.HandleCommand(s, i)
	case "help":
		b.help.HandleCommand(s, i)
	}
}

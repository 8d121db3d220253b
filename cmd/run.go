package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"rollf/application"
	"rollf/bot"
	"rollf/config"
	"rollf/database"
	"rollf/repository"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting RollF...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db)

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:    cfg.DiscordToken,
		Location: cfg.Location,
	}, uowFactory)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Start the daily roll scheduler
	worker := application.NewDailyRollWorker(uowFactory, discordBot.GetAnnouncer(), application.DailyRollWorkerConfig{
		BotName:    cfg.BotName,
		Location:   cfg.Location,
		OpenHour:   cfg.RollOpenHour,
		CutoffHour: cfg.RollCutoffHour,
		MaxDelay:   cfg.RollMaxDelay,
	})
	stopWorker := worker.Start(ctx)
	log.Println("Daily roll scheduler started")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	stopWorker()

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}

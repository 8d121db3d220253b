package leaderboard

import (
	"context"
	"time"

	"rollf/application"
	"rollf/bot/common"
	"rollf/domain/entities"
	"rollf/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles the /leaderboards command
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	location   *time.Location
}

// NewFeature creates a new leaderboard feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory, location *time.Location) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		location:   location,
	}
}

// HandleCommand handles /leaderboards. Without an option it shows the
// classic two-board view (today's best roll plus all-time totals); with a
// board option it shows that single board.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := f.handleLeaderboards(s, i); err != nil {
		common.HandleError(s, i, err)
	}
}

func (f *Feature) handleLeaderboards(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	board := ""
	if opts := i.ApplicationCommandData().Options; len(opts) > 0 {
		board = opts[0].StringValue()
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

	embed, err := f.buildEmbed(ctx, boardService, board, now)
	if err != nil {
		return common.NewSystemError(err, "Failed to build leaderboard embed")
	}

	if err := uow.Commit(); err != nil {
		return common.NewSystemError(err, "Error committing transaction")
	}

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

// buildEmbed assembles the requested board view
func (f *Feature) buildEmbed(ctx context.Context, boards *services.LeaderboardService, board string, now time.Time) (*discordgo.MessageEmbed, error) {
	if board == boardStreaks {
		entries, err := boards.StreakLeaderboard(ctx, now, services.LeaderboardLimit)
		if err != nil {
			return nil, err
		}
		return buildStreakEmbed(entries), nil
	}

	if period, err := entities.ParsePeriod(board); err == nil {
		entries, err := boards.Leaderboard(ctx, period, now, services.LeaderboardLimit)
		if err != nil {
			return nil, err
		}
		return buildPeriodEmbed(period, entries), nil
	}

	// Default view: today's highest roll plus all-time totals
	today, err := boards.Leaderboard(ctx, entities.PeriodDay, now, services.LeaderboardLimit)
	if err != nil {
		return nil, err
	}
	alltime, err := boards.Leaderboard(ctx, entities.PeriodAllTime, now, services.LeaderboardLimit)
	if err != nil {
		return nil, err
	}
	return buildOverviewEmbed(today, alltime, entities.NextMidnight(now, f.location)), nil
}

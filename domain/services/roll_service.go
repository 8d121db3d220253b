package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rollf/domain/entities"
	"rollf/domain/interfaces"
)

// RollOutcome is the result of a roll attempt. AlreadyRolled is a normal,
// expected outcome, not an error; NextRollAt says when the actor may roll
// again (the next local midnight).
type RollOutcome struct {
	Roll          *entities.Roll
	AlreadyRolled bool
	NextRollAt    time.Time
}

// RollService performs the once-per-day draw for participants and for the
// bot itself
type RollService struct {
	rollRepo interfaces.RollRepository
	userRepo interfaces.UserRepository
}

// NewRollService creates a new roll service
func NewRollService(rollRepo interfaces.RollRepository, userRepo interfaces.UserRepository) *RollService {
	return &RollService{
		rollRepo: rollRepo,
		userRepo: userRepo,
	}
}

// Roll performs a participant's daily roll. now must already be in the
// configured timezone; its calendar date decides which day the roll counts
// for. The insert is the single durable side effect: a duplicate surfaces as
// the AlreadyRolled outcome via the store's uniqueness constraint, so two
// near-simultaneous requests cannot both succeed.
func (s *RollService) Roll(ctx context.Context, discordID int64, username string, now time.Time) (*RollOutcome, error) {
	if _, err := s.userRepo.Upsert(ctx, discordID, username); err != nil {
		return nil, fmt.Errorf("failed to upsert user %d: %w", discordID, err)
	}

	value, err := randomRollValue()
	if err != nil {
		return nil, err
	}

	roll, err := entities.NewUserRoll(discordID, username, value, now)
	if err != nil {
		return nil, fmt.Errorf("invalid roll: %w", err)
	}

	if err := s.rollRepo.Create(ctx, roll); err != nil {
		if errors.Is(err, entities.ErrAlreadyRolledToday) {
			return &RollOutcome{
				AlreadyRolled: true,
				NextRollAt:    entities.NextMidnight(now, now.Location()),
			}, nil
		}
		return nil, fmt.Errorf("failed to create roll: %w", err)
	}

	return &RollOutcome{Roll: roll}, nil
}

// BotRoll performs the scheduler's unattended daily roll. The same conflict
// contract applies: if a bot roll already exists for now's date the outcome
// is AlreadyRolled and nothing was written.
func (s *RollService) BotRoll(ctx context.Context, botName string, now time.Time) (*RollOutcome, error) {
	value, err := randomRollValue()
	if err != nil {
		return nil, err
	}

	roll, err := entities.NewBotRoll(botName, value, now)
	if err != nil {
		return nil, fmt.Errorf("invalid roll: %w", err)
	}

	if err := s.rollRepo.Create(ctx, roll); err != nil {
		if errors.Is(err, entities.ErrAlreadyRolledToday) {
			return &RollOutcome{
				AlreadyRolled: true,
				NextRollAt:    entities.NextMidnight(now, now.Location()),
			}, nil
		}
		return nil, fmt.Errorf("failed to create bot roll: %w", err)
	}

	return &RollOutcome{Roll: roll}, nil
}

// BotRolledOn reports whether the bot already has a roll for now's calendar day
func (s *RollService) BotRolledOn(ctx context.Context, now time.Time) (bool, error) {
	date := entities.DateOf(now, now.Location())
	return s.rollRepo.ExistsForDate(ctx, entities.BotActorID, entities.ActorTypeBot, date)
}

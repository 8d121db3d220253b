package services

import (
	"context"
	"fmt"
	"time"

	"rollf/domain/interfaces"
)

// StreakService derives consecutive-calendar-day streaks from the distinct
// dates on which a participant rolled
type StreakService struct {
	rollRepo interfaces.RollRepository
}

// NewStreakService creates a new streak service
func NewStreakService(rollRepo interfaces.RollRepository) *StreakService {
	return &StreakService{rollRepo: rollRepo}
}

// Streaks returns the participant's current and best streaks. today must be
// the canonical calendar date in the configured timezone.
func (s *StreakService) Streaks(ctx context.Context, discordID int64, today time.Time) (current, best int, err error) {
	dates, err := s.rollRepo.DistinctRollDates(ctx, discordID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load roll dates for %d: %w", discordID, err)
	}
	current, best = CalculateStreaks(dates, today)
	return current, best, nil
}

// CalculateStreaks computes (current, best) from a participant's distinct
// roll dates, sorted ascending. Time-of-day and location are ignored; only
// the calendar date of each entry matters.
//
// best is the longest run of consecutive dates anywhere in the history.
// current is 0 unless today itself is present, otherwise the run length
// walking backward from today until the first gap.
func CalculateStreaks(dates []time.Time, today time.Time) (current, best int) {
	if len(dates) == 0 {
		return 0, 0
	}

	run := 1
	best = 1
	for i := 1; i < len(dates); i++ {
		if sameDate(dates[i], dates[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	present := make(map[[3]int]bool, len(dates))
	for _, d := range dates {
		present[dateKey(d)] = true
	}
	for day := today; present[dateKey(day)]; day = day.AddDate(0, 0, -1) {
		current++
	}

	return current, best
}

func dateKey(t time.Time) [3]int {
	y, m, d := t.Date()
	return [3]int{y, int(m), d}
}

func sameDate(a, b time.Time) bool {
	return dateKey(a) == dateKey(b)
}

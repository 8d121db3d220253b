package application

import (
	"context"
	"fmt"
	"time"

	"rollf/domain/entities"
	"rollf/domain/services"

	log "github.com/sirupsen/logrus"
)

// preOpenLead is how far before the window-open instant the scheduler wakes
// up on the following day (05:55 for an 06:00 window)
const preOpenLead = 5 * time.Minute

// storeRetryInterval is how long the worker sleeps after a store failure
// before retrying the cycle
const storeRetryInterval = 1 * time.Hour

// DailyRollWorkerConfig holds the scheduler's window parameters
type DailyRollWorkerConfig struct {
	BotName    string
	Location   *time.Location
	OpenHour   int           // window opens at this local hour
	CutoffHour int           // at or past this local hour the day is skipped
	MaxDelay   time.Duration // random delay span inside the window
}

// DailyRollWorker runs the bot's unattended daily roll: once per calendar
// day, at a random instant inside the morning window, it draws a value,
// persists it and fans the announcement out to every configured channel.
type DailyRollWorker struct {
	uowFactory UnitOfWorkFactory
	announcer  Announcer
	cfg        DailyRollWorkerConfig
}

// NewDailyRollWorker creates a new daily roll worker
func NewDailyRollWorker(uowFactory UnitOfWorkFactory, announcer Announcer, cfg DailyRollWorkerConfig) *DailyRollWorker {
	return &DailyRollWorker{
		uowFactory: uowFactory,
		announcer:  announcer,
		cfg:        cfg,
	}
}

// cycleAction is the scheduler's next move for one loop iteration
type cycleAction int

const (
	// actionWaitPreOpen - done for today (already rolled, or the window was
	// missed); sleep until tomorrow's pre-open instant
	actionWaitPreOpen cycleAction = iota
	// actionWaitOpen - too early; sleep until today's window opens
	actionWaitOpen
	// actionDraw - inside the window; delay randomly, re-check, draw
	actionDraw
)

// planCycle decides the next action from the current local time and whether
// the bot already rolled today. Pure so the window arithmetic is testable
// without sleeping.
func planCycle(now time.Time, rolledToday bool, openHour, cutoffHour int) (cycleAction, time.Time) {
	if rolledToday {
		return actionWaitPreOpen, nextPreOpen(now, openHour)
	}
	if now.Hour() >= cutoffHour {
		// Missed the window: skip the whole day rather than post late
		return actionWaitPreOpen, nextPreOpen(now, openHour)
	}
	if now.Hour() < openHour {
		year, month, day := now.Date()
		return actionWaitOpen, time.Date(year, month, day, openHour, 0, 0, 0, now.Location())
	}
	return actionDraw, time.Time{}
}

// nextPreOpen returns tomorrow's wake-up instant, shortly before the window opens
func nextPreOpen(now time.Time, openHour int) time.Time {
	year, month, day := now.Date()
	open := time.Date(year, month, day+1, openHour, 0, 0, 0, now.Location())
	return open.Add(-preOpenLead)
}

// Start begins the worker loop. The returned func stops it; cancelling ctx
// stops it too. Every sleep is interruptible, and a restart is safe because
// each cycle re-checks whether today's roll already exists before drawing.
func (w *DailyRollWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Infof("Daily roll worker started (window %02d:00-%02d:00 %s)",
			w.cfg.OpenHour, w.cfg.CutoffHour, w.cfg.Location)

		for {
			now := time.Now().In(w.cfg.Location)

			rolled, err := w.botRolledToday(ctx, now)
			if err != nil {
				log.Errorf("Failed to check today's bot roll: %v", err)
				if !w.wait(ctx, stopChan, storeRetryInterval) {
					return
				}
				continue
			}

			action, wakeAt := planCycle(now, rolled, w.cfg.OpenHour, w.cfg.CutoffHour)
			switch action {
			case actionWaitPreOpen, actionWaitOpen:
				log.Infof("Daily roll worker sleeping until %v", wakeAt)
				if !w.wait(ctx, stopChan, time.Until(wakeAt)) {
					return
				}
				continue

			case actionDraw:
				delay, err := services.RandomDelay(w.cfg.MaxDelay)
				if err != nil {
					log.Errorf("Failed to draw random delay: %v", err)
					delay = 0
				}
				log.Infof("Daily roll in %v", delay)
				if !w.wait(ctx, stopChan, delay) {
					return
				}

				// A manual intervention could have produced today's roll
				// while we slept
				rolled, err = w.botRolledToday(ctx, now)
				if err != nil {
					log.Errorf("Failed to re-check today's bot roll: %v", err)
					if !w.wait(ctx, stopChan, storeRetryInterval) {
						return
					}
					continue
				}
				if rolled {
					continue
				}

				roll, err := w.performDraw(ctx)
				if err != nil {
					log.Errorf("Failed to perform daily roll: %v", err)
					if !w.wait(ctx, stopChan, storeRetryInterval) {
						return
					}
					continue
				}
				if roll == nil {
					// Lost the insert race; today is covered
					continue
				}

				w.announce(ctx, roll)
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// wait sleeps for d, returning false when the worker should shut down
func (w *DailyRollWorker) wait(ctx context.Context, stopChan <-chan struct{}, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		log.Info("Daily roll worker shutting down (context cancelled)...")
		return false
	case <-stopChan:
		log.Info("Daily roll worker shutting down (stop requested)...")
		return false
	case <-time.After(d):
		return true
	}
}

// botRolledToday checks the store for today's bot roll in a read-only transaction
func (w *DailyRollWorker) botRolledToday(ctx context.Context, now time.Time) (bool, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rollService := services.NewRollService(uow.RollRepository(), uow.UserRepository())
	return rollService.BotRolledOn(ctx, now)
}

// performDraw persists the bot's roll. Returns nil, nil when a roll for
// today already exists (the store-level constraint resolves the race).
func (w *DailyRollWorker) performDraw(ctx context.Context) (*entities.Roll, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	now := time.Now().In(w.cfg.Location)
	rollService := services.NewRollService(uow.RollRepository(), uow.UserRepository())

	outcome, err := rollService.BotRoll(ctx, w.cfg.BotName, now)
	if err != nil {
		return nil, err
	}
	if outcome.AlreadyRolled {
		return nil, nil
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return outcome.Roll, nil
}

// announce fans the roll announcement out to every configured channel.
// Per-destination outcomes never abort the fan-out: gone destinations are
// skipped silently, permission loss triggers one best-effort owner notice,
// anything else waits for tomorrow's cycle.
func (w *DailyRollWorker) announce(ctx context.Context, roll *entities.Roll) {
	destinations, err := w.listDestinations(ctx)
	if err != nil {
		log.Errorf("Failed to list roll channels: %v", err)
		return
	}
	if len(destinations) == 0 {
		log.Info("No roll channels configured, daily roll recorded without announcement")
		return
	}

	message := fmt.Sprintf("%s rolled **%d** 🎲", w.cfg.BotName, roll.Value)

	var delivered, skipped int
	for _, dest := range destinations {
		status := w.announcer.Send(ctx, dest.ChannelID, message)
		switch status {
		case Delivered:
			delivered++
		case DeliveryNotFound:
			skipped++
		case DeliveryForbidden:
			w.announcer.NotifyOwner(ctx, dest.GuildID, fmt.Sprintf(
				"%s could not post its daily roll in the configured channel.\n"+
					"Reason: missing permissions or role conflicts.\n"+
					"Fix: give %s explicit permissions in the selected channel "+
					"(View Channel, Send Messages) and check category denies.",
				w.cfg.BotName, w.cfg.BotName))
			skipped++
		case DeliveryTransientError:
			skipped++
		}
	}

	log.WithFields(log.Fields{
		"value":     roll.Value,
		"channels":  len(destinations),
		"delivered": delivered,
		"skipped":   skipped,
	}).Info("Daily roll announced")
}

// listDestinations reads the configured channels in a short-lived transaction
func (w *DailyRollWorker) listDestinations(ctx context.Context) ([]*entities.RollChannel, error) {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.GuildSettingsRepository().ListRollChannels(ctx)
}

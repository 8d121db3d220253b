package application

import (
	"context"

	"rollf/domain/interfaces"
)

// UnitOfWork bundles the repositories behind one database transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RollRepository() interfaces.RollRepository
	UserRepository() interfaces.UserRepository
	GuildSettingsRepository() interfaces.GuildSettingsRepository
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// DeliveryStatus is the outcome of one announcement delivery attempt.
// Delivery failures are values, never raised errors: the scheduler decides
// per-destination what each variant means.
type DeliveryStatus int

const (
	// Delivered - the message reached the destination
	Delivered DeliveryStatus = iota
	// DeliveryNotFound - the destination no longer exists
	DeliveryNotFound
	// DeliveryForbidden - the bot lost permission to post there
	DeliveryForbidden
	// DeliveryTransientError - anything else; the next daily cycle is the retry
	DeliveryTransientError
)

func (s DeliveryStatus) String() string {
	switch s {
	case Delivered:
		return "delivered"
	case DeliveryNotFound:
		return "not_found"
	case DeliveryForbidden:
		return "forbidden"
	default:
		return "transient_error"
	}
}

// Announcer delivers the scheduler's daily roll announcement. Implemented by
// the Discord layer; the application layer never touches the Discord API.
type Announcer interface {
	// Send posts content to a channel and classifies the outcome
	Send(ctx context.Context, channelID int64, content string) DeliveryStatus

	// NotifyOwner sends a best-effort private notice to the guild's owner.
	// All failures are swallowed.
	NotifyOwner(ctx context.Context, guildID int64, content string)
}

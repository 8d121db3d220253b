package entities

import "errors"

// ErrAlreadyRolledToday is the expected outcome when an actor (participant or
// bot) already has a roll for the current calendar day. It is produced by the
// storage layer's uniqueness constraint, not by a check-then-insert pattern.
var ErrAlreadyRolledToday = errors.New("already rolled today")

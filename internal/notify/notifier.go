// Package notify abstracts the change-notification streams the ledger
// sessions react to. A subscription delivers "something changed" signals, not
// payloads: the subscriber re-reads the full current snapshot on every
// signal, so delivery order and coalescing never matter.
package notify

import (
	"context"
	"fmt"
)

// Unsubscribe releases one subscription. Safe to call more than once.
type Unsubscribe func()

// Notifier is the pub/sub contract between the write path and the live
// ledger sessions. Every Subscribe returns the unsubscribe capability for
// that one stream; Publish calls are made after the corresponding write has
// committed.
type Notifier interface {
	// SubscribeExpenses delivers a signal whenever the group's expense
	// collection changes (insert, update or delete).
	SubscribeExpenses(ctx context.Context, groupID string, fn func()) (Unsubscribe, error)

	// SubscribeMembership delivers a signal whenever the set of groups
	// containing the user changes.
	SubscribeMembership(ctx context.Context, userEmail string, fn func()) (Unsubscribe, error)

	// SubscribePersonal delivers a signal whenever the user's personal
	// expense collection changes.
	SubscribePersonal(ctx context.Context, userEmail string, fn func()) (Unsubscribe, error)

	PublishExpenseChange(ctx context.Context, groupID string) error
	PublishMembershipChange(ctx context.Context, userEmail string) error
	PublishPersonalChange(ctx context.Context, userEmail string) error
}

// SubscriptionError reports a failure on an underlying notification stream.
// It is recoverable: the subscriber keeps its last known-good state and the
// stream retries with backoff.
type SubscriptionError struct {
	Channel string
	Err     error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("notification stream %s: %v", e.Channel, e.Err)
}

func (e *SubscriptionError) Unwrap() error { return e.Err }

func expenseChannel(groupID string) string    { return "ledger:group:" + groupID + ":expenses" }
func membershipChannel(email string) string   { return "ledger:user:" + email + ":groups" }
func personalChannel(email string) string     { return "ledger:user:" + email + ":personal" }

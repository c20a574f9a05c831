// Package session runs the live ledger session of a signed-in user: it
// subscribes to change notifications, recomputes balances from full
// snapshots on every signal, and folds them into the user's totals.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"splitledger/internal/ledger"
	"splitledger/internal/metrics"
	"splitledger/internal/models"
	"splitledger/internal/notify"
	"splitledger/internal/storage"
)

// Ledger is one user's live balance view. Start opens the notification
// subscriptions and primes every balance; Stop releases them all. Callbacks
// arriving after Stop are dropped.
//
// All recomputation runs under one mutex, so a burst of change signals
// degrades to sequential full recomputes rather than races. Each recompute
// reads the complete current snapshot, which makes a lost or duplicated
// signal harmless.
type Ledger struct {
	email    string
	store    storage.Store
	notifier notify.Notifier
	agg      *ledger.Aggregator

	mu            sync.Mutex
	closed        bool
	groupSubs     map[string]notify.Unsubscribe
	membershipSub notify.Unsubscribe
	personalSub   notify.Unsubscribe
}

// NewLedger creates a stopped session for the given user. errSink receives
// recompute and stream errors; it may be nil.
func NewLedger(email string, store storage.Store, notifier notify.Notifier, errSink func(error)) *Ledger {
	return &Ledger{
		email:     email,
		store:     store,
		notifier:  notifier,
		agg:       ledger.NewAggregator(email, errSink),
		groupSubs: make(map[string]notify.Unsubscribe),
	}
}

// Aggregator exposes the session's totals fold for reads and listeners.
func (l *Ledger) Aggregator() *ledger.Aggregator { return l.agg }

// Start subscribes to the user's membership and personal streams, discovers
// the user's groups, subscribes to each group's expense stream, and primes
// every balance. It fails closed: any subscription error tears down whatever
// was opened.
func (l *Ledger) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return fmt.Errorf("session for %s already stopped", l.email)
	}

	sub, err := l.notifier.SubscribeMembership(ctx, l.email, func() { l.onMembershipChange(ctx) })
	if err != nil {
		return fmt.Errorf("subscribe membership: %w", err)
	}
	l.membershipSub = sub
	metrics.SubscriptionsActive.Inc()

	sub, err = l.notifier.SubscribePersonal(ctx, l.email, func() { l.onPersonalChange(ctx) })
	if err != nil {
		l.releaseLocked()
		return fmt.Errorf("subscribe personal: %w", err)
	}
	l.personalSub = sub
	metrics.SubscriptionsActive.Inc()

	if err := l.syncGroupsLocked(ctx); err != nil {
		l.releaseLocked()
		return err
	}
	l.recomputePersonalLocked(ctx)
	return nil
}

// Stop releases every subscription. Idempotent.
func (l *Ledger) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.releaseLocked()
}

func (l *Ledger) releaseLocked() {
	if l.membershipSub != nil {
		l.membershipSub()
		l.membershipSub = nil
		metrics.SubscriptionsActive.Dec()
	}
	if l.personalSub != nil {
		l.personalSub()
		l.personalSub = nil
		metrics.SubscriptionsActive.Dec()
	}
	for id, unsub := range l.groupSubs {
		unsub()
		delete(l.groupSubs, id)
		metrics.SubscriptionsActive.Dec()
	}
}

// syncGroupsLocked reconciles the subscription set against the user's
// current group list: new groups get a subscription and an initial
// recompute, vanished groups get unsubscribed and dropped from the fold.
// Caller holds l.mu.
func (l *Ledger) syncGroupsLocked(ctx context.Context) error {
	groups, err := l.store.ListGroupsByMember(ctx, l.email)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}

	current := make(map[string]bool, len(groups))
	for _, group := range groups {
		current[group.ID] = true
		if _, ok := l.groupSubs[group.ID]; ok {
			continue
		}
		groupID := group.ID
		sub, err := l.notifier.SubscribeExpenses(ctx, groupID, func() { l.onExpenseChange(ctx, groupID) })
		if err != nil {
			return fmt.Errorf("subscribe group %s: %w", groupID, err)
		}
		l.groupSubs[groupID] = sub
		metrics.SubscriptionsActive.Inc()
		l.recomputeGroupLocked(ctx, groupID)
	}

	for groupID, unsub := range l.groupSubs {
		if current[groupID] {
			continue
		}
		unsub()
		delete(l.groupSubs, groupID)
		metrics.SubscriptionsActive.Dec()
		l.agg.RemoveGroup(groupID)
	}
	return nil
}

// recomputeGroupLocked reads the group's full snapshot and derives its
// balances. Errors go to the sink; the fold keeps the group's last
// known-good balances. Caller holds l.mu.
func (l *Ledger) recomputeGroupLocked(ctx context.Context, groupID string) {
	group, err := l.store.GetGroup(ctx, groupID)
	if err != nil {
		metrics.RecomputesTotal.WithLabelValues("error").Inc()
		l.agg.ReportError(fmt.Errorf("read group %s: %w", groupID, err))
		return
	}
	expenses, err := l.store.ReadExpenses(ctx, groupID)
	if err != nil {
		metrics.RecomputesTotal.WithLabelValues("error").Inc()
		l.agg.ReportError(fmt.Errorf("read expenses of %s: %w", groupID, err))
		return
	}

	balances, err := ledger.ComputeBalances(groupID, group.Members, expenses)
	if err != nil {
		metrics.RecomputesTotal.WithLabelValues("error").Inc()
		l.agg.ReportError(err)
		return
	}
	metrics.RecomputesTotal.WithLabelValues("ok").Inc()
	l.agg.SetGroupBalances(groupID, balances)
}

func (l *Ledger) recomputePersonalLocked(ctx context.Context) {
	total, err := l.store.SumPersonalExpenses(ctx, l.email)
	if err != nil {
		l.agg.ReportError(fmt.Errorf("sum personal expenses: %w", err))
		return
	}
	l.agg.SetPersonalTotal(total)
}

func (l *Ledger) onExpenseChange(ctx context.Context, groupID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if _, ok := l.groupSubs[groupID]; !ok {
		// stale signal for a group we already left
		return
	}
	l.recomputeGroupLocked(ctx, groupID)
}

func (l *Ledger) onMembershipChange(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if err := l.syncGroupsLocked(ctx); err != nil {
		slog.Error("failed to sync group subscriptions", "user", l.email, "error", err)
		l.agg.ReportError(err)
	}
}

func (l *Ledger) onPersonalChange(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.recomputePersonalLocked(ctx)
}

// GroupBalance recomputes and returns one group's balance map on demand,
// without touching the session's fold. Used by the read API.
func GroupBalance(ctx context.Context, store storage.Store, groupID string) (map[string]models.Cents, error) {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := store.ReadExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeBalances(groupID, group.Members, expenses)
}

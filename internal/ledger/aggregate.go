package ledger

import (
	"sync"

	"splitledger/internal/models"
)

// Totals is the user-level balance summary: how much the user owes across
// all their groups, how much they are owed, and their private spending
// total. Personal expenses never mix into the owe/owed figures.
type Totals struct {
	OwedByUser    models.Cents `json:"owed_by_user"`
	OwedToUser    models.Cents `json:"owed_to_user"`
	PersonalTotal models.Cents `json:"personal_total"`
}

// Aggregator folds the live per-group balance maps of one user into Totals.
//
// Every update triggers a full fold over all currently known groups rather
// than an incremental adjustment of a running total, so a missed or
// reordered update on one group's balance stream can never leave the
// cross-group totals drifted: the next update from any group repairs them.
type Aggregator struct {
	userEmail string

	mu       sync.Mutex
	groups   map[string]map[string]models.Cents
	personal models.Cents
	current  Totals

	listeners map[int]func(Totals)
	nextID    int

	errSink func(error)
}

// NewAggregator creates an aggregator for the given user. errSink receives
// ledger errors reported via ReportError; it may be nil.
func NewAggregator(userEmail string, errSink func(error)) *Aggregator {
	return &Aggregator{
		userEmail: userEmail,
		groups:    make(map[string]map[string]models.Cents),
		listeners: make(map[int]func(Totals)),
		errSink:   errSink,
	}
}

// SetGroupBalances replaces the known balance map for one group and
// republishes the folded totals.
func (a *Aggregator) SetGroupBalances(groupID string, balances map[string]models.Cents) {
	a.mu.Lock()
	a.groups[groupID] = balances
	totals, fns := a.refold()
	a.mu.Unlock()
	publish(fns, totals)
}

// RemoveGroup drops a group the user no longer belongs to and republishes.
func (a *Aggregator) RemoveGroup(groupID string) {
	a.mu.Lock()
	delete(a.groups, groupID)
	totals, fns := a.refold()
	a.mu.Unlock()
	publish(fns, totals)
}

// SetPersonalTotal replaces the personal-spending total and republishes.
func (a *Aggregator) SetPersonalTotal(total models.Cents) {
	a.mu.Lock()
	a.personal = total
	totals, fns := a.refold()
	a.mu.Unlock()
	publish(fns, totals)
}

// refold recomputes current from scratch. Caller holds a.mu.
func (a *Aggregator) refold() (Totals, []func(Totals)) {
	t := Totals{PersonalTotal: a.personal}
	for _, balances := range a.groups {
		b := balances[a.userEmail]
		switch {
		case b > 0:
			t.OwedToUser += b
		case b < 0:
			t.OwedByUser -= b
		}
	}
	a.current = t

	fns := make([]func(Totals), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	return t, fns
}

func publish(fns []func(Totals), t Totals) {
	for _, fn := range fns {
		fn(t)
	}
}

// Current returns the latest folded totals.
func (a *Aggregator) Current() Totals {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Subscribe registers a listener called with the new totals after every
// recompute, and returns its unsubscribe function.
func (a *Aggregator) Subscribe(fn func(Totals)) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

// ReportError forwards a recompute error to the error sink. Previously
// published totals stay as they are; last known-good balances remain
// visible until a successful recompute supersedes them.
func (a *Aggregator) ReportError(err error) {
	if a.errSink != nil {
		a.errSink(err)
	}
}

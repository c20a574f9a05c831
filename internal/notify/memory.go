package notify

import (
	"context"
	"sync"
)

// MemoryNotifier is an in-process Notifier. It is the default for
// single-node deployments (no Redis configured) and for tests. Signals are
// delivered synchronously on the publisher's goroutine.
type MemoryNotifier struct {
	mu     sync.Mutex
	subs   map[string]map[int]func()
	nextID int
}

var _ Notifier = (*MemoryNotifier)(nil)

// NewMemory creates an empty in-process notifier.
func NewMemory() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[string]map[int]func())}
}

func (n *MemoryNotifier) subscribe(channel string, fn func()) Unsubscribe {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[channel] == nil {
		n.subs[channel] = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.subs[channel][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[channel], id)
		})
	}
}

func (n *MemoryNotifier) publish(channel string) {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs[channel]))
	for _, fn := range n.subs[channel] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	// Invoked outside the lock so a handler may unsubscribe itself.
	for _, fn := range fns {
		fn()
	}
}

func (n *MemoryNotifier) SubscribeExpenses(_ context.Context, groupID string, fn func()) (Unsubscribe, error) {
	return n.subscribe(expenseChannel(groupID), fn), nil
}

func (n *MemoryNotifier) SubscribeMembership(_ context.Context, userEmail string, fn func()) (Unsubscribe, error) {
	return n.subscribe(membershipChannel(userEmail), fn), nil
}

func (n *MemoryNotifier) SubscribePersonal(_ context.Context, userEmail string, fn func()) (Unsubscribe, error) {
	return n.subscribe(personalChannel(userEmail), fn), nil
}

func (n *MemoryNotifier) PublishExpenseChange(_ context.Context, groupID string) error {
	n.publish(expenseChannel(groupID))
	return nil
}

func (n *MemoryNotifier) PublishMembershipChange(_ context.Context, userEmail string) error {
	n.publish(membershipChannel(userEmail))
	return nil
}

func (n *MemoryNotifier) PublishPersonalChange(_ context.Context, userEmail string) error {
	n.publish(personalChannel(userEmail))
	return nil
}

package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 30 * time.Second
)

// RedisNotifier implements Notifier over Redis pub/sub, so change signals
// reach ledger sessions on every node, not just the one that handled the
// write.
//
// A broken subscription stream is retried with capped exponential backoff.
// Stream errors are reported to onError as *SubscriptionError and never tear
// down the subscriber's state: last known-good balances stay visible until a
// recompute after the stream recovers.
type RedisNotifier struct {
	client  *redis.Client
	onError func(error)
}

var _ Notifier = (*RedisNotifier)(nil)

// NewRedis creates a notifier on an established Redis client. onError
// receives stream errors; it may be nil.
func NewRedis(client *redis.Client, onError func(error)) *RedisNotifier {
	return &RedisNotifier{client: client, onError: onError}
}

func (n *RedisNotifier) reportError(channel string, err error) {
	if n.onError != nil {
		n.onError(&SubscriptionError{Channel: channel, Err: err})
	}
}

func (n *RedisNotifier) subscribe(ctx context.Context, channel string, fn func()) (Unsubscribe, error) {
	subCtx, cancel := context.WithCancel(ctx)

	pubsub := n.client.Subscribe(subCtx, channel)
	// Force the subscription onto the wire before returning, so a publish
	// right after Subscribe cannot be missed.
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		pubsub.Close()
		return nil, &SubscriptionError{Channel: channel, Err: err}
	}

	go n.receiveLoop(subCtx, pubsub, channel, fn)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			if err := pubsub.Close(); err != nil {
				slog.Debug("pubsub close", "channel", channel, "error", err)
			}
		})
	}, nil
}

func (n *RedisNotifier) receiveLoop(ctx context.Context, pubsub *redis.PubSub, channel string, fn func()) {
	delay := retryBaseDelay
	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, redis.ErrClosed) {
				return
			}
			n.reportError(channel, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > retryMaxDelay {
				delay = retryMaxDelay
			}
			continue
		}
		delay = retryBaseDelay
		_ = msg // the payload carries no information, only the signal
		fn()
	}
}

func (n *RedisNotifier) SubscribeExpenses(ctx context.Context, groupID string, fn func()) (Unsubscribe, error) {
	return n.subscribe(ctx, expenseChannel(groupID), fn)
}

func (n *RedisNotifier) SubscribeMembership(ctx context.Context, userEmail string, fn func()) (Unsubscribe, error) {
	return n.subscribe(ctx, membershipChannel(userEmail), fn)
}

func (n *RedisNotifier) SubscribePersonal(ctx context.Context, userEmail string, fn func()) (Unsubscribe, error) {
	return n.subscribe(ctx, personalChannel(userEmail), fn)
}

func (n *RedisNotifier) PublishExpenseChange(ctx context.Context, groupID string) error {
	return n.client.Publish(ctx, expenseChannel(groupID), "changed").Err()
}

func (n *RedisNotifier) PublishMembershipChange(ctx context.Context, userEmail string) error {
	return n.client.Publish(ctx, membershipChannel(userEmail), "changed").Err()
}

func (n *RedisNotifier) PublishPersonalChange(ctx context.Context, userEmail string) error {
	return n.client.Publish(ctx, personalChannel(userEmail), "changed").Err()
}

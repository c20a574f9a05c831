// Package worker materializes group activity feeds from expense events.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"splitledger/internal/events"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// Consumer is the slice of the event client the worker drains.
type Consumer interface {
	ConsumeExpenseEvents(ctx context.Context, handler func(*events.ExpenseEvent) error) error
}

// ActivityWorker turns expense events into activity feed rows. Writes are
// idempotent only per delivery; a redelivered event produces a duplicate
// feed row, which the feed tolerates.
type ActivityWorker struct {
	store    storage.Store
	consumer Consumer
}

// New creates an activity worker.
func New(store storage.Store, consumer Consumer) *ActivityWorker {
	return &ActivityWorker{store: store, consumer: consumer}
}

// Run consumes events until ctx is cancelled.
func (w *ActivityWorker) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "activity worker starting")
	return w.consumer.ConsumeExpenseEvents(ctx, func(event *events.ExpenseEvent) error {
		return w.handle(ctx, event)
	})
}

func (w *ActivityWorker) handle(ctx context.Context, event *events.ExpenseEvent) error {
	activity := &models.Activity{
		ID:          uuid.New().String(),
		GroupID:     event.GroupID,
		Actor:       event.Actor,
		Action:      event.Action,
		Description: event.Description,
		Amount:      event.Amount,
		CreatedAt:   event.Timestamp.Unix(),
	}
	if err := w.store.RecordActivity(ctx, activity); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	slog.DebugContext(ctx, "recorded activity",
		"group_id", activity.GroupID,
		"action", activity.Action)
	return nil
}

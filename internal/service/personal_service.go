package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/notify"
	"splitledger/internal/storage"
)

// PersonalService manages a user's private expenses. These never touch any
// group ledger; they feed only the personal-spending total.
type PersonalService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewPersonalService creates a personal expense service.
func NewPersonalService(store storage.Store, notifier notify.Notifier) *PersonalService {
	return &PersonalService{store: store, notifier: notifier}
}

// AddExpense records a private expense for the actor.
func (s *PersonalService) AddExpense(ctx context.Context, actor, description string, amount models.Cents) (*models.PersonalExpense, error) {
	expense := &models.PersonalExpense{
		ID:          uuid.New().String(),
		UserEmail:   actor,
		Description: description,
		Amount:      amount,
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.store.CreatePersonalExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create personal expense: %w", err)
	}
	s.signalPersonalChange(ctx, actor)
	return expense, nil
}

// DeleteExpense removes one of the actor's private expenses.
func (s *PersonalService) DeleteExpense(ctx context.Context, actor, expenseID string) error {
	if err := s.store.DeletePersonalExpense(ctx, actor, expenseID); err != nil {
		return err
	}
	s.signalPersonalChange(ctx, actor)
	return nil
}

// ListExpenses returns the actor's private expenses, newest first.
func (s *PersonalService) ListExpenses(ctx context.Context, actor string) ([]*models.PersonalExpense, error) {
	return s.store.ListPersonalExpenses(ctx, actor)
}

// Total returns the actor's private spending total.
func (s *PersonalService) Total(ctx context.Context, actor string) (models.Cents, error) {
	return s.store.SumPersonalExpenses(ctx, actor)
}

func (s *PersonalService) signalPersonalChange(ctx context.Context, actor string) {
	if err := s.notifier.PublishPersonalChange(ctx, actor); err != nil {
		slog.ErrorContext(ctx, "failed to publish personal change", "user", actor, "error", err)
	}
}

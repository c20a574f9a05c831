package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/events"
	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/notify"
	"splitledger/internal/session"
	"splitledger/internal/storage"
)

// Split type names accepted on the write API.
const (
	SplitEqual  = "equal"
	SplitCustom = "custom"
)

// ExpenseInput carries one expense write. For an equal split, Splits is
// ignored and the shares are derived from the group's member list. For a
// custom split, Splits must cover exactly the members and sum to Amount.
type ExpenseInput struct {
	Description string
	Amount      models.Cents
	SplitType   string
	Splits      map[string]models.Cents
}

// ExpenseService validates and applies expense writes, then signals the
// affected streams and publishes the activity event.
type ExpenseService struct {
	store     storage.Store
	notifier  notify.Notifier
	publisher events.Publisher
}

// NewExpenseService creates an expense service. publisher may be a
// NoopPublisher when no broker is configured.
func NewExpenseService(store storage.Store, notifier notify.Notifier, publisher events.Publisher) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier, publisher: publisher}
}

func (s *ExpenseService) computeSplits(in ExpenseInput, members []string) (map[string]models.Cents, error) {
	switch in.SplitType {
	case SplitCustom:
		return ledger.ValidateCustomSplit(in.Amount, in.Splits, members)
	case SplitEqual, "":
		return ledger.EqualSplit(in.Amount, members)
	default:
		return nil, &ledger.InvalidShareError{Member: "", Reason: fmt.Sprintf("unknown split type %q", in.SplitType)}
	}
}

// AddExpense records a new expense paid by the actor. The actor must be a
// group member; the derived splits always sum to the amount exactly.
func (s *ExpenseService) AddExpense(ctx context.Context, actor, groupID string, in ExpenseInput) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actor) {
		return nil, ErrNotMember
	}

	splits, err := s.computeSplits(in, group.Members)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	expense := &models.Expense{
		ID:          uuid.New().String(),
		GroupID:     groupID,
		Description: in.Description,
		Amount:      in.Amount,
		PaidBy:      actor,
		Splits:      splits,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.WriteExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to write expense: %w", err)
	}

	s.signalExpenseChange(ctx, models.ActivityExpenseAdded, actor, expense)
	return expense, nil
}

// UpdateExpense rewrites an expense's description, amount and splits. Only
// the payer may edit; the splits are fully re-derived against the group's
// current member list, never patched.
func (s *ExpenseService) UpdateExpense(ctx context.Context, actor, groupID, expenseID string, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.getGroupExpense(ctx, groupID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.PaidBy != actor {
		return nil, ErrNotPayer
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	splits, err := s.computeSplits(in, group.Members)
	if err != nil {
		return nil, err
	}

	expense.Description = in.Description
	expense.Amount = in.Amount
	expense.Splits = splits
	expense.UpdatedAt = time.Now().Unix()
	if err := s.store.WriteExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.signalExpenseChange(ctx, models.ActivityExpenseUpdated, actor, expense)
	return expense, nil
}

// DeleteExpense removes an expense. Only the payer may delete.
func (s *ExpenseService) DeleteExpense(ctx context.Context, actor, groupID, expenseID string) error {
	expense, err := s.getGroupExpense(ctx, groupID, expenseID)
	if err != nil {
		return err
	}
	if expense.PaidBy != actor {
		return ErrNotPayer
	}

	if err := s.store.DeleteExpense(ctx, groupID, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.signalExpenseChange(ctx, models.ActivityExpenseDeleted, actor, expense)
	return nil
}

// ListExpenses returns the group's full expense set for a member.
func (s *ExpenseService) ListExpenses(ctx context.Context, actor, groupID string) ([]*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actor) {
		return nil, ErrNotMember
	}
	return s.store.ReadExpenses(ctx, groupID)
}

// GroupBalances derives the group's current balance map for a member.
func (s *ExpenseService) GroupBalances(ctx context.Context, actor, groupID string) (map[string]models.Cents, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actor) {
		return nil, ErrNotMember
	}
	return session.GroupBalance(ctx, s.store, groupID)
}

func (s *ExpenseService) getGroupExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.GroupID != groupID {
		return nil, storage.ErrNotFound
	}
	return expense, nil
}

// signalExpenseChange runs after the write has committed. A failed signal is
// logged, not returned: sessions recover on the next signal because every
// recompute reads the full snapshot.
func (s *ExpenseService) signalExpenseChange(ctx context.Context, action, actor string, expense *models.Expense) {
	if err := s.notifier.PublishExpenseChange(ctx, expense.GroupID); err != nil {
		slog.ErrorContext(ctx, "failed to publish expense change",
			"group_id", expense.GroupID, "error", err)
	}
	if err := s.publisher.PublishExpenseEvent(ctx, events.NewExpenseEvent(action, actor, expense)); err != nil {
		slog.ErrorContext(ctx, "failed to publish expense event",
			"expense_id", expense.ID, "error", err)
	}
}

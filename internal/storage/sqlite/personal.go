package sqlite

import (
	"context"
	"fmt"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// CreatePersonalExpense inserts a private expense for a user.
func (s *SQLiteStore) CreatePersonalExpense(ctx context.Context, expense *models.PersonalExpense) error {
	query := `
		INSERT INTO personal_expenses (id, user_email, description, amount_cents, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		expense.ID, expense.UserEmail, expense.Description, int64(expense.Amount), expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create personal expense: %w", err)
	}
	return nil
}

// ListPersonalExpenses retrieves a user's private expenses, newest first.
func (s *SQLiteStore) ListPersonalExpenses(ctx context.Context, email string) ([]*models.PersonalExpense, error) {
	query := `
		SELECT id, user_email, description, amount_cents, created_at
		FROM personal_expenses WHERE user_email = ?
		ORDER BY created_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.PersonalExpense
	for rows.Next() {
		var e models.PersonalExpense
		var amount int64
		if err := rows.Scan(&e.ID, &e.UserEmail, &e.Description, &amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan personal expense: %w", err)
		}
		e.Amount = models.Cents(amount)
		expenses = append(expenses, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate personal expenses: %w", err)
	}
	return expenses, nil
}

// DeletePersonalExpense removes a user's private expense. The email guard
// keeps one user from deleting another's expense by guessing IDs.
func (s *SQLiteStore) DeletePersonalExpense(ctx context.Context, email, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM personal_expenses WHERE id = ? AND user_email = ?`, expenseID, email)
	if err != nil {
		return fmt.Errorf("failed to delete personal expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SumPersonalExpenses returns the total of a user's private expenses.
func (s *SQLiteStore) SumPersonalExpenses(ctx context.Context, email string) (models.Cents, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM personal_expenses WHERE user_email = ?`,
		email).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum personal expenses: %w", err)
	}
	return models.Cents(total), nil
}

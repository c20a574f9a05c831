package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// WriteExpense inserts or replaces an expense and all of its splits in one
// transaction. A concurrent reader sees either the old version or the new
// one, never a partial split set.
func (s *SQLiteStore) WriteExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (id, group_id, description, amount_cents, paid_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			description = excluded.description,
			amount_cents = excluded.amount_cents,
			paid_by = excluded.paid_by,
			updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, query,
		expense.ID, expense.GroupID, expense.Description, int64(expense.Amount),
		expense.PaidBy, expense.CreatedAt, expense.UpdatedAt); err != nil {
		return fmt.Errorf("failed to write expense: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expense_splits WHERE expense_id = ?`, expense.ID); err != nil {
		return fmt.Errorf("failed to clear expense splits: %w", err)
	}

	splitQuery := `INSERT INTO expense_splits (expense_id, member, share_cents) VALUES (?, ?, ?)`
	for member, share := range expense.Splits {
		if _, err := tx.ExecContext(ctx, splitQuery, expense.ID, member, int64(share)); err != nil {
			return fmt.Errorf("failed to write expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// GetExpense retrieves a single expense with its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	query := `
		SELECT id, group_id, description, amount_cents, paid_by, created_at, updated_at
		FROM expenses WHERE id = ?`
	expense, err := scanExpense(s.db.QueryRowContext(ctx, query, expenseID))
	if err != nil {
		return nil, err
	}
	if err := s.loadSplits(ctx, map[string]*models.Expense{expense.ID: expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

// ReadExpenses retrieves the group's full current expense set.
func (s *SQLiteStore) ReadExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	query := `
		SELECT id, group_id, description, amount_cents, paid_by, created_at, updated_at
		FROM expenses WHERE group_id = ?
		ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		var e models.Expense
		var amount int64
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Description, &amount,
			&e.PaidBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = models.Cents(amount)
		e.Splits = make(map[string]models.Cents)
		expenses = append(expenses, &e)
		byID[e.ID] = &e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.loadSplits(ctx, byID); err != nil {
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes an expense; splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND group_id = ?`, expenseID, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
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

func (s *SQLiteStore) loadSplits(ctx context.Context, expenses map[string]*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	for id, expense := range expenses {
		rows, err := s.db.QueryContext(ctx,
			`SELECT member, share_cents FROM expense_splits WHERE expense_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to load expense splits: %w", err)
		}
		for rows.Next() {
			var member string
			var share int64
			if err := rows.Scan(&member, &share); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan expense split: %w", err)
			}
			expense.Splits[member] = models.Cents(share)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate expense splits: %w", err)
		}
		rows.Close()
	}
	return nil
}

func scanExpense(row *sql.Row) (*models.Expense, error) {
	var e models.Expense
	var amount int64
	err := row.Scan(&e.ID, &e.GroupID, &e.Description, &amount,
		&e.PaidBy, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	e.Amount = models.Cents(amount)
	e.Splits = make(map[string]models.Cents)
	return &e, nil
}

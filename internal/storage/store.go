// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"splitledger/internal/models"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence contract the ledger core consumes. The core
// never decides storage technology: it validates, computes, and reads full
// snapshots through this interface. Swapping SQLite for another backend must
// not touch the service or session layers.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Groups. Membership is fixed at creation; there is no member mutation.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, email string) ([]*models.Group, error)

	// Expenses. ReadExpenses is a full snapshot read of the group's current
	// expense set. WriteExpense applies all of an expense's fields,
	// including its splits, as one atomic replace: a concurrent reader sees
	// either the old version or the new one, never a mix.
	ReadExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	WriteExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, groupID, expenseID string) error

	// Personal expenses. Private per user; never part of any group ledger.
	CreatePersonalExpense(ctx context.Context, expense *models.PersonalExpense) error
	ListPersonalExpenses(ctx context.Context, email string) ([]*models.PersonalExpense, error)
	DeletePersonalExpense(ctx context.Context, email, expenseID string) error
	SumPersonalExpenses(ctx context.Context, email string) (models.Cents, error)

	// Activity feed, materialized by the activity worker.
	RecordActivity(ctx context.Context, activity *models.Activity) error
	ListActivityByGroup(ctx context.Context, groupID string, limit int) ([]*models.Activity, error)

	// Close releases any resources held by the store.
	Close() error
}

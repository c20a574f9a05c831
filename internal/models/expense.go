package models

// Expense is a shared expense recorded in a group.
//
// Invariants (enforced at the service boundary before any write, re-checked
// defensively by the ledger):
//   - Splits has exactly the group's members as keys
//   - PaidBy is one of the split keys
//   - every share is >= 0 and the shares sum to Amount exactly
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is what the expense was for.
	Description string

	// Amount is the full expense amount in minor units. Always positive.
	Amount Cents

	// PaidBy is the email of the member who fronted the money. Only this
	// member may edit or delete the expense.
	PaidBy string

	// Splits maps each member email to that member's share of Amount.
	Splits map[string]Cents

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// PersonalExpense is a user's private, unsplit expense. It contributes to the
// user's personal-spending total only and never enters any group ledger.
type PersonalExpense struct {
	// ID is the unique identifier (UUID format).
	ID string

	// UserEmail is the owner.
	UserEmail string

	// Description is what the expense was for.
	Description string

	// Amount is the expense amount in minor units. Always positive.
	Amount Cents

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

package models

// Activity actions recorded in a group's feed.
const (
	ActivityExpenseAdded   = "expense_added"
	ActivityExpenseUpdated = "expense_updated"
	ActivityExpenseDeleted = "expense_deleted"
)

// Activity is one entry in a group's activity feed. Entries are materialized
// asynchronously by the activity worker from expense events.
type Activity struct {
	// ID is the unique identifier (UUID format).
	ID string

	// GroupID is the group the activity happened in.
	GroupID string

	// Actor is the email of the member who performed the action.
	Actor string

	// Action is one of the Activity* constants.
	Action string

	// Description is the affected expense's description.
	Description string

	// Amount is the affected expense's amount at the time of the action.
	Amount Cents

	// CreatedAt is the Unix timestamp when the action happened.
	CreatedAt int64
}

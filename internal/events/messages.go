// Package events publishes and consumes expense lifecycle events over
// RabbitMQ. The API server publishes an event for every expense write; the
// activity worker consumes them and materializes the group activity feed.
package events

import (
	"encoding/json"
	"time"

	"splitledger/internal/models"
)

// ExpenseEvent describes one expense lifecycle action. Action is one of the
// models.Activity* constants.
type ExpenseEvent struct {
	GroupID     string       `json:"group_id"`
	ExpenseID   string       `json:"expense_id"`
	Actor       string       `json:"actor"`
	Action      string       `json:"action"`
	Description string       `json:"description"`
	Amount      models.Cents `json:"amount"`
	Timestamp   time.Time    `json:"timestamp"`
}

// NewExpenseEvent builds an event for an expense action performed by actor.
func NewExpenseEvent(action, actor string, expense *models.Expense) *ExpenseEvent {
	return &ExpenseEvent{
		GroupID:     expense.GroupID,
		ExpenseID:   expense.ID,
		Actor:       actor,
		Action:      action,
		Description: expense.Description,
		Amount:      expense.Amount,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON parses an event from JSON bytes.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var e ExpenseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

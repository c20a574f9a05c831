package ledger

import (
	"fmt"

	"splitledger/internal/models"
)

// InvalidMembersError reports a degenerate member set (empty, or containing a
// duplicate or blank entry).
type InvalidMembersError struct {
	Reason string
}

func (e *InvalidMembersError) Error() string {
	return fmt.Sprintf("invalid member set: %s", e.Reason)
}

// InvalidAmountError reports a non-positive expense amount.
type InvalidAmountError struct {
	Amount models.Cents
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount must be positive, got %s", e.Amount)
}

// InvalidShareError reports a bad share for a named member: negative, for a
// non-member, or missing entirely.
type InvalidShareError struct {
	Member string
	Reason string
}

func (e *InvalidShareError) Error() string {
	return fmt.Sprintf("invalid share for %s: %s", e.Member, e.Reason)
}

// ShareMismatchError reports that declared shares do not sum to the expense
// amount. Delta is amount minus the sum of shares, so a positive delta means
// the shares fall short.
type ShareMismatchError struct {
	Amount models.Cents
	Sum    models.Cents
	Delta  models.Cents
}

func (e *ShareMismatchError) Error() string {
	return fmt.Sprintf("shares sum to %s but amount is %s (delta %s)", e.Sum, e.Amount, e.Delta)
}

// InvariantViolationError reports that a recompute found corrupt data: an
// expense violating its entry invariants, or member balances that do not sum
// to zero. It should never occur when writes go through the validation
// boundary, and it is surfaced to the error sink rather than swallowed.
type InvariantViolationError struct {
	GroupID string
	Reason  string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("ledger invariant violated in group %s: %s", e.GroupID, e.Reason)
}

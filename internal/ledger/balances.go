package ledger

import (
	"splitledger/internal/models"
)

// ComputeBalances reduces a group's current expense snapshot into a
// per-member net balance map. Positive means the member is net owed money by
// the group; negative means the member net owes.
//
// This is always a full recompute over the whole snapshot, never an
// incremental patch against a previous balance map. That keeps the result
// order-independent and self-correcting no matter how change notifications
// were delivered or coalesced: an edit or delete leaves no residue from the
// old expense version.
//
// Expenses that violate their entry invariants (split keys, payer
// membership, share sum) surface as an InvariantViolationError: they are
// supposed to be rejected at the validation boundary before ever reaching
// storage, so hitting one here means the stored data is corrupt. The same
// goes for the final zero-sum check: whatever one member is collectively
// owed must equal what the rest collectively owe, exactly, in cents.
func ComputeBalances(groupID string, members []string, expenses []*models.Expense) (map[string]models.Cents, error) {
	if err := checkMembers(members); err != nil {
		return nil, err
	}

	balances := make(map[string]models.Cents, len(members))
	for _, m := range members {
		balances[m] = 0
	}

	for _, e := range expenses {
		if err := ValidateExpense(e, members); err != nil {
			return nil, &InvariantViolationError{
				GroupID: groupID,
				Reason:  "expense " + e.ID + ": " + err.Error(),
			}
		}
		for member, share := range e.Splits {
			if member == e.PaidBy {
				// The payer fronted the full amount; their own share
				// cancels out of what they are owed.
				balances[member] += e.Amount - share
			} else {
				balances[member] -= share
			}
		}
	}

	var sum models.Cents
	for _, b := range balances {
		sum += b
	}
	if sum != 0 {
		return nil, &InvariantViolationError{
			GroupID: groupID,
			Reason:  "balances sum to " + sum.String() + ", want 0.00",
		}
	}

	return balances, nil
}

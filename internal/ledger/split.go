// Package ledger is the expense-splitting and balance engine: split
// computation and validation, per-group balance derivation, and cross-group
// aggregation. Everything here is pure computation on integer cents; reading
// expense snapshots and reacting to change notifications is the session
// package's job.
package ledger

import (
	"sort"

	"splitledger/internal/models"
)

// checkMembers rejects empty member sets and duplicate or blank entries.
func checkMembers(members []string) error {
	if len(members) == 0 {
		return &InvalidMembersError{Reason: "no members"}
	}
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if m == "" {
			return &InvalidMembersError{Reason: "blank member"}
		}
		if seen[m] {
			return &InvalidMembersError{Reason: "duplicate member " + m}
		}
		seen[m] = true
	}
	return nil
}

// EqualSplit divides amount evenly across members, in cents.
//
// An amount that does not divide evenly leaves a remainder of up to
// len(members)-1 cents. Members are sorted so the result is independent of
// input order, and the remainder is spread one cent each over the tail of the
// sorted order. The shares therefore always sum to amount exactly and differ
// from each other by at most one cent.
func EqualSplit(amount models.Cents, members []string) (map[string]models.Cents, error) {
	if err := checkMembers(members); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, &InvalidAmountError{Amount: amount}
	}

	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)

	n := models.Cents(len(sorted))
	base := amount / n
	remainder := int(amount % n)

	splits := make(map[string]models.Cents, len(sorted))
	for i, m := range sorted {
		share := base
		if i >= len(sorted)-remainder {
			share++
		}
		splits[m] = share
	}
	return splits, nil
}

// ValidateCustomSplit checks caller-declared shares against the expense
// amount and the group's member set. Every member must have a non-negative
// share, no share may belong to a non-member, and the shares must sum to
// amount exactly. Because arithmetic is in integer cents, "within one minor
// unit" collapses to exact equality: a one-cent shortfall is already a
// mismatch.
//
// On success the returned map is a defensive copy of proposed.
func ValidateCustomSplit(amount models.Cents, proposed map[string]models.Cents, members []string) (map[string]models.Cents, error) {
	if err := checkMembers(members); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, &InvalidAmountError{Amount: amount}
	}

	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}

	for m := range proposed {
		if !memberSet[m] {
			return nil, &InvalidShareError{Member: m, Reason: "not a group member"}
		}
	}

	splits := make(map[string]models.Cents, len(members))
	var sum models.Cents
	for _, m := range members {
		share, ok := proposed[m]
		if !ok {
			return nil, &InvalidShareError{Member: m, Reason: "missing share"}
		}
		if share < 0 {
			return nil, &InvalidShareError{Member: m, Reason: "negative share"}
		}
		splits[m] = share
		sum += share
	}

	if sum != amount {
		return nil, &ShareMismatchError{Amount: amount, Sum: sum, Delta: amount - sum}
	}
	return splits, nil
}

// ValidateExpense re-checks an expense's entry invariants against a member
// set: split keys equal the members exactly, the payer is a member, shares
// are non-negative and sum to the amount. The service boundary calls this
// before every write; the group ledger calls it again defensively during
// recompute.
func ValidateExpense(e *models.Expense, members []string) error {
	if e.PaidBy == "" {
		return &InvalidShareError{Member: e.PaidBy, Reason: "missing payer"}
	}
	if _, ok := e.Splits[e.PaidBy]; !ok {
		return &InvalidShareError{Member: e.PaidBy, Reason: "payer is not in the splits"}
	}
	_, err := ValidateCustomSplit(e.Amount, e.Splits, members)
	return err
}

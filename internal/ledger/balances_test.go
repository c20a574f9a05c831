package ledger

import (
	"errors"
	"reflect"
	"testing"

	"splitledger/internal/models"
)

func expense(id, paidBy string, amount models.Cents, splits map[string]models.Cents) *models.Expense {
	return &models.Expense{
		ID:      id,
		GroupID: "g1",
		PaidBy:  paidBy,
		Amount:  amount,
		Splits:  splits,
	}
}

func TestComputeBalances(t *testing.T) {
	two := []string{"alice@x.com", "bob@x.com"}

	tests := []struct {
		name     string
		members  []string
		expenses []*models.Expense
		want     map[string]models.Cents
	}{
		{
			name:     "empty expense list is all zeros",
			members:  two,
			expenses: nil,
			want:     map[string]models.Cents{"alice@x.com": 0, "bob@x.com": 0},
		},
		{
			name:    "equal split paid by one member",
			members: two,
			expenses: []*models.Expense{
				expense("e1", "alice@x.com", 5000,
					map[string]models.Cents{"alice@x.com": 2500, "bob@x.com": 2500}),
			},
			want: map[string]models.Cents{"alice@x.com": 2500, "bob@x.com": -2500},
		},
		{
			name:    "edited amount leaves no residue from the old version",
			members: two,
			expenses: []*models.Expense{
				// Same expense as above after an edit to 80.00: recompute
				// sees only the current snapshot.
				expense("e1", "alice@x.com", 8000,
					map[string]models.Cents{"alice@x.com": 4000, "bob@x.com": 4000}),
			},
			want: map[string]models.Cents{"alice@x.com": 4000, "bob@x.com": -4000},
		},
		{
			name:    "single-member group always balances to zero",
			members: []string{"solo@x.com"},
			expenses: []*models.Expense{
				expense("e1", "solo@x.com", 1234,
					map[string]models.Cents{"solo@x.com": 1234}),
			},
			want: map[string]models.Cents{"solo@x.com": 0},
		},
		{
			name:    "multiple expenses with mixed payers",
			members: []string{"alice@x.com", "bob@x.com", "carol@x.com"},
			expenses: []*models.Expense{
				expense("e1", "alice@x.com", 9000,
					map[string]models.Cents{"alice@x.com": 3000, "bob@x.com": 3000, "carol@x.com": 3000}),
				expense("e2", "bob@x.com", 3000,
					map[string]models.Cents{"alice@x.com": 1000, "bob@x.com": 1000, "carol@x.com": 1000}),
			},
			want: map[string]models.Cents{
				"alice@x.com": 5000,  // fronted 60.00, owes bob 10.00
				"bob@x.com":   -1000, // owes alice 30.00, fronted 20.00
				"carol@x.com": -4000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBalances("g1", tt.members, tt.expenses)
			if err != nil {
				t.Fatalf("ComputeBalances() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("balances = %v, want %v", got, tt.want)
			}

			var sum models.Cents
			for _, b := range got {
				sum += b
			}
			if sum != 0 {
				t.Errorf("zero-sum invariant violated: balances sum to %v", sum)
			}
		})
	}
}

func TestComputeBalancesDeleteReturnsToZero(t *testing.T) {
	// Scenario: the only expense in a two-member group is deleted. The next
	// recompute runs on an empty snapshot and every balance is back at zero.
	members := []string{"alice@x.com", "bob@x.com"}

	got, err := ComputeBalances("g1", members, []*models.Expense{})
	if err != nil {
		t.Fatalf("ComputeBalances() error = %v", err)
	}
	for m, b := range got {
		if b != 0 {
			t.Errorf("%s balance = %v, want 0 after delete", m, b)
		}
	}
}

func TestComputeBalancesIdempotent(t *testing.T) {
	members := []string{"alice@x.com", "bob@x.com", "carol@x.com"}
	expenses := []*models.Expense{
		expense("e1", "alice@x.com", 10000,
			map[string]models.Cents{"alice@x.com": 3333, "bob@x.com": 3333, "carol@x.com": 3334}),
		expense("e2", "carol@x.com", 601,
			map[string]models.Cents{"alice@x.com": 200, "bob@x.com": 200, "carol@x.com": 201}),
	}

	first, err := ComputeBalances("g1", members, expenses)
	if err != nil {
		t.Fatalf("first recompute failed: %v", err)
	}
	second, err := ComputeBalances("g1", members, expenses)
	if err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recompute not idempotent: %v then %v", first, second)
	}
}

func TestComputeBalancesRejectsCorruptExpenses(t *testing.T) {
	members := []string{"alice@x.com", "bob@x.com"}

	tests := []struct {
		name string
		exp  *models.Expense
	}{
		{
			name: "splits missing a member",
			exp: expense("e1", "alice@x.com", 5000,
				map[string]models.Cents{"alice@x.com": 5000}),
		},
		{
			name: "payer outside the group",
			exp: expense("e1", "mallory@x.com", 5000,
				map[string]models.Cents{"alice@x.com": 2500, "bob@x.com": 2500}),
		},
		{
			name: "shares do not sum to amount",
			exp: expense("e1", "alice@x.com", 5000,
				map[string]models.Cents{"alice@x.com": 2500, "bob@x.com": 2400}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBalances("g1", members, []*models.Expense{tt.exp})
			var violation *InvariantViolationError
			if !errors.As(err, &violation) {
				t.Fatalf("error = %v, want InvariantViolationError", err)
			}
			if violation.GroupID != "g1" {
				t.Errorf("violation group = %q, want g1", violation.GroupID)
			}
		})
	}
}

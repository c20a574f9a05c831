package ledger

import (
	"errors"
	"testing"

	"splitledger/internal/models"
)

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       models.Cents
		members      []string
		wantErr      bool
		validateFunc func(t *testing.T, splits map[string]models.Cents)
	}{
		{
			name:    "100.00 across three members",
			amount:  10000,
			members: []string{"alice@x.com", "bob@x.com", "carol@x.com"},
			validateFunc: func(t *testing.T, splits map[string]models.Cents) {
				// 33.33 + 33.33 + 33.34, remainder cent on the last member
				// in sorted order.
				if splits["alice@x.com"] != 3333 {
					t.Errorf("alice share = %v, want 33.33", splits["alice@x.com"])
				}
				if splits["bob@x.com"] != 3333 {
					t.Errorf("bob share = %v, want 33.33", splits["bob@x.com"])
				}
				if splits["carol@x.com"] != 3334 {
					t.Errorf("carol share = %v, want 33.34", splits["carol@x.com"])
				}
			},
		},
		{
			name:    "result is independent of member order",
			amount:  10000,
			members: []string{"carol@x.com", "alice@x.com", "bob@x.com"},
			validateFunc: func(t *testing.T, splits map[string]models.Cents) {
				if splits["carol@x.com"] != 3334 {
					t.Errorf("carol share = %v, want 33.34", splits["carol@x.com"])
				}
			},
		},
		{
			name:    "single member keeps the whole amount",
			amount:  5000,
			members: []string{"alice@x.com"},
			validateFunc: func(t *testing.T, splits map[string]models.Cents) {
				if splits["alice@x.com"] != 5000 {
					t.Errorf("share = %v, want 50.00", splits["alice@x.com"])
				}
			},
		},
		{
			name:    "remainder larger than one cent spreads over the tail",
			amount:  5, // 0.05 across three members: 0.01, 0.02, 0.02
			members: []string{"a@x.com", "b@x.com", "c@x.com"},
			validateFunc: func(t *testing.T, splits map[string]models.Cents) {
				if splits["a@x.com"] != 1 || splits["b@x.com"] != 2 || splits["c@x.com"] != 2 {
					t.Errorf("splits = %v, want a=0.01 b=0.02 c=0.02", splits)
				}
			},
		},
		{
			name:    "empty members",
			amount:  1000,
			members: nil,
			wantErr: true,
		},
		{
			name:    "duplicate member",
			amount:  1000,
			members: []string{"a@x.com", "a@x.com"},
			wantErr: true,
		},
		{
			name:    "zero amount",
			amount:  0,
			members: []string{"a@x.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := EqualSplit(tt.amount, tt.members)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EqualSplit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			var sum models.Cents
			var min, max models.Cents
			first := true
			for _, s := range splits {
				sum += s
				if first || s < min {
					min = s
				}
				if first || s > max {
					max = s
				}
				first = false
			}
			if sum != tt.amount {
				t.Errorf("shares sum to %v, want %v exactly", sum, tt.amount)
			}
			if max-min > 1 {
				t.Errorf("share spread %v exceeds one cent (min %v, max %v)", max-min, min, max)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestValidateCustomSplit(t *testing.T) {
	members := []string{"alice@x.com", "bob@x.com"}

	tests := []struct {
		name     string
		amount   models.Cents
		proposed map[string]models.Cents
		wantErr  error
	}{
		{
			name:     "valid uneven split",
			amount:   10000,
			proposed: map[string]models.Cents{"alice@x.com": 7000, "bob@x.com": 3000},
		},
		{
			name:     "zero share is allowed",
			amount:   10000,
			proposed: map[string]models.Cents{"alice@x.com": 10000, "bob@x.com": 0},
		},
		{
			name:     "shares short by one cent",
			amount:   10000,
			proposed: map[string]models.Cents{"alice@x.com": 4999, "bob@x.com": 5000},
			wantErr:  &ShareMismatchError{},
		},
		{
			name:     "missing member",
			amount:   10000,
			proposed: map[string]models.Cents{"alice@x.com": 10000},
			wantErr:  &InvalidShareError{},
		},
		{
			name:     "share for a non-member",
			amount:   10000,
			proposed: map[string]models.Cents{"alice@x.com": 5000, "bob@x.com": 4000, "mallory@x.com": 1000},
			wantErr:  &InvalidShareError{},
		},
		{
			name:     "negative share",
			amount:   10000,
			proposed: map[string]models.Cents{"alice@x.com": 11000, "bob@x.com": -1000},
			wantErr:  &InvalidShareError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ValidateCustomSplit(tt.amount, tt.proposed, members)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateCustomSplit() error = %v, want nil", err)
				}
				var sum models.Cents
				for _, s := range splits {
					sum += s
				}
				if sum != tt.amount {
					t.Errorf("validated shares sum to %v, want %v", sum, tt.amount)
				}
				return
			}

			switch tt.wantErr.(type) {
			case *ShareMismatchError:
				var mismatch *ShareMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("error = %v, want ShareMismatchError", err)
				}
			case *InvalidShareError:
				var invalid *InvalidShareError
				if !errors.As(err, &invalid) {
					t.Fatalf("error = %v, want InvalidShareError", err)
				}
				if invalid.Member == "" {
					t.Error("InvalidShareError should name the offending member")
				}
			}
		})
	}
}

func TestValidateCustomSplitMismatchDelta(t *testing.T) {
	// Declared shares summing to 99.99 against a 100.00 amount must fail
	// with a delta of exactly one cent.
	members := []string{"alice@x.com", "bob@x.com", "carol@x.com"}
	proposed := map[string]models.Cents{
		"alice@x.com": 3333,
		"bob@x.com":   3333,
		"carol@x.com": 3333,
	}

	_, err := ValidateCustomSplit(10000, proposed, members)

	var mismatch *ShareMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want ShareMismatchError", err)
	}
	if mismatch.Delta != 1 {
		t.Errorf("delta = %v, want 0.01", mismatch.Delta)
	}
	if mismatch.Sum != 9999 {
		t.Errorf("sum = %v, want 99.99", mismatch.Sum)
	}
}

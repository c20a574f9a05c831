package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("get by email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID || got.DisplayName != "Alice" {
			t.Errorf("got user %+v, want %+v", got, user)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Email != "alice@example.com" {
			t.Errorf("got email %q, want alice@example.com", got.Email)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got error %v, want ErrNotFound", err)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Other Alice", "hash2")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected error creating duplicate email, got nil")
		}
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		ID:        uuid.New().String(),
		Name:      "Roommates",
		Members:   []string{"alice@x.com", "bob@x.com", "carol@x.com"},
		CreatedBy: "alice@x.com",
		CreatedAt: time.Now().Unix(),
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("get group with members", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Roommates" || len(got.Members) != 3 {
			t.Errorf("got group %+v, want name Roommates with 3 members", got)
		}
	})

	t.Run("list by member", func(t *testing.T) {
		groups, err := store.ListGroupsByMember(ctx, "bob@x.com")
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 1 || groups[0].ID != group.ID {
			t.Errorf("got %d groups, want exactly the created one", len(groups))
		}
	})

	t.Run("list by non-member", func(t *testing.T) {
		groups, err := store.ListGroupsByMember(ctx, "dave@x.com")
		if err != nil {
			t.Fatalf("ListGroupsByMember failed: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("got %d groups for non-member, want 0", len(groups))
		}
	})

	t.Run("missing group", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "no-such-group")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got error %v, want ErrNotFound", err)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		ID:        uuid.New().String(),
		Name:      "Trip",
		Members:   []string{"alice@x.com", "bob@x.com"},
		CreatedBy: "alice@x.com",
		CreatedAt: time.Now().Unix(),
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	expense := &models.Expense{
		ID:          uuid.New().String(),
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      5000,
		PaidBy:      "alice@x.com",
		Splits:      map[string]models.Cents{"alice@x.com": 2500, "bob@x.com": 2500},
		CreatedAt:   time.Now().Unix(),
		UpdatedAt:   time.Now().Unix(),
	}
	if err := store.WriteExpense(ctx, expense); err != nil {
		t.Fatalf("WriteExpense failed: %v", err)
	}

	t.Run("read back with splits", func(t *testing.T) {
		expenses, err := store.ReadExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ReadExpenses failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("got %d expenses, want 1", len(expenses))
		}
		got := expenses[0]
		if got.Amount != 5000 || got.PaidBy != "alice@x.com" {
			t.Errorf("got expense %+v", got)
		}
		if got.Splits["bob@x.com"] != 2500 {
			t.Errorf("got bob split %d, want 2500", got.Splits["bob@x.com"])
		}
	})

	t.Run("rewrite replaces splits atomically", func(t *testing.T) {
		updated := *expense
		updated.Amount = 8000
		updated.Splits = map[string]models.Cents{"alice@x.com": 4000, "bob@x.com": 4000}
		updated.UpdatedAt = time.Now().Unix()
		if err := store.WriteExpense(ctx, &updated); err != nil {
			t.Fatalf("WriteExpense update failed: %v", err)
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount != 8000 {
			t.Errorf("got amount %d, want 8000", got.Amount)
		}
		if len(got.Splits) != 2 || got.Splits["alice@x.com"] != 4000 {
			t.Errorf("got splits %v, want fully replaced set", got.Splits)
		}
	})

	t.Run("delete removes expense and splits", func(t *testing.T) {
		if err := store.DeleteExpense(ctx, group.ID, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got error %v after delete, want ErrNotFound", err)
		}
		expenses, err := store.ReadExpenses(ctx, group.ID)
		if err != nil {
			t.Fatalf("ReadExpenses failed: %v", err)
		}
		if len(expenses) != 0 {
			t.Errorf("got %d expenses after delete, want 0", len(expenses))
		}
	})

	t.Run("delete missing expense", func(t *testing.T) {
		err := store.DeleteExpense(ctx, group.ID, "no-such-expense")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got error %v, want ErrNotFound", err)
		}
	})

	t.Run("delete with wrong group", func(t *testing.T) {
		other := &models.Expense{
			ID:          uuid.New().String(),
			GroupID:     group.ID,
			Description: "Taxi",
			Amount:      1000,
			PaidBy:      "bob@x.com",
			Splits:      map[string]models.Cents{"alice@x.com": 500, "bob@x.com": 500},
			CreatedAt:   time.Now().Unix(),
			UpdatedAt:   time.Now().Unix(),
		}
		if err := store.WriteExpense(ctx, other); err != nil {
			t.Fatalf("WriteExpense failed: %v", err)
		}
		err := store.DeleteExpense(ctx, "wrong-group", other.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got error %v, want ErrNotFound", err)
		}
	})
}

func TestPersonalExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	e1 := &models.PersonalExpense{
		ID: uuid.New().String(), UserEmail: "alice@x.com",
		Description: "Coffee", Amount: 450, CreatedAt: time.Now().Unix(),
	}
	e2 := &models.PersonalExpense{
		ID: uuid.New().String(), UserEmail: "alice@x.com",
		Description: "Book", Amount: 1550, CreatedAt: time.Now().Unix() + 1,
	}
	for _, e := range []*models.PersonalExpense{e1, e2} {
		if err := store.CreatePersonalExpense(ctx, e); err != nil {
			t.Fatalf("CreatePersonalExpense failed: %v", err)
		}
	}

	t.Run("list newest first", func(t *testing.T) {
		expenses, err := store.ListPersonalExpenses(ctx, "alice@x.com")
		if err != nil {
			t.Fatalf("ListPersonalExpenses failed: %v", err)
		}
		if len(expenses) != 2 || expenses[0].ID != e2.ID {
			t.Errorf("got %d expenses with first %v, want Book first", len(expenses), expenses)
		}
	})

	t.Run("sum", func(t *testing.T) {
		total, err := store.SumPersonalExpenses(ctx, "alice@x.com")
		if err != nil {
			t.Fatalf("SumPersonalExpenses failed: %v", err)
		}
		if total != 2000 {
			t.Errorf("got total %d, want 2000", total)
		}
	})

	t.Run("sum for user with no expenses", func(t *testing.T) {
		total, err := store.SumPersonalExpenses(ctx, "bob@x.com")
		if err != nil {
			t.Fatalf("SumPersonalExpenses failed: %v", err)
		}
		if total != 0 {
			t.Errorf("got total %d, want 0", total)
		}
	})

	t.Run("delete guarded by owner", func(t *testing.T) {
		err := store.DeletePersonalExpense(ctx, "bob@x.com", e1.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got error %v deleting another user's expense, want ErrNotFound", err)
		}
		if err := store.DeletePersonalExpense(ctx, "alice@x.com", e1.ID); err != nil {
			t.Fatalf("DeletePersonalExpense failed: %v", err)
		}
		total, err := store.SumPersonalExpenses(ctx, "alice@x.com")
		if err != nil {
			t.Fatalf("SumPersonalExpenses failed: %v", err)
		}
		if total != 1550 {
			t.Errorf("got total %d after delete, want 1550", total)
		}
	})
}

func TestActivity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, action := range []string{
		models.ActivityExpenseAdded,
		models.ActivityExpenseUpdated,
		models.ActivityExpenseDeleted,
	} {
		a := &models.Activity{
			ID:          uuid.New().String(),
			GroupID:     "g1",
			Actor:       "alice@x.com",
			Action:      action,
			Description: "Dinner",
			Amount:      5000,
			CreatedAt:   time.Now().Unix() + int64(i),
		}
		if err := store.RecordActivity(ctx, a); err != nil {
			t.Fatalf("RecordActivity failed: %v", err)
		}
	}

	activities, err := store.ListActivityByGroup(ctx, "g1", 2)
	if err != nil {
		t.Fatalf("ListActivityByGroup failed: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("got %d activities, want 2 (limit)", len(activities))
	}
	if activities[0].Action != models.ActivityExpenseDeleted {
		t.Errorf("got first action %q, want newest (%q)", activities[0].Action, models.ActivityExpenseDeleted)
	}
}

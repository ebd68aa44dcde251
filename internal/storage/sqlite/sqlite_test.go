package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/models"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()

	user := models.NewUser(username, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and fetch by username and ID", func(t *testing.T) {
		user := createTestUser(t, store, "alice")

		byName, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if byName == nil || byName.ID != user.ID {
			t.Fatalf("expected user %s, got %+v", user.ID, byName)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID == nil || byID.Username != "alice" {
			t.Fatalf("expected alice, got %+v", byID)
		}
	})

	t.Run("missing user returns nil without error", func(t *testing.T) {
		user, err := store.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user != nil {
			t.Errorf("expected nil user, got %+v", user)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		createTestUser(t, store, "bob")
		err := store.CreateUser(ctx, models.NewUser("bob", "other-hash"))
		if err == nil {
			t.Error("expected error for duplicate username, got nil")
		}
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")
	carol := createTestUser(t, store, "carol")

	t.Run("create assigns ID and timestamp", func(t *testing.T) {
		group := &models.Group{Name: "Roommates", Members: []string{alice.ID}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("expected group ID to be generated")
		}
		if group.UpdatedAt.IsZero() {
			t.Error("expected UpdatedAt to be set")
		}
	})

	t.Run("visible only to members", func(t *testing.T) {
		group := &models.Group{Name: "Trip", Members: []string{alice.ID, bob.ID}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		got, err := store.GroupForUser(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("GroupForUser for member failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Errorf("expected 2 members, got %d", len(got.Members))
		}

		_, err = store.GroupForUser(ctx, group.ID, carol.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for non-member, got %v", err)
		}
	})

	t.Run("tombstones stay visible to members", func(t *testing.T) {
		group := &models.Group{Name: "Old Flat", Members: []string{alice.ID}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if err := store.SoftDeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("SoftDeleteGroup failed: %v", err)
		}

		got, err := store.GroupForUser(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("GroupForUser for deleted group failed: %v", err)
		}
		if !got.IsDeleted {
			t.Error("expected IsDeleted to be true")
		}

		found := false
		groups, err := store.GroupsForUser(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GroupsForUser failed: %v", err)
		}
		for _, g := range groups {
			if g.ID == group.ID {
				found = true
			}
		}
		if !found {
			t.Error("expected deleted group in member's listing")
		}
	})

	t.Run("soft delete is idempotent and re-stamps", func(t *testing.T) {
		group := &models.Group{Name: "Twice", Members: []string{alice.ID}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		if err := store.SoftDeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("first delete failed: %v", err)
		}
		first, err := store.GroupForUser(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("GroupForUser failed: %v", err)
		}

		if err := store.SoftDeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("second delete failed: %v", err)
		}
		second, err := store.GroupForUser(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("GroupForUser failed: %v", err)
		}

		if !second.IsDeleted {
			t.Error("expected IsDeleted to remain true")
		}
		if !second.UpdatedAt.After(first.UpdatedAt) {
			t.Errorf("expected UpdatedAt to advance: %v then %v", first.UpdatedAt, second.UpdatedAt)
		}
	})

	t.Run("update replaces members and advances UpdatedAt", func(t *testing.T) {
		group := &models.Group{Name: "Before", Members: []string{alice.ID}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		created := group.UpdatedAt

		group.Name = "After"
		group.Members = []string{alice.ID, bob.ID}
		if err := store.UpdateGroup(ctx, group); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}

		got, err := store.GroupForUser(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("GroupForUser for added member failed: %v", err)
		}
		if got.Name != "After" {
			t.Errorf("name: expected 'After', got %q", got.Name)
		}
		if len(got.Members) != 2 {
			t.Errorf("expected 2 members, got %d", len(got.Members))
		}
		if !got.UpdatedAt.After(created) {
			t.Error("expected UpdatedAt to advance on update")
		}
	})

	t.Run("updating a missing group returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateGroup(ctx, &models.Group{ID: "missing", Name: "x"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")
	outsider := createTestUser(t, store, "mallory")

	group := &models.Group{Name: "Flat", Members: []string{alice.ID, bob.ID}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("create round-trips the decimal amount", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:      group.ID,
			Name:         "Pizza",
			Description:  "Friday night",
			Amount:       decimal.RequireFromString("45.50"),
			PersonPaying: alice.ID,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("expected expense ID to be generated")
		}
		if expense.Date.IsZero() || expense.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}

		got, err := store.ExpenseForUser(ctx, expense.ID, alice.ID)
		if err != nil {
			t.Fatalf("ExpenseForUser failed: %v", err)
		}
		if got.Amount.StringFixed(2) != "45.50" {
			t.Errorf("amount: expected 45.50, got %s", got.Amount.StringFixed(2))
		}
		if got.PersonPaying != alice.ID {
			t.Errorf("person_paying: expected %s, got %s", alice.ID, got.PersonPaying)
		}
	})

	t.Run("visibility is transitive through group membership", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:      group.ID,
			Name:         "Groceries",
			Amount:       decimal.RequireFromString("120.00"),
			PersonPaying: alice.ID,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		// Bob never paid anything but sees the expense through the group.
		if _, err := store.ExpenseForUser(ctx, expense.ID, bob.ID); err != nil {
			t.Errorf("expected member visibility, got %v", err)
		}

		_, err := store.ExpenseForUser(ctx, expense.ID, outsider.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for outsider, got %v", err)
		}

		list, err := store.ExpensesForUser(ctx, outsider.ID)
		if err != nil {
			t.Fatalf("ExpensesForUser failed: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("expected empty listing for outsider, got %d", len(list))
		}
	})

	t.Run("update never touches group or payer", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:      group.ID,
			Name:         "Taxi",
			Amount:       decimal.RequireFromString("30.00"),
			PersonPaying: bob.ID,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expense.Name = "Taxi home"
		expense.Amount = decimal.RequireFromString("35.00")
		// These assignments must be ignored by the UPDATE statement.
		expense.GroupID = "other-group"
		expense.PersonPaying = alice.ID
		if err := store.UpdateExpense(ctx, expense); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		got, err := store.ExpenseForUser(ctx, expense.ID, bob.ID)
		if err != nil {
			t.Fatalf("ExpenseForUser failed: %v", err)
		}
		if got.GroupID != group.ID {
			t.Errorf("group changed: got %s", got.GroupID)
		}
		if got.PersonPaying != bob.ID {
			t.Errorf("payer changed: got %s", got.PersonPaying)
		}
		if got.Name != "Taxi home" || got.Amount.StringFixed(2) != "35.00" {
			t.Errorf("expected updated fields, got %q %s", got.Name, got.Amount)
		}
	})

	t.Run("soft delete keeps the tombstone visible", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:      group.ID,
			Name:         "Cinema",
			Amount:       decimal.RequireFromString("50.00"),
			PersonPaying: alice.ID,
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		created := expense.UpdatedAt

		if err := store.SoftDeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("SoftDeleteExpense failed: %v", err)
		}

		got, err := store.ExpenseForUser(ctx, expense.ID, bob.ID)
		if err != nil {
			t.Fatalf("ExpenseForUser for tombstone failed: %v", err)
		}
		if !got.IsDeleted {
			t.Error("expected IsDeleted to be true")
		}
		if !got.UpdatedAt.After(created) {
			t.Error("expected UpdatedAt to advance on delete")
		}
		if got.Date.Equal(got.UpdatedAt) {
			t.Error("expected Date to stay at creation time")
		}
	})
}

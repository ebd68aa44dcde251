package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/delta"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/models"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/storage"
)

// ExpenseService implements expense operations. Visibility is always derived
// transitively through group membership.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries the client-controlled fields of a new expense.
// PersonPaying is deliberately absent: the payer is always the requester.
type CreateExpenseInput struct {
	Name        string
	Description string
	Amount      decimal.Decimal
	GroupID     string
}

// UpdateExpenseInput carries the mutable fields of an expense. The owning
// group and the payer have no update path.
type UpdateExpenseInput struct {
	Name        string
	Description string
	Amount      decimal.Decimal
}

// List returns the expenses visible through the user's group memberships,
// tombstones included, narrowed by the sync watermark.
func (s *ExpenseService) List(ctx context.Context, userID string, watermark *time.Time) ([]models.Expense, error) {
	expenses, err := s.store.ExpensesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return delta.Filter(expenses, watermark), nil
}

// Create records a new expense paid by the requester. The group is resolved
// through the membership-scoped lookup; a global lookup here would let a user
// attach expenses to groups they cannot see.
func (s *ExpenseService) Create(ctx context.Context, userID string, in CreateExpenseInput) (*models.Expense, error) {
	if err := validateExpense(in.Name, in.Amount); err != nil {
		return nil, err
	}
	if in.GroupID == "" {
		return nil, invalid("group", "This field is required.")
	}

	if _, err := s.store.GroupForUser(ctx, in.GroupID, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, invalid("group", "Invalid group.")
		}
		return nil, err
	}

	expense := &models.Expense{
		GroupID:      in.GroupID,
		Name:         in.Name,
		Description:  in.Description,
		Amount:       in.Amount.Round(2),
		PersonPaying: userID,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount.String(),
		"user_id", userID,
	)
	return expense, nil
}

// Get returns a single visible expense, or storage.ErrNotFound.
func (s *ExpenseService) Get(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	return s.store.ExpenseForUser(ctx, expenseID, userID)
}

// Update modifies name, description and amount. Fields outside the input
// struct, notably person_paying and group, are ignored even when the client
// supplies them.
func (s *ExpenseService) Update(ctx context.Context, userID, expenseID string, in UpdateExpenseInput) (*models.Expense, error) {
	expense, err := s.store.ExpenseForUser(ctx, expenseID, userID)
	if err != nil {
		return nil, err
	}

	if err := validateExpense(in.Name, in.Amount); err != nil {
		return nil, err
	}

	expense.Name = in.Name
	expense.Description = in.Description
	expense.Amount = in.Amount.Round(2)
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("expense updated", "expense_id", expense.ID, "user_id", userID)
	return expense, nil
}

// Delete tombstones the expense so syncing clients observe the deletion.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	if _, err := s.store.ExpenseForUser(ctx, expenseID, userID); err != nil {
		return err
	}
	if err := s.store.SoftDeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	slog.Info("expense deleted", "expense_id", expenseID, "user_id", userID)
	return nil
}

func validateExpense(name string, amount decimal.Decimal) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "This field is required."
	}
	if amount.IsZero() {
		fields["amount"] = "A valid amount is required."
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

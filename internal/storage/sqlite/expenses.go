package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/models"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/storage"
)

const expenseColumns = "e.id, e.group_id, e.name, e.description, e.amount, e.person_paying, e.date, e.updated_at, e.is_deleted"

// CreateExpense persists a new expense. ID, Date and UpdatedAt are assigned
// by the store; the amount is stored as a decimal string with exactly two
// fractional digits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	stamp := now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO expenses (id, group_id, name, description, amount, person_paying, date, updated_at, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
	`,
		expense.ID,
		expense.GroupID,
		expense.Name,
		expense.Description,
		expense.Amount.StringFixed(2),
		expense.PersonPaying,
		stamp,
		stamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	expense.Date = fromNanos(stamp)
	expense.UpdatedAt = fromNanos(stamp)
	expense.IsDeleted = false
	return nil
}

// ExpenseForUser retrieves a single expense whose owning group the user is a
// member of. The membership test runs through the group join, never through
// the expense itself.
func (s *SQLiteStore) ExpenseForUser(ctx context.Context, expenseID, userID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		JOIN group_members m ON m.group_id = e.group_id
		WHERE e.id = ? AND m.user_id = ?
	`, expenseID, userID)

	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ExpensesForUser lists every expense visible through the user's group
// memberships, tombstones included.
func (s *SQLiteStore) ExpensesForUser(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		JOIN group_members m ON m.group_id = e.group_id
		WHERE m.user_id = ?
		ORDER BY e.updated_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense updates the mutable fields and re-stamps UpdatedAt.
// GroupID and PersonPaying are deliberately not part of the statement.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	stamp := now()
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET name = ?, description = ?, amount = ?, updated_at = ? WHERE id = ?",
		expense.Name, expense.Description, expense.Amount.StringFixed(2), stamp, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	expense.UpdatedAt = fromNanos(stamp)
	return nil
}

// SoftDeleteExpense marks the expense as a tombstone. Idempotent.
func (s *SQLiteStore) SoftDeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET is_deleted = 1, updated_at = ? WHERE id = ?",
		now(), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft-delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount string
	var date, updatedAt int64
	err := row.Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.Name,
		&expense.Description,
		&amount,
		&expense.PersonPaying,
		&date,
		&updatedAt,
		&expense.IsDeleted,
	)
	if err != nil {
		return nil, err
	}

	expense.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	expense.Date = fromNanos(date)
	expense.UpdatedAt = fromNanos(updatedAt)
	return expense, nil
}

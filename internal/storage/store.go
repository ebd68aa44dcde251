// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/models"
)

// ErrNotFound is returned by single-record lookups when the record does not
// exist or the requesting user is not a member of its group. Callers cannot
// tell the two cases apart; both surface as 404 to avoid leaking existence.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for record storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// All group and expense reads are membership-scoped: they only return records
// reachable from the given user's group memberships, including soft-deleted
// tombstones. Every mutation runs in a single transaction and re-stamps the
// record's UpdatedAt.
type Store interface {
	// CreateUser persists a new user. Fails if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by login name.
	// Returns (nil, nil) when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) when no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group together with its member rows.
	// ID and UpdatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GroupForUser retrieves a single group the user is a member of.
	// Returns ErrNotFound for missing groups and non-members alike.
	GroupForUser(ctx context.Context, groupID, userID string) (*models.Group, error)

	// GroupsForUser lists every group the user belongs to, tombstones included.
	GroupsForUser(ctx context.Context, userID string) ([]models.Group, error)

	// UpdateGroup replaces the group's name and member set and re-stamps
	// UpdatedAt. Returns ErrNotFound if the group does not exist.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// SoftDeleteGroup marks the group as deleted and re-stamps UpdatedAt.
	// Deleting an already-deleted group only advances UpdatedAt.
	SoftDeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense.
	// ID, Date and UpdatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ExpenseForUser retrieves a single expense whose owning group the user
	// is a member of. Returns ErrNotFound otherwise.
	ExpenseForUser(ctx context.Context, expenseID, userID string) (*models.Expense, error)

	// ExpensesForUser lists every expense visible through the user's group
	// memberships, tombstones included.
	ExpensesForUser(ctx context.Context, userID string) ([]models.Expense, error)

	// UpdateExpense updates name, description and amount and re-stamps
	// UpdatedAt. GroupID and PersonPaying are never touched.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// SoftDeleteExpense marks the expense as deleted and re-stamps UpdatedAt.
	SoftDeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/calculator"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/delta"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/models"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/storage"
)

// GroupService implements group operations. Every method takes the requesting
// user's ID explicitly; there is no ambient identity state.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// List returns the groups the user belongs to, tombstones included, narrowed
// to the records mutated strictly after the watermark. The sync filter runs
// after membership scoping, never before.
func (s *GroupService) List(ctx context.Context, userID string, watermark *time.Time) ([]models.Group, error) {
	groups, err := s.store.GroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return delta.Filter(groups, watermark), nil
}

// Create creates a new group with the creator as its only member. A client
// cannot create a group without joining it.
func (s *GroupService) Create(ctx context.Context, userID, name string) (*models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", "This field is required.")
	}

	group := &models.Group{
		Name:    name,
		Members: []string{userID},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "name", group.Name, "user_id", userID)
	return group, nil
}

// Get returns a single group the user is a member of, or storage.ErrNotFound.
func (s *GroupService) Get(ctx context.Context, userID, groupID string) (*models.Group, error) {
	return s.store.GroupForUser(ctx, groupID, userID)
}

// Update renames the group and, when members is non-nil, replaces its member
// set. Only existing members may update; every listed member must be a known
// user.
func (s *GroupService) Update(ctx context.Context, userID, groupID, name string, members []string) (*models.Group, error) {
	group, err := s.store.GroupForUser(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", "This field is required.")
	}
	group.Name = name

	if members != nil {
		for _, id := range members {
			user, err := s.store.GetUserByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if user == nil {
				return nil, invalid("members", fmt.Sprintf("Invalid pk %q - object does not exist.", id))
			}
		}
		group.Members = members
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("group updated", "group_id", group.ID, "user_id", userID)
	return group, nil
}

// Delete tombstones the group. The record keeps its id and membership so it
// stays deliverable to syncing clients.
func (s *GroupService) Delete(ctx context.Context, userID, groupID string) error {
	if _, err := s.store.GroupForUser(ctx, groupID, userID); err != nil {
		return err
	}
	if err := s.store.SoftDeleteGroup(ctx, groupID); err != nil {
		return err
	}

	slog.Info("group deleted", "group_id", groupID, "user_id", userID)
	return nil
}

// Balances computes per-member balances over the group's live expenses,
// splitting each expense equally among the current members.
func (s *GroupService) Balances(ctx context.Context, userID, groupID string) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	group, err := s.store.GroupForUser(ctx, groupID, userID)
	if err != nil {
		return nil, nil, err
	}

	visible, err := s.store.ExpensesForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	payments := make([]calculator.Payment, 0)
	for _, e := range visible {
		if e.GroupID != group.ID || e.IsDeleted {
			continue
		}
		payments = append(payments, calculator.Payment{
			PayerID: e.PersonPaying,
			Amount:  e.Amount,
		})
	}

	balances, debts := calculator.GroupBalances(group.Members, payments)
	return balances, debts, nil
}

// Package models defines the core domain records for the expense-sharing
// backend.
//
// # Records
//
//   - User: a registered identity (username + bcrypt password hash)
//   - Group: a named set of member users that owns expenses
//   - Expense: a single payment recorded inside a group
//
// # Soft delete and sync
//
// Groups and expenses are never physically removed. Deleting a record flips
// IsDeleted and re-stamps UpdatedAt, leaving a tombstone that synchronizing
// clients fetch on their next delta query and then remove locally. Every
// mutation re-stamps UpdatedAt, which is the cursor clients filter on with
// the last_sync query parameter.
//
// # Visibility
//
// A group is visible to a requester iff the requester is one of its members.
// An expense is visible iff the requester is a member of its owning group;
// expenses carry no member list of their own.
package models

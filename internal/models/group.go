package models

import "time"

// Group represents a set of users sharing expenses.
//
// Members references user IDs through a many-to-many table. The creator is
// always added as a member in the same transaction that creates the group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Trip to Gdansk").
	Name string `json:"name"`

	// Members is the list of user IDs belonging to this group.
	Members []string `json:"members"`

	// UpdatedAt is re-stamped by the store on every mutation and drives
	// incremental client sync.
	UpdatedAt time.Time `json:"updated_at"`

	// IsDeleted marks the group as a tombstone. Tombstones stay visible to
	// members so clients can apply the deletion locally.
	IsDeleted bool `json:"is_deleted"`
}

// LastUpdated reports the sync cursor position of the group.
func (g Group) LastUpdated() time.Time { return g.UpdatedAt }

// HasMember reports whether the given user belongs to the group.
func (g Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

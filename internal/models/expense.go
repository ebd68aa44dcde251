package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents one payment recorded inside a group.
//
// The owning group is fixed at creation; there is no update path for it.
// PersonPaying is always the identity that created the expense, regardless
// of what the client supplied.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the owning group. Immutable after creation.
	GroupID string `json:"group"`

	// Name is a short label (e.g., "Pizza").
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description"`

	// Amount is the paid amount, fixed-point with two decimal places.
	// Serialized as a quoted decimal string ("45.50").
	Amount decimal.Decimal `json:"amount"`

	// PersonPaying is the user ID that paid. Set by the server on create.
	PersonPaying string `json:"person_paying"`

	// Date is the creation timestamp. Immutable.
	Date time.Time `json:"date"`

	// UpdatedAt is re-stamped by the store on every mutation.
	UpdatedAt time.Time `json:"updated_at"`

	// IsDeleted marks the expense as a tombstone.
	IsDeleted bool `json:"is_deleted"`
}

// LastUpdated reports the sync cursor position of the expense.
func (e Expense) LastUpdated() time.Time { return e.UpdatedAt }

// MarshalJSON pins the amount to exactly two fractional digits on the wire.
// decimal's own marshaling trims trailing zeros ("45.50" becomes "45.5"),
// which clients comparing decimal strings would see as a changed value.
func (e Expense) MarshalJSON() ([]byte, error) {
	type wire Expense
	return json.Marshal(struct {
		wire
		Amount string `json:"amount"`
	}{wire(e), e.Amount.StringFixed(2)})
}

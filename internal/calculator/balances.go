// Package calculator computes group balances from recorded expenses.
//
// Each expense is split equally among the group's current members: the payer
// contributed the full amount, every member owes an equal share. Balances are
// settled with greedy matching of the largest debtor against the largest
// creditor, which keeps the number of transfers small.
package calculator

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// Payment is the minimal slice of an expense needed for balance calculation.
type Payment struct {
	PayerID string
	Amount  decimal.Decimal
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	// UserID identifies the member.
	UserID string `json:"user_id"`

	// Paid is the total amount this member paid across all expenses.
	Paid decimal.Decimal `json:"paid"`

	// Owed is this member's equal share of all expenses.
	Owed decimal.Decimal `json:"owed"`

	// Net is Paid - Owed. Positive = is owed money, negative = owes money.
	Net decimal.Decimal `json:"net"`
}

// MarshalJSON pins the money fields to exactly two fractional digits,
// matching the expense wire form.
func (b MemberBalance) MarshalJSON() ([]byte, error) {
	type wire MemberBalance
	return json.Marshal(struct {
		wire
		Paid string `json:"paid"`
		Owed string `json:"owed"`
		Net  string `json:"net"`
	}{wire(b), b.Paid.StringFixed(2), b.Owed.StringFixed(2), b.Net.StringFixed(2)})
}

// DebtEdge represents a suggested transfer from one member to another.
type DebtEdge struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// MarshalJSON pins the transfer amount to exactly two fractional digits.
func (e DebtEdge) MarshalJSON() ([]byte, error) {
	type wire DebtEdge
	return json.Marshal(struct {
		wire
		Amount string `json:"amount"`
	}{wire(e), e.Amount.StringFixed(2)})
}

// GroupBalances computes per-member balances and a settlement plan.
// Members with no activity still appear with zero balances. Payments from
// users no longer in the member list are counted for them as well, so
// removing a member does not erase their credit.
func GroupBalances(members []string, payments []Payment) ([]MemberBalance, []DebtEdge) {
	paid := make(map[string]decimal.Decimal)
	for _, m := range members {
		paid[m] = decimal.Zero
	}

	total := decimal.Zero
	for _, p := range payments {
		paid[p.PayerID] = paid[p.PayerID].Add(p.Amount)
		total = total.Add(p.Amount)
	}

	// Stable ordering: members first, then any outside payers.
	ids := append([]string(nil), members...)
	for id := range paid {
		if !contains(members, id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	share := decimal.Zero
	if len(members) > 0 {
		share = total.Div(decimal.NewFromInt(int64(len(members)))).Round(2)
	}

	balances := make([]MemberBalance, 0, len(ids))
	for _, id := range ids {
		owed := decimal.Zero
		if contains(members, id) {
			owed = share
		}
		p := paid[id].Round(2)
		balances = append(balances, MemberBalance{
			UserID: id,
			Paid:   p,
			Owed:   owed,
			Net:    p.Sub(owed),
		})
	}

	return balances, settle(balances)
}

// settle produces transfers clearing the net balances with greedy matching.
func settle(balances []MemberBalance) []DebtEdge {
	type stake struct {
		id     string
		amount decimal.Decimal
	}
	var debtors, creditors []stake
	for _, b := range balances {
		switch {
		case b.Net.IsNegative():
			debtors = append(debtors, stake{b.UserID, b.Net.Neg()})
		case b.Net.IsPositive():
			creditors = append(creditors, stake{b.UserID, b.Net})
		}
	}
	sort.Slice(debtors, func(i, j int) bool { return debtors[i].amount.GreaterThan(debtors[j].amount) })
	sort.Slice(creditors, func(i, j int) bool { return creditors[i].amount.GreaterThan(creditors[j].amount) })

	edges := make([]DebtEdge, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		transfer := decimal.Min(debtors[i].amount, creditors[j].amount)
		if transfer.IsPositive() {
			edges = append(edges, DebtEdge{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: transfer,
			})
		}
		debtors[i].amount = debtors[i].amount.Sub(transfer)
		creditors[j].amount = creditors[j].amount.Sub(transfer)
		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}
	return edges
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

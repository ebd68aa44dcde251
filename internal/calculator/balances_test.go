package calculator

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func balanceFor(t *testing.T, balances []MemberBalance, userID string) MemberBalance {
	t.Helper()
	for _, b := range balances {
		if b.UserID == userID {
			return b
		}
	}
	t.Fatalf("no balance for %s", userID)
	return MemberBalance{}
}

func TestGroupBalancesEqualSplit(t *testing.T) {
	members := []string{"alice", "bob"}
	payments := []Payment{
		{PayerID: "alice", Amount: dec("30.00")},
		{PayerID: "alice", Amount: dec("10.00")},
	}

	balances, debts := GroupBalances(members, payments)

	alice := balanceFor(t, balances, "alice")
	if !alice.Paid.Equal(dec("40.00")) {
		t.Errorf("alice paid: expected 40.00, got %s", alice.Paid)
	}
	if !alice.Owed.Equal(dec("20.00")) {
		t.Errorf("alice owed: expected 20.00, got %s", alice.Owed)
	}
	if !alice.Net.Equal(dec("20.00")) {
		t.Errorf("alice net: expected 20.00, got %s", alice.Net)
	}

	bob := balanceFor(t, balances, "bob")
	if !bob.Net.Equal(dec("-20.00")) {
		t.Errorf("bob net: expected -20.00, got %s", bob.Net)
	}

	if len(debts) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(debts))
	}
	if debts[0].From != "bob" || debts[0].To != "alice" || !debts[0].Amount.Equal(dec("20.00")) {
		t.Errorf("unexpected transfer: %+v", debts[0])
	}
}

func TestGroupBalancesNoPayments(t *testing.T) {
	balances, debts := GroupBalances([]string{"alice", "bob"}, nil)

	if len(balances) != 2 {
		t.Fatalf("expected balances for both members, got %d", len(balances))
	}
	for _, b := range balances {
		if !b.Net.IsZero() {
			t.Errorf("%s: expected zero net, got %s", b.UserID, b.Net)
		}
	}
	if len(debts) != 0 {
		t.Errorf("expected no transfers, got %d", len(debts))
	}
}

func TestGroupBalancesThreeWay(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	payments := []Payment{
		{PayerID: "alice", Amount: dec("90.00")},
	}

	balances, debts := GroupBalances(members, payments)

	alice := balanceFor(t, balances, "alice")
	if !alice.Net.Equal(dec("60.00")) {
		t.Errorf("alice net: expected 60.00, got %s", alice.Net)
	}

	// Bob and carol each transfer their whole share to alice.
	if len(debts) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(debts))
	}
	for _, d := range debts {
		if d.To != "alice" || !d.Amount.Equal(dec("30.00")) {
			t.Errorf("unexpected transfer: %+v", d)
		}
	}
}

func TestGroupBalancesDepartedPayerKeepsCredit(t *testing.T) {
	// dave paid while a member and was later removed from the group.
	members := []string{"alice", "bob"}
	payments := []Payment{
		{PayerID: "dave", Amount: dec("20.00")},
	}

	balances, _ := GroupBalances(members, payments)

	dave := balanceFor(t, balances, "dave")
	if !dave.Paid.Equal(dec("20.00")) {
		t.Errorf("dave paid: expected 20.00, got %s", dave.Paid)
	}
	if !dave.Owed.IsZero() {
		t.Errorf("dave owed: expected 0, got %s", dave.Owed)
	}
}

func TestSettlementWireForm(t *testing.T) {
	members := []string{"alice", "bob"}
	payments := []Payment{
		{PayerID: "alice", Amount: dec("30.00")},
	}

	balances, debts := GroupBalances(members, payments)

	raw, err := json.Marshal(debts)
	if err != nil {
		t.Fatalf("marshal debts failed: %v", err)
	}
	var transfers []map[string]any
	if err := json.Unmarshal(raw, &transfers); err != nil {
		t.Fatalf("decode debts failed: %v", err)
	}
	if len(transfers) != 1 || transfers[0]["amount"] != "15.00" {
		t.Errorf("expected a single \"15.00\" transfer, got %v", transfers)
	}

	raw, err = json.Marshal(balanceFor(t, balances, "alice"))
	if err != nil {
		t.Fatalf("marshal balance failed: %v", err)
	}
	var balance map[string]any
	if err := json.Unmarshal(raw, &balance); err != nil {
		t.Fatalf("decode balance failed: %v", err)
	}
	if balance["paid"] != "30.00" || balance["owed"] != "15.00" || balance["net"] != "15.00" {
		t.Errorf("unexpected balance wire form: %v", balance)
	}
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExpenseAmountWireForm(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"keeps trailing zero", "45.50", "45.50"},
		{"whole number gains cents", "15", "15.00"},
		{"single digit padded", "9.9", "9.90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(Expense{Amount: decimal.RequireFromString(tt.amount)})
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}

			var decoded map[string]any
			if err := json.Unmarshal(raw, &decoded); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded["amount"] != tt.want {
				t.Errorf("amount: expected %q, got %v", tt.want, decoded["amount"])
			}
		})
	}
}

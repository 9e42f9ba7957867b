package core

import (
	"errors"
	"testing"
	"time"
)

func TestKindValidate(t *testing.T) {
	if err := Income.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Expense.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Kind("transfer").Validate(); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"food", CategoryFood},
		{"  Travel ", CategoryTravel},
		{"BILLS", CategoryBills},
		{"", CategoryGeneral},
		{"unknown", CategoryGeneral},
	}
	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:        "t1",
		Title:     "Coffee",
		Amount:    4.5,
		Category:  CategoryFood,
		Kind:      Expense,
		CreatedAt: time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Title: "", Amount: 1, Kind: Expense}, ErrEmptyTitle},
		{Transaction{Title: "  ", Amount: 1, Kind: Expense}, ErrEmptyTitle},
		{Transaction{Title: "a", Amount: 0, Kind: Expense}, ErrInvalidAmount},
		{Transaction{Title: "a", Amount: -3, Kind: Income}, ErrInvalidAmount},
		{Transaction{Title: "a", Amount: 1, Kind: Kind("loan")}, ErrInvalidKind},
	}
	for i, tc := range bads {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestTransactionDayKey(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	tx := Transaction{CreatedAt: time.Date(2025, 3, 1, 2, 30, 0, 0, loc)}
	// 02:30 at UTC+5 is still the last day of February in UTC.
	if got := tx.DayKey(); got != "2025-02-28" {
		t.Fatalf("DayKey() = %q, want 2025-02-28", got)
	}
}

package query

import (
	"testing"
	"time"

	"tracker/internal/core"
)

func fixture() []core.Transaction {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []core.Transaction{
		{ID: "1", Title: "banana", Amount: 3, Category: core.CategoryFood, Kind: core.Expense, CreatedAt: base},
		{ID: "2", Title: "Rent", Amount: 900, Category: core.CategoryBills, Kind: core.Expense, CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "3", Title: "apple", Amount: 3, Category: core.CategoryFood, Kind: core.Expense, CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "4", Title: "Salary", Amount: 2000, Category: "", Kind: core.Income, CreatedAt: base.AddDate(0, 0, 3)},
	}
}

func ids(records []core.Transaction) []string {
	out := make([]string, len(records))
	for i, tx := range records {
		out[i] = tx.ID
	}
	return out
}

func assertOrder(t *testing.T, got []core.Transaction, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	records := fixture()

	cases := []struct {
		name     string
		category string
		want     []string
	}{
		{"all passes everything", "all", []string{"1", "2", "3", "4"}},
		{"empty passes everything", "", []string{"1", "2", "3", "4"}},
		{"exact match", "food", []string{"1", "3"}},
		{"empty record category counts as general", "general", []string{"4"}},
		{"no matches", "travel", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterByCategory(records, tc.category)
			assertOrder(t, got, tc.want...)
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := fixture()
	FilterByCategory(records, "food")
	if records[0].ID != "1" || len(records) != 4 {
		t.Fatal("input slice was mutated")
	}
}

func TestSort(t *testing.T) {
	records := fixture()

	cases := []struct {
		name  string
		field string
		dir   string
		want  []string
	}{
		{"date asc", "date", "asc", []string{"1", "2", "3", "4"}},
		{"date desc", "date", "desc", []string{"4", "3", "2", "1"}},
		{"amount asc keeps ties stable", "amount", "asc", []string{"1", "3", "2", "4"}},
		{"amount desc keeps ties stable", "amount", "desc", []string{"4", "2", "1", "3"}},
		{"title asc ignores case", "title", "asc", []string{"3", "1", "2", "4"}},
		{"title desc ignores case", "title", "desc", []string{"4", "2", "1", "3"}},
		{"unknown field falls back to date", "bogus", "asc", []string{"1", "2", "3", "4"}},
		{"unknown dir falls back to asc", "date", "sideways", []string{"1", "2", "3", "4"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sort(records, tc.field, tc.dir)
			assertOrder(t, got, tc.want...)
		})
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := fixture()
	Sort(records, "amount", "desc")
	assertOrder(t, records, "1", "2", "3", "4")
}

// Package analytics computes derived aggregates from a ledger snapshot.
// Everything here is pure: results are recomputed on demand and never
// persisted. Summation follows snapshot order, so sums are deterministic
// for a fixed snapshot.
package analytics

import (
	"errors"
	"sort"
	"time"

	"tracker/internal/core"
)

// TrailingDays is the size of the daily series scaffold.
const TrailingDays = 7

// ErrNoTransactions is returned by the extremum queries on empty input.
var ErrNoTransactions = errors.New("no transactions")

// Totals holds the running income/expense sums and their balance.
type Totals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// DayTotal is one point of the daily series. Day is a UTC calendar day
// formatted as YYYY-MM-DD.
type DayTotal struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
}

// ComputeTotals sums amounts by kind. Empty input yields all zeros.
func ComputeTotals(records []core.Transaction) Totals {
	var t Totals
	for _, tx := range records {
		switch tx.Kind {
		case core.Income:
			t.Income += tx.Amount
		case core.Expense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// CategoryTotals groups all records by category, regardless of kind, and
// sums their amounts. Categories with no records are omitted.
func CategoryTotals(records []core.Transaction) map[core.Category]float64 {
	totals := make(map[core.Category]float64)
	for _, tx := range records {
		cat := tx.Category
		if cat == "" {
			cat = core.CategoryGeneral
		}
		totals[cat] += tx.Amount
	}
	return totals
}

// DailySeries buckets record amounts by UTC calendar day over the
// trailing seven days ending at ref, oldest first. Days outside the
// scaffold that carry records are appended and the whole series is
// sorted ascending by day, so the result is never shorter than seven
// entries but may be longer.
//
// Income and expense amounts are summed together; the UI labels the
// series "expenses" but has always charted both kinds.
func DailySeries(records []core.Transaction, ref time.Time) []DayTotal {
	series := make([]DayTotal, 0, TrailingDays)
	index := make(map[string]int, TrailingDays)
	day := ref.UTC()
	for i := TrailingDays - 1; i >= 0; i-- {
		key := day.AddDate(0, 0, -i).Format("2006-01-02")
		index[key] = len(series)
		series = append(series, DayTotal{Day: key})
	}

	for _, tx := range records {
		key := tx.DayKey()
		i, ok := index[key]
		if !ok {
			i = len(series)
			index[key] = i
			series = append(series, DayTotal{Day: key})
		}
		series[i].Total += tx.Amount
	}

	// ISO day strings sort lexicographically in date order.
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Day < series[j].Day
	})
	return series
}

// MaxByAmount returns the record with the largest amount. Ties keep the
// earliest record in snapshot order.
func MaxByAmount(records []core.Transaction) (core.Transaction, error) {
	if len(records) == 0 {
		return core.Transaction{}, ErrNoTransactions
	}
	best := records[0]
	for _, tx := range records[1:] {
		if tx.Amount > best.Amount {
			best = tx
		}
	}
	return best, nil
}

// MinByAmount returns the record with the smallest amount. Ties keep the
// earliest record in snapshot order.
func MinByAmount(records []core.Transaction) (core.Transaction, error) {
	if len(records) == 0 {
		return core.Transaction{}, ErrNoTransactions
	}
	best := records[0]
	for _, tx := range records[1:] {
		if tx.Amount < best.Amount {
			best = tx
		}
	}
	return best, nil
}

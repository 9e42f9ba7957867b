// Package core holds the transaction domain types and input parsing.
//
// This file contains amount parsing. Amounts arrive from the UI as free
// text and must become a positive finite number before they are allowed
// anywhere near the ledger.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a user-supplied amount string to a positive magnitude.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for empty input, non-numeric input, NaN,
// infinities, zero and negative values.
//
// Examples:
//
//	ParseAmount("4.50")  -> 4.5, nil
//	ParseAmount("4,50")  -> 4.5, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
//	ParseAmount("-1")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

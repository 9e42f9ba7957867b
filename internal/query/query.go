// Package query provides read-side filtering and ordering over ledger
// snapshots. All functions return new slices and never mutate input.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tracker/internal/core"
)

// CategoryAll selects every record regardless of category.
const CategoryAll = "all"

// Sort fields.
const (
	FieldDate   = "date"
	FieldAmount = "amount"
	FieldTitle  = "title"
)

// Sort directions.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// titleCollator makes title ordering match what users expect from a
// dictionary rather than raw byte order. Collators are not safe for
// concurrent use, so Sort builds its own when it needs one.
func titleCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// FilterByCategory returns records whose category matches exactly.
// "all" or an empty selector passes everything through. Records with an
// empty category are treated as general before the comparison.
func FilterByCategory(records []core.Transaction, category string) []core.Transaction {
	sel := strings.ToLower(strings.TrimSpace(category))
	if sel == "" || sel == CategoryAll {
		out := make([]core.Transaction, len(records))
		copy(out, records)
		return out
	}

	out := make([]core.Transaction, 0, len(records))
	for _, tx := range records {
		cat := tx.Category
		if cat == "" {
			cat = core.CategoryGeneral
		}
		if string(cat) == sel {
			out = append(out, tx)
		}
	}
	return out
}

// Sort orders records by the given field and direction. Unknown fields
// fall back to date and unknown directions to ascending. The sort is
// stable, so records that compare equal keep their insertion order.
func Sort(records []core.Transaction, field, dir string) []core.Transaction {
	out := make([]core.Transaction, len(records))
	copy(out, records)

	desc := strings.ToLower(strings.TrimSpace(dir)) == DirDesc

	var less func(a, b core.Transaction) bool
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldAmount:
		less = func(a, b core.Transaction) bool { return a.Amount < b.Amount }
	case FieldTitle:
		coll := titleCollator()
		less = func(a, b core.Transaction) bool {
			return coll.CompareString(a.Title, b.Title) < 0
		}
	default:
		less = func(a, b core.Transaction) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

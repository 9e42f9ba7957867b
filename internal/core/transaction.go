package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	CategoryGeneral       Category = "general"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryHealthcare    Category = "healthcare"
	CategoryTravel        Category = "travel"
	CategoryEducation     Category = "education"
)

type (
	// Kind tells whether a transaction adds to or subtracts from the balance.
	// It is fixed at creation; edits never change it.
	Kind string

	Category string

	// Transaction is a single recorded income or expense entry.
	// ID and CreatedAt are assigned once and never change.
	Transaction struct {
		ID        string
		Title     string
		Amount    float64
		Category  Category
		Kind      Kind
		CreatedAt time.Time
	}
)

var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrNotFound      = errors.New("transaction not found")
)

// Categories lists the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryHealthcare,
		CategoryTravel,
		CategoryEducation,
	}
}

// NormalizeCategory maps the raw input to a member of the fixed set.
// Missing or unrecognized values fall back to the general category.
func NormalizeCategory(raw string) Category {
	c := Category(strings.TrimSpace(strings.ToLower(raw)))
	for _, known := range Categories() {
		if c == known {
			return known
		}
	}
	return CategoryGeneral
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.Amount <= 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return nil
}

// DayKey returns the UTC calendar day the transaction belongs to,
// formatted as YYYY-MM-DD. Used for daily bucketing.
func (t Transaction) DayKey() string {
	return t.CreatedAt.UTC().Format("2006-01-02")
}

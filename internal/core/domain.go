package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical stored date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// inputDateLayout also accepts months and days without a leading zero.
const inputDateLayout = "2006-1-2"

type (
	// Expense is one recorded entry. Identity is positional; two records with the
	// same date, description and amount are equal.
	Expense struct {
		Date        string // canonical YYYY-MM-DD
		Description string
		Amount      float64
	}
)

var (
	ErrEmptyField        = errors.New("all fields are required")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidAmount     = errors.New("amount must be a number")
	ErrNoSelection       = errors.New("no expense selected")
	ErrNoData            = errors.New("no expenses recorded")
)

// ParseDate validates a year-month-day string and returns it in canonical form,
// so "2024-1-5" is stored as "2024-01-05".
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("date: %w", ErrEmptyField)
	}
	t, err := time.Parse(inputDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t.Format(DateLayout), nil
}

// NewExpense validates raw text input and builds an Expense.
// Blank checks run before any parsing, so a record with an empty description
// and a bad date reports ErrEmptyField.
func NewExpense(dateText, description, amountText string) (Expense, error) {
	for _, f := range []struct{ name, value string }{
		{"date", dateText},
		{"description", description},
		{"amount", amountText},
	} {
		if strings.TrimSpace(f.value) == "" {
			return Expense{}, fmt.Errorf("%s: %w", f.name, ErrEmptyField)
		}
	}

	date, err := ParseDate(dateText)
	if err != nil {
		return Expense{}, err
	}
	amount, err := ParseAmount(amountText)
	if err != nil {
		return Expense{}, err
	}

	return Expense{Date: date, Description: description, Amount: amount}, nil
}

// Validate re-checks the invariants of an already built record.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Date) == "" || strings.TrimSpace(e.Description) == "" {
		return ErrEmptyField
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDateFormat
	}
	if !isFinite(e.Amount) {
		return ErrInvalidAmount
	}
	return nil
}

// Package ledger keeps the ordered list of expenses for one session.
package ledger

import (
	"expenses/internal/core"
)

// Ledger owns the expense records in insertion order.
// A Ledger is not safe for concurrent use; it belongs to a single caller.
type Ledger struct {
	items []core.Expense
}

func New() *Ledger {
	return &Ledger{}
}

// Add validates the raw input, appends the record and returns it.
// On error the ledger is left unchanged.
func (l *Ledger) Add(date, description, amount string) (core.Expense, error) {
	e, err := core.NewExpense(date, description, amount)
	if err != nil {
		return core.Expense{}, err
	}
	l.items = append(l.items, e)
	return e, nil
}

// Remove deletes the first record equal to e and reports whether one was found.
func (l *Ledger) Remove(e core.Expense) bool {
	for i, it := range l.items {
		if it == e {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAt deletes the record at position i as returned by List.
func (l *Ledger) RemoveAt(i int) (core.Expense, bool) {
	if i < 0 || i >= len(l.items) {
		return core.Expense{}, false
	}
	e := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return e, true
}

// List returns a copy of the records in insertion order.
func (l *Ledger) List() []core.Expense {
	return append([]core.Expense(nil), l.items...)
}

func (l *Ledger) IsEmpty() bool {
	return len(l.items) == 0
}

func (l *Ledger) Len() int {
	return len(l.items)
}

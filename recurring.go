package moneybook

import "fmt"

// DefaultRecurringCapacity bounds the recurring list of a Saving account.
const DefaultRecurringCapacity = 100

// RecurringTransaction is a template that periodically generates concrete
// Transactions in its owning Saving account. The period is one calendar
// month; Next is the date the template fires next.
type RecurringTransaction struct {
	Description string
	Amount      Money
	Category    string
	Kind        Kind
	Next        Date
}

// due reports whether the template has a pending period on 'today'.
func (r RecurringTransaction) due(today Date) bool { return !r.Next.After(today) }

// emit synthesizes the concrete transaction for the current period.
func (r RecurringTransaction) emit() Transaction {
	if r.Kind == Expenditure {
		return NewExpenditure(r.Description, r.Amount, r.Next, r.Category)
	}
	return NewDeposit(r.Description, r.Amount, r.Next, r.Category)
}

// RecurringList is the capacity-bounded collection of recurring templates of
// one Saving account. Indices are 1-based and positional, like Ledger's.
type RecurringList struct {
	entries  []RecurringTransaction
	capacity int
}

func newRecurringList(capacity int) RecurringList {
	if capacity <= 0 {
		capacity = DefaultRecurringCapacity
	}
	return RecurringList{capacity: capacity}
}

// Len returns the number of templates.
func (rl *RecurringList) Len() int { return len(rl.entries) }

// Add appends a template and returns its 1-based index. It fails with
// ErrCapacityExceeded when the list is full.
func (rl *RecurringList) Add(r RecurringTransaction) (int, error) {
	if len(rl.entries) >= rl.capacity {
		return 0, fmt.Errorf("recurring list holds at most %d entries: %w", rl.capacity, ErrCapacityExceeded)
	}
	rl.entries = append(rl.entries, r)
	return len(rl.entries), nil
}

// Get returns the template at the given 1-based index.
func (rl *RecurringList) Get(index int) (RecurringTransaction, error) {
	if index < 1 || index > len(rl.entries) {
		return RecurringTransaction{}, fmt.Errorf("recurring transaction %d: %w", index, ErrNotFound)
	}
	return rl.entries[index-1], nil
}

// Delete removes the template at the given 1-based index.
func (rl *RecurringList) Delete(index int) (RecurringTransaction, error) {
	r, err := rl.Get(index)
	if err != nil {
		return RecurringTransaction{}, err
	}
	rl.entries = append(rl.entries[:index-1], rl.entries[index:]...)
	return r, nil
}

// Edit overwrites the supplied fields of the template at the given index.
// The period anchor is not editable; it only moves when periods elapse.
func (rl *RecurringList) Edit(index int, description, category *string, amount *Money) (RecurringTransaction, error) {
	r, err := rl.Get(index)
	if err != nil {
		return RecurringTransaction{}, err
	}
	if description != nil {
		r.Description = *description
	}
	if category != nil {
		r.Category = *category
	}
	if amount != nil {
		r.Amount = *amount
	}
	rl.entries[index-1] = r
	return r, nil
}

// List returns all templates in insertion order with 1-based indices. It
// fails with ErrEmptyList when there are none.
func (rl *RecurringList) List() ([]RecurringTransaction, error) {
	if len(rl.entries) == 0 {
		return nil, fmt.Errorf("no recurring transactions: %w", ErrEmptyList)
	}
	out := make([]RecurringTransaction, len(rl.entries))
	copy(out, rl.entries)
	return out, nil
}

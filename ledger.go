package moneybook

import (
	"fmt"
	"iter"
	"strings"
)

// Ledger is the ordered collection of Transaction records of one account or
// card. Entries keep their insertion order; display indices are 1-based and
// shift down when an earlier entry is deleted, so callers must not cache
// them across mutations.
type Ledger struct {
	entries []Transaction
}

// Len returns the number of entries in the ledger.
func (l *Ledger) Len() int { return len(l.entries) }

// Add appends a transaction and returns its 1-based display index.
func (l *Ledger) Add(tx Transaction) int {
	l.entries = append(l.entries, tx)
	return len(l.entries)
}

// Get returns the entry at the given 1-based display index.
func (l *Ledger) Get(index int) (Transaction, error) {
	if index < 1 || index > len(l.entries) {
		return Transaction{}, fmt.Errorf("transaction %d: %w", index, ErrNotFound)
	}
	return l.entries[index-1], nil
}

// Delete removes the entry at the given 1-based display index and returns
// it. All later entries shift down by one.
func (l *Ledger) Delete(index int) (Transaction, error) {
	tx, err := l.Get(index)
	if err != nil {
		return Transaction{}, err
	}
	l.entries = append(l.entries[:index-1], l.entries[index:]...)
	return tx, nil
}

// Edit overwrites the supplied fields of the entry at the given index and
// returns the previous and new values.
func (l *Ledger) Edit(index int, patch TransactionPatch) (old, edited Transaction, err error) {
	old, err = l.Get(index)
	if err != nil {
		return Transaction{}, Transaction{}, err
	}
	edited = patch.apply(old)
	l.entries[index-1] = edited
	return old, edited, nil
}

// Listed pairs an entry with its current display index.
type Listed struct {
	Index int
	Tx    Transaction
}

// ListLast returns up to max entries of the requested kind, most recent
// first. It fails with ErrEmptyList when nothing matches.
func (l *Ledger) ListLast(max int, kind Kind) ([]Listed, error) {
	var out []Listed
	for i := len(l.entries) - 1; i >= 0 && len(out) < max; i-- {
		if l.entries[i].Kind == kind {
			out = append(out, Listed{Index: i + 1, Tx: l.entries[i]})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no %s entries: %w", kind, ErrEmptyList)
	}
	return out, nil
}

// Find returns a lazy sequence of the entries matching all the supplied
// criteria, in ledger order with their display indices. A zero range means
// no date filter; empty substrings match everything. An empty result is not
// an error.
func (l *Ledger) Find(r Range, description, category string) iter.Seq2[int, Transaction] {
	description = strings.ToLower(description)
	category = strings.ToLower(category)
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.entries {
			if !r.IsZero() && !r.Contains(tx.Date) {
				continue
			}
			if description != "" && !strings.Contains(strings.ToLower(tx.Description), description) {
				continue
			}
			if category != "" && !strings.Contains(strings.ToLower(tx.Category), category) {
				continue
			}
			if !yield(i+1, tx) {
				return
			}
		}
	}
}

// All returns an iterator over every entry with its display index.
func (l *Ledger) All() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.entries {
			if !yield(i+1, tx) {
				return
			}
		}
	}
}

// SumKind returns the total amount of all entries of the given kind.
func (l *Ledger) SumKind(kind Kind) Money {
	var total Money
	for _, tx := range l.entries {
		if tx.Kind == kind {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// SumMonth returns the total amount of entries of the given kind dated
// within the given bill month.
func (l *Ledger) SumMonth(month YearMonth, kind Kind) Money {
	var total Money
	for _, tx := range l.entries {
		if tx.Kind == kind && month.Contains(tx.Date) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// takeMonth removes and returns all entries dated within the given bill
// month, preserving their relative order.
func (l *Ledger) takeMonth(month YearMonth) []Transaction {
	var taken []Transaction
	kept := l.entries[:0]
	for _, tx := range l.entries {
		if month.Contains(tx.Date) {
			taken = append(taken, tx)
		} else {
			kept = append(kept, tx)
		}
	}
	l.entries = kept
	return taken
}

// append adds entries without the bookkeeping of Add. Used by the month
// transfer between a card's unpaid and paid ledgers and by the import path.
func (l *Ledger) append(txs ...Transaction) {
	l.entries = append(l.entries, txs...)
}

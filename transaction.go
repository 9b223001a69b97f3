package moneybook

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes the two monetary entry kinds of a ledger.
type Kind int

const (
	// Expenditure is money leaving the account (or charged to a card).
	Expenditure Kind = iota
	// Deposit is money entering the account.
	Deposit
)

func (k Kind) String() string {
	switch k {
	case Expenditure:
		return "expenditure"
	case Deposit:
		return "deposit"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "expenditure":
		return Expenditure, nil
	case "deposit":
		return Deposit, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// Transaction is a single monetary entry in a ledger. The ID is a stable
// opaque handle assigned at creation; display indices are positional and
// recomputed after every mutation.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Amount      Money
	Date        Date
	Category    string
	Kind        Kind
}

// NewExpenditure creates a new expenditure entry.
func NewExpenditure(description string, amount Money, on Date, category string) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Description: description,
		Amount:      amount,
		Date:        on,
		Category:    category,
		Kind:        Expenditure,
	}
}

// NewDeposit creates a new deposit entry.
func NewDeposit(description string, amount Money, on Date, category string) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Description: description,
		Amount:      amount,
		Date:        on,
		Category:    category,
		Kind:        Deposit,
	}
}

// Signed returns the amount with the sign of its effect on a balance:
// positive for deposits, negative for expenditures.
func (t Transaction) Signed() Money {
	if t.Kind == Expenditure {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionPatch carries the optional fields of a transaction edit.
// Nil fields are left untouched; the kind of an entry never changes.
type TransactionPatch struct {
	Description *string
	Amount      *Money
	Date        *Date
	Category    *string
}

func (p TransactionPatch) apply(t Transaction) Transaction {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	return t
}

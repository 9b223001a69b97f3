package moneybook

import (
	"errors"
	"fmt"
)

// Variant is the closed set of bank account variants.
type Variant int

const (
	// Saving is a bank account with an income and a recurring list.
	Saving Variant = iota
	// Investment is a bank account holding bonds.
	Investment
)

func (v Variant) String() string {
	switch v {
	case Saving:
		return "saving"
	case Investment:
		return "investment"
	default:
		return "unknown"
	}
}

// ParseVariant parses a string into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "saving":
		return Saving, nil
	case "investment":
		return Investment, nil
	default:
		return 0, fmt.Errorf("unknown account variant: %q", s)
	}
}

// Account is a bank account. The balance is the authoritative running
// total: at all times it equals the balance at creation plus all deposits
// minus all expenditures in the ledger.
type Account struct {
	Name    string
	Variant Variant
	Balance Money
	Income  Money // Saving only

	ledger    Ledger
	recurring RecurringList // Saving only
	bonds     BondLedger    // Investment only
}

// NewSaving creates a Saving account with the given starting balance and
// monthly income.
func NewSaving(name string, balance, income Money) *Account {
	return &Account{
		Name:      name,
		Variant:   Saving,
		Balance:   balance,
		Income:    income,
		recurring: newRecurringList(recurringCapacity),
	}
}

// NewInvestment creates an Investment account with the given starting
// balance.
func NewInvestment(name string, balance Money) *Account {
	return &Account{
		Name:    name,
		Variant: Investment,
		Balance: balance,
		bonds:   newBondLedger(bondCapacity),
	}
}

// Ledger exposes the account's transaction list for read-only iteration.
func (a *Account) Ledger() *Ledger { return &a.ledger }

// AddExpenditure records an expenditure and deducts it from the balance.
// It fails with ErrInsufficientFunds when the balance cannot cover it.
func (a *Account) AddExpenditure(tx Transaction) (int, error) {
	if a.Balance.LessThan(tx.Amount) {
		return 0, fmt.Errorf("account %q balance is %s: %w", a.Name, a.Balance, ErrInsufficientFunds)
	}
	a.Balance = a.Balance.Sub(tx.Amount)
	return a.ledger.Add(tx), nil
}

// AddDeposit records a deposit and adds it to the balance.
func (a *Account) AddDeposit(tx Transaction) int {
	a.Balance = a.Balance.Add(tx.Amount)
	return a.ledger.Add(tx)
}

// DeleteTransaction removes the entry at the given display index and
// reverses its effect on the balance. Deleting a deposit the balance cannot
// give back fails with ErrInsufficientFunds.
func (a *Account) DeleteTransaction(index int) (Transaction, error) {
	tx, err := a.ledger.Get(index)
	if err != nil {
		return Transaction{}, err
	}
	if tx.Kind == Deposit && a.Balance.LessThan(tx.Amount) {
		return Transaction{}, fmt.Errorf("removing deposit of %s would overdraw account %q: %w",
			tx.Amount, a.Name, ErrInsufficientFunds)
	}
	if _, err := a.ledger.Delete(index); err != nil {
		return Transaction{}, err
	}
	a.Balance = a.Balance.Sub(tx.Signed())
	return tx, nil
}

// EditTransaction overwrites the supplied fields of the entry at the given
// display index, keeping the balance consistent with the new amount.
func (a *Account) EditTransaction(index int, patch TransactionPatch) (Transaction, error) {
	old, err := a.ledger.Get(index)
	if err != nil {
		return Transaction{}, err
	}
	edited := patch.apply(old)
	balance := a.Balance.Sub(old.Signed()).Add(edited.Signed())
	if balance.IsNegative() {
		return Transaction{}, fmt.Errorf("edit would overdraw account %q: %w", a.Name, ErrInsufficientFunds)
	}
	if _, _, err := a.ledger.Edit(index, patch); err != nil {
		return Transaction{}, err
	}
	a.Balance = balance
	return edited, nil
}

// importTransaction replays a persisted entry into the ledger without
// touching the balance: the persisted balance already includes it.
func (a *Account) importTransaction(tx Transaction) { a.ledger.append(tx) }

// Recurring exposes the account's recurring list. It fails with ErrNotFound
// on accounts that do not carry one.
func (a *Account) Recurring() (*RecurringList, error) {
	if a.Variant != Saving {
		return nil, fmt.Errorf("account %q has no recurring transactions: %w", a.Name, ErrNotFound)
	}
	return &a.recurring, nil
}

// Bonds exposes the account's bond holding. It fails with ErrNotFound on
// accounts that do not hold bonds.
func (a *Account) Bonds() (*BondLedger, error) {
	if a.Variant != Investment {
		return nil, fmt.Errorf("account %q holds no bonds: %w", a.Name, ErrNotFound)
	}
	return &a.bonds, nil
}

// advanceRecurring applies every whole period elapsed up to 'today' for
// each recurring template: one concrete transaction per period, then the
// marker moves one month forward. Calling it twice with the same date is a
// no-op. A template whose expenditure the balance cannot cover stops
// advancing and reports the failure; other templates continue.
func (a *Account) advanceRecurring(today Date) error {
	if a.Variant != Saving {
		return nil
	}
	var errs error
	for i := range a.recurring.entries {
		r := &a.recurring.entries[i]
		for r.due(today) {
			tx := r.emit()
			if tx.Kind == Expenditure {
				if _, err := a.AddExpenditure(tx); err != nil {
					errs = errors.Join(errs, fmt.Errorf("recurring %q on %s: %w", r.Description, r.Next, err))
					break
				}
			} else {
				a.AddDeposit(tx)
			}
			r.Next = r.Next.AddMonth(1)
		}
	}
	return errs
}

package moneybook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Card is a credit card with two ledgers partitioned by bill-payment
// state. The remaining limit always equals the limit minus the sum of
// unpaid expenditures; paid entries do not consume credit.
type Card struct {
	Name      string
	Limit     Money
	Remaining Money
	Rebate    decimal.Decimal // monthly rebate in percent

	unpaid Ledger
	paid   Ledger
}

// NewCard creates a card with an untouched limit.
func NewCard(name string, limit Money, rebate decimal.Decimal) *Card {
	return &Card{Name: name, Limit: limit, Remaining: limit, Rebate: rebate}
}

// Unpaid exposes the ledger of expenditures not yet settled by a bill.
func (c *Card) Unpaid() *Ledger { return &c.unpaid }

// Paid exposes the ledger of expenditures settled by a past bill.
func (c *Card) Paid() *Ledger { return &c.paid }

// spend returns the sum of unpaid expenditures.
func (c *Card) spend() Money { return c.unpaid.SumKind(Expenditure) }

// AddExpenditure charges an expenditure to the card. It fails with
// ErrInsufficientFunds when the remaining limit cannot cover it.
func (c *Card) AddExpenditure(tx Transaction) (int, error) {
	if c.Remaining.LessThan(tx.Amount) {
		return 0, fmt.Errorf("card %q remaining limit is %s: %w", c.Name, c.Remaining, ErrInsufficientFunds)
	}
	c.Remaining = c.Remaining.Sub(tx.Amount)
	return c.unpaid.Add(tx), nil
}

// DeleteExpenditure removes the unpaid entry at the given display index and
// releases its amount back to the remaining limit.
func (c *Card) DeleteExpenditure(index int) (Transaction, error) {
	tx, err := c.unpaid.Delete(index)
	if err != nil {
		return Transaction{}, err
	}
	c.Remaining = c.Remaining.Add(tx.Amount)
	return tx, nil
}

// EditExpenditure overwrites the supplied fields of the unpaid entry at the
// given display index, keeping the remaining limit consistent.
func (c *Card) EditExpenditure(index int, patch TransactionPatch) (Transaction, error) {
	old, err := c.unpaid.Get(index)
	if err != nil {
		return Transaction{}, err
	}
	edited := patch.apply(old)
	remaining := c.Remaining.Add(old.Amount).Sub(edited.Amount)
	if remaining.IsNegative() {
		return Transaction{}, fmt.Errorf("card %q limit is %s: %w", c.Name, c.Limit, ErrInsufficientFunds)
	}
	if _, _, err := c.unpaid.Edit(index, patch); err != nil {
		return Transaction{}, err
	}
	c.Remaining = remaining
	return edited, nil
}

// SetLimit changes the credit limit and recomputes the remaining limit.
// It fails with ErrLimitBelowSpend when the new limit is less than the
// current unpaid spend.
func (c *Card) SetLimit(limit Money) error {
	spend := c.spend()
	if limit.LessThan(spend) {
		return fmt.Errorf("card %q has %s unpaid: %w", c.Name, spend, ErrLimitBelowSpend)
	}
	c.Limit = limit
	c.Remaining = limit.Sub(spend)
	return nil
}

// UnpaidBillAmount sums the unpaid expenditures dated within the bill month.
func (c *Card) UnpaidBillAmount(month YearMonth) Money {
	return c.unpaid.SumMonth(month, Expenditure)
}

// PaidBillAmount sums the already-settled expenditures of the bill month.
func (c *Card) PaidBillAmount(month YearMonth) Money {
	return c.paid.SumMonth(month, Expenditure)
}

// RebateFor returns the deposit earned when the given bill amount is paid.
func (c *Card) RebateFor(bill Money) Money { return bill.MulRate(c.Rebate) }

// payMonth transitions every unpaid expenditure of the bill month to paid,
// releasing the settled amount back to the remaining limit.
func (c *Card) payMonth(month YearMonth) {
	moved := c.unpaid.takeMonth(month)
	c.paid.append(moved...)
	c.Remaining = c.Limit.Sub(c.spend())
}

// unpayMonth reverses payMonth for the bill month: entries return to the
// unpaid ledger and consume credit again.
func (c *Card) unpayMonth(month YearMonth) error {
	moved := c.paid.takeMonth(month)
	var sum Money
	for _, tx := range moved {
		if tx.Kind == Expenditure {
			sum = sum.Add(tx.Amount)
		}
	}
	if c.Remaining.LessThan(sum) {
		// put them back, the credit line cannot absorb the reversal
		c.paid.append(moved...)
		return fmt.Errorf("card %q remaining limit is %s: %w", c.Name, c.Remaining, ErrInsufficientFunds)
	}
	c.unpaid.append(moved...)
	c.Remaining = c.Limit.Sub(c.spend())
	return nil
}

// importUnpaid and importPaid replay persisted entries into the card's
// ledgers. The remaining limit is recomputed from the unpaid spend.
func (c *Card) importUnpaid(tx Transaction) {
	c.unpaid.append(tx)
	c.Remaining = c.Limit.Sub(c.spend())
}

func (c *Card) importPaid(tx Transaction) { c.paid.append(tx) }

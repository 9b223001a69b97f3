package moneybook

import (
	"errors"
	"fmt"
	"iter"
	"log"

	"github.com/shopspring/decimal"
)

// Categories and descriptions synthesized by the orchestrator.
const (
	transferCategory = "Fund Transfer"
	depositCategory  = "Deposit"
	bondCategory     = "Bond"
	cardBillCategory = "Credit Card Bill"
)

// Profile is the root aggregate: it owns the account, card, and goal
// registries and dispatches every operation into them. Operations return a
// payload or a typed error for the caller to render; nothing here prints.
//
// Profile is not safe for concurrent use. A caller exposing it as a
// service must serialize access to the whole aggregate.
type Profile struct {
	Username string
	Accounts *AccountList
	Cards    *CardList
	Goals    *GoalList

	clock Clock
	store *Store
}

// NewProfile creates an empty profile. A nil clock falls back to the
// system clock.
func NewProfile(username string, clock Clock) *Profile {
	if clock == nil {
		clock = SystemClock
	}
	return &Profile{
		Username: username,
		Accounts: NewAccountList(),
		Cards:    NewCardList(),
		Goals:    NewGoalList(),
		clock:    clock,
	}
}

// SetStore attaches the flat-file store the profile saves itself to after
// every mutation. A nil store keeps the profile memory-only.
func (p *Profile) SetStore(s *Store) { p.store = s }

// save persists the whole profile. A write failure is a warning: the
// in-memory state stays authoritative for the rest of the session.
func (p *Profile) save() {
	if p.store == nil {
		return
	}
	if err := p.store.Save(p); err != nil {
		log.Printf("warning: could not save profile, changes are kept in memory only: %v", err)
	}
}

// Rename changes the profile username. The current name must match and the
// new name must differ.
func (p *Profile) Rename(name, newName string) error {
	if name != p.Username {
		return fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
	if newName == p.Username {
		return fmt.Errorf("profile is already named %q: %w", newName, ErrDuplicateName)
	}
	p.Username = newName
	p.save()
	return nil
}

// --- Accounts ---

// AddAccount registers a new bank account.
func (p *Profile) AddAccount(a *Account) error {
	if err := p.Accounts.Add(a); err != nil {
		return err
	}
	p.save()
	return nil
}

// DeleteAccount removes the named account. When a Saving account goes
// away, every goal tied to it is untied rather than left dangling.
func (p *Profile) DeleteAccount(name string) (*Account, error) {
	a, err := p.Accounts.Delete(name)
	if err != nil {
		return nil, err
	}
	if a.Variant == Saving {
		p.Goals.ClearTies(a.Name)
	}
	p.save()
	return a, nil
}

// AccountPatch carries the optional fields of an account edit. Income can
// only be set on Saving accounts.
type AccountPatch struct {
	NewName *string
	Balance *Money
	Income  *Money
}

// EditAccount applies the supplied fields to the named account.
func (p *Profile) EditAccount(name string, patch AccountPatch) (*Account, error) {
	a, err := p.Accounts.Get(name)
	if err != nil {
		return nil, err
	}
	if patch.Income != nil && a.Variant != Saving {
		return nil, fmt.Errorf("account %q has no income: %w", name, ErrNotFound)
	}
	if patch.NewName != nil {
		if err := p.Accounts.Rename(name, *patch.NewName); err != nil {
			return nil, err
		}
	}
	if patch.Balance != nil {
		a.Balance = *patch.Balance
	}
	if patch.Income != nil {
		a.Income = *patch.Income
	}
	p.save()
	return a, nil
}

// --- Account transactions ---

// AddExpenditure records an expenditure against the named account and
// returns its display index.
func (p *Profile) AddExpenditure(account, description string, amount Money, on Date, category string) (int, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return 0, err
	}
	index, err := a.AddExpenditure(NewExpenditure(description, amount, on, category))
	if err != nil {
		return 0, err
	}
	p.save()
	return index, nil
}

// AddDeposit records a deposit into the named account and returns its
// display index.
func (p *Profile) AddDeposit(account, description string, amount Money, on Date, category string) (int, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return 0, err
	}
	index := a.AddDeposit(NewDeposit(description, amount, on, category))
	p.save()
	return index, nil
}

// DeleteTransaction removes the entry at the given display index from the
// named account's ledger, reversing its balance effect.
func (p *Profile) DeleteTransaction(account string, index int) (Transaction, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return Transaction{}, err
	}
	tx, err := a.DeleteTransaction(index)
	if err != nil {
		return Transaction{}, err
	}
	p.save()
	return tx, nil
}

// EditTransaction overwrites the supplied fields of an account ledger entry.
func (p *Profile) EditTransaction(account string, index int, patch TransactionPatch) (Transaction, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return Transaction{}, err
	}
	tx, err := a.EditTransaction(index, patch)
	if err != nil {
		return Transaction{}, err
	}
	p.save()
	return tx, nil
}

// ListTransactions returns up to max entries of the requested kind from the
// named account, most recent first.
func (p *Profile) ListTransactions(account string, max int, kind Kind) ([]Listed, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return nil, err
	}
	return a.Ledger().ListLast(max, kind)
}

// FindTransactions returns a lazy sequence over the named account's entries
// matching the criteria, in ledger order.
func (p *Profile) FindTransactions(account string, r Range, description, category string) (iter.Seq2[int, Transaction], error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return nil, err
	}
	return a.Ledger().Find(r, description, category), nil
}

// --- Cards ---

// AddCard registers a new credit card.
func (p *Profile) AddCard(c *Card) error {
	if err := p.Cards.Add(c); err != nil {
		return err
	}
	p.save()
	return nil
}

// DeleteCard removes the named card.
func (p *Profile) DeleteCard(name string) (*Card, error) {
	c, err := p.Cards.Delete(name)
	if err != nil {
		return nil, err
	}
	p.save()
	return c, nil
}

// CardPatch carries the optional fields of a card edit.
type CardPatch struct {
	NewName *string
	Limit   *Money
	Rebate  *decimal.Decimal
}

// EditCard applies the supplied fields to the named card, all of them or
// none. A limit change recomputes the remaining limit and fails with
// ErrLimitBelowSpend when the new limit does not cover the current unpaid
// spend.
func (p *Profile) EditCard(name string, patch CardPatch) (*Card, error) {
	c, err := p.Cards.Get(name)
	if err != nil {
		return nil, err
	}
	// check the rename target up front so a failure leaves the card
	// untouched even when a limit change was also requested
	if patch.NewName != nil && *patch.NewName != name {
		if _, err := p.Cards.Get(*patch.NewName); err == nil {
			return nil, fmt.Errorf("card %q: %w", *patch.NewName, ErrDuplicateName)
		}
	}
	if patch.Limit != nil {
		if err := c.SetLimit(*patch.Limit); err != nil {
			return nil, err
		}
	}
	if patch.NewName != nil {
		if err := p.Cards.Rename(name, *patch.NewName); err != nil {
			return nil, err
		}
	}
	if patch.Rebate != nil {
		c.Rebate = *patch.Rebate
	}
	p.save()
	return c, nil
}

// AddCardExpenditure charges an expenditure to the named card.
func (p *Profile) AddCardExpenditure(card, description string, amount Money, on Date, category string) (int, error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return 0, err
	}
	index, err := c.AddExpenditure(NewExpenditure(description, amount, on, category))
	if err != nil {
		return 0, err
	}
	p.save()
	return index, nil
}

// DeleteCardExpenditure removes an unpaid card entry by display index.
func (p *Profile) DeleteCardExpenditure(card string, index int) (Transaction, error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return Transaction{}, err
	}
	tx, err := c.DeleteExpenditure(index)
	if err != nil {
		return Transaction{}, err
	}
	p.save()
	return tx, nil
}

// EditCardExpenditure overwrites the supplied fields of an unpaid card
// entry.
func (p *Profile) EditCardExpenditure(card string, index int, patch TransactionPatch) (Transaction, error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return Transaction{}, err
	}
	tx, err := c.EditExpenditure(index, patch)
	if err != nil {
		return Transaction{}, err
	}
	p.save()
	return tx, nil
}

// ListCardTransactions returns up to max unpaid expenditures of the named
// card, most recent first.
func (p *Profile) ListCardTransactions(card string, max int) ([]Listed, error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return nil, err
	}
	return c.Unpaid().ListLast(max, Expenditure)
}

// FindCardTransactions returns two lazy sequences over the named card's
// unpaid and paid entries matching the criteria.
func (p *Profile) FindCardTransactions(card string, r Range, description, category string) (unpaid, paid iter.Seq2[int, Transaction], err error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return nil, nil, err
	}
	return c.Unpaid().Find(r, description, category), c.Paid().Find(r, description, category), nil
}

// --- Transfer ---

// Transfer moves funds between two bank accounts as one logical operation:
// an expenditure leg on 'from' and a deposit leg on 'to'. Both endpoints
// are validated before either is mutated, so a failure never leaves a
// single leg applied.
func (p *Profile) Transfer(from, to string, amount Money, on Date) error {
	if from == to {
		return fmt.Errorf("cannot transfer from account %q to itself", from)
	}
	src, err := p.Accounts.Get(from)
	if err != nil {
		return err
	}
	dst, err := p.Accounts.Get(to)
	if err != nil {
		return err
	}
	if src.Balance.LessThan(amount) {
		return fmt.Errorf("account %q balance is %s: %w", from, src.Balance, ErrInsufficientFunds)
	}
	if _, err := src.AddExpenditure(NewExpenditure("Fund Transfer to "+to, amount, on, transferCategory)); err != nil {
		return err
	}
	dst.AddDeposit(NewDeposit("Fund Received from "+from, amount, on, depositCategory))
	p.save()
	return nil
}

// --- Card bill ---

// BillAmount returns the unpaid card expenditure total for the bill month.
func (p *Profile) BillAmount(card string, month YearMonth) (Money, error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return Money{}, err
	}
	return c.UnpaidBillAmount(month), nil
}

// PaidBillAmount returns the already-settled total for the bill month.
func (p *Profile) PaidBillAmount(card string, month YearMonth) (Money, error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return Money{}, err
	}
	return c.PaidBillAmount(month), nil
}

// PayBill settles a card's bill month from a bank account: the unpaid total
// is charged to the account, the card's monthly rebate is deposited back,
// and every unpaid expenditure of that month becomes paid. The bank charge
// is validated before anything moves; InsufficientFunds from the bank side
// propagates with no state changed.
func (p *Profile) PayBill(card, bank string, month YearMonth) (Money, error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return Money{}, err
	}
	a, err := p.Accounts.Get(bank)
	if err != nil {
		return Money{}, err
	}
	bill := c.UnpaidBillAmount(month)
	if bill.IsZero() {
		return Money{}, fmt.Errorf("card %q has no unpaid expenditures in %s: %w", card, month, ErrEmptyList)
	}
	today := p.clock.Today()
	label := fmt.Sprintf("%s %s", card, month)
	charge := NewExpenditure("Payment for Credit Card Bill - "+label, bill, today, cardBillCategory)
	if _, err := a.AddExpenditure(charge); err != nil {
		return Money{}, err
	}
	rebate := c.RebateFor(bill)
	a.AddDeposit(NewDeposit("Credit Card Rebates - "+label, rebate, today, depositCategory))
	c.payMonth(month)
	p.save()
	return bill, nil
}

// UnpayBill reverses the paid state of a card's bill month: every paid
// expenditure of that month becomes unpaid again and consumes credit. The
// bank-side charge and rebate entries are deliberately left in place; the
// caller deletes them explicitly if the payment itself was wrong.
func (p *Profile) UnpayBill(card string, month YearMonth) (Money, error) {
	c, err := p.Cards.Get(card)
	if err != nil {
		return Money{}, err
	}
	paid := c.PaidBillAmount(month)
	if paid.IsZero() {
		return Money{}, fmt.Errorf("card %q has no paid expenditures in %s: %w", card, month, ErrEmptyList)
	}
	if err := c.unpayMonth(month); err != nil {
		return Money{}, err
	}
	p.save()
	return paid, nil
}

// --- Bonds ---

// AddBond purchases a bond within the named Investment account: the bond is
// added to the holding and its amount is charged to the account as a bond
// expenditure. Capacity, duplicate, and funds are all checked before either
// mutation.
func (p *Profile) AddBond(account string, b Bond) error {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return err
	}
	bonds, err := a.Bonds()
	if err != nil {
		return err
	}
	if bonds.IsFull() {
		return fmt.Errorf("bond holding is limited to %d bonds: %w", bonds.capacity, ErrCapacityExceeded)
	}
	if _, err := bonds.Get(b.Name); err == nil {
		return fmt.Errorf("bond %q: %w", b.Name, ErrDuplicateName)
	}
	if _, err := a.AddExpenditure(NewExpenditure(b.Name, b.Amount, b.PurchaseDate, bondCategory)); err != nil {
		return err
	}
	if err := bonds.Add(b); err != nil {
		return err
	}
	p.save()
	return nil
}

// EditBond changes the rate or the term of a held bond.
func (p *Profile) EditBond(account, bond string, rate *decimal.Decimal, termYears *int) (Bond, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return Bond{}, err
	}
	bonds, err := a.Bonds()
	if err != nil {
		return Bond{}, err
	}
	b, err := bonds.Edit(bond, rate, termYears)
	if err != nil {
		return Bond{}, err
	}
	p.save()
	return b, nil
}

// DeleteBond sells a held bond: it leaves the holding and its amount flows
// back into the account as a bond deposit.
func (p *Profile) DeleteBond(account, bond string) (Bond, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return Bond{}, err
	}
	bonds, err := a.Bonds()
	if err != nil {
		return Bond{}, err
	}
	b, err := bonds.Delete(bond)
	if err != nil {
		return Bond{}, err
	}
	a.AddDeposit(NewDeposit(b.Name, b.Amount, p.clock.Today(), bondCategory))
	p.save()
	return b, nil
}

// ListBonds returns up to max bonds of the named Investment account.
func (p *Profile) ListBonds(account string, max int) ([]Bond, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return nil, err
	}
	bonds, err := a.Bonds()
	if err != nil {
		return nil, err
	}
	return bonds.List(max)
}

// --- Recurring ---

// AddRecurring registers a recurring template on the named Saving account,
// anchored to fire first on the next update at or after 'first'.
func (p *Profile) AddRecurring(account string, r RecurringTransaction) (int, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return 0, err
	}
	rl, err := a.Recurring()
	if err != nil {
		return 0, err
	}
	index, err := rl.Add(r)
	if err != nil {
		return 0, err
	}
	p.save()
	return index, nil
}

// DeleteRecurring removes the recurring template at the given index.
func (p *Profile) DeleteRecurring(account string, index int) (RecurringTransaction, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return RecurringTransaction{}, err
	}
	rl, err := a.Recurring()
	if err != nil {
		return RecurringTransaction{}, err
	}
	r, err := rl.Delete(index)
	if err != nil {
		return RecurringTransaction{}, err
	}
	p.save()
	return r, nil
}

// EditRecurring overwrites the supplied fields of a recurring template.
func (p *Profile) EditRecurring(account string, index int, description, category *string, amount *Money) (RecurringTransaction, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return RecurringTransaction{}, err
	}
	rl, err := a.Recurring()
	if err != nil {
		return RecurringTransaction{}, err
	}
	r, err := rl.Edit(index, description, category, amount)
	if err != nil {
		return RecurringTransaction{}, err
	}
	p.save()
	return r, nil
}

// ListRecurring returns the recurring templates of the named Saving
// account.
func (p *Profile) ListRecurring(account string) ([]RecurringTransaction, error) {
	a, err := p.Accounts.Get(account)
	if err != nil {
		return nil, err
	}
	rl, err := a.Recurring()
	if err != nil {
		return nil, err
	}
	return rl.List()
}

// Update runs the recurring-transaction tick across every Saving account:
// each template emits one concrete transaction per whole period elapsed up
// to 'now'. Running it again with the same date generates nothing new.
func (p *Profile) Update(now Date) error {
	var errs error
	for _, a := range p.Accounts.All() {
		if err := a.advanceRecurring(now); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	p.save()
	return errs
}

// --- Goals ---

// AddGoal registers a savings goal. A tied account must exist and be a
// Saving account.
func (p *Profile) AddGoal(g *Goal) error {
	if g.TiedAccount != "" {
		if err := p.checkSaving(g.TiedAccount); err != nil {
			return err
		}
	}
	if err := p.Goals.Add(g); err != nil {
		return err
	}
	p.save()
	return nil
}

// GoalPatch carries the optional fields of a goal edit. A TiedAccount of
// "" unties the goal.
type GoalPatch struct {
	NewName     *string
	Target      *Money
	TargetDate  *Date
	TiedAccount *string
}

// EditGoal applies the supplied fields to the named goal.
func (p *Profile) EditGoal(name string, patch GoalPatch) (*Goal, error) {
	g, err := p.Goals.Get(name)
	if err != nil {
		return nil, err
	}
	if patch.TiedAccount != nil && *patch.TiedAccount != "" {
		if err := p.checkSaving(*patch.TiedAccount); err != nil {
			return nil, err
		}
	}
	if patch.NewName != nil {
		if err := p.Goals.Rename(name, *patch.NewName); err != nil {
			return nil, err
		}
	}
	if patch.Target != nil {
		g.Target = *patch.Target
	}
	if patch.TargetDate != nil {
		g.TargetDate = *patch.TargetDate
	}
	if patch.TiedAccount != nil {
		g.TiedAccount = *patch.TiedAccount
	}
	p.save()
	return g, nil
}

// DeleteGoal removes the named goal.
func (p *Profile) DeleteGoal(name string) (*Goal, error) {
	g, err := p.Goals.Delete(name)
	if err != nil {
		return nil, err
	}
	p.save()
	return g, nil
}

// GoalProgress returns the tied Saving account's balance over the goal
// target, or false when the goal is untied.
func (p *Profile) GoalProgress(name string) (saved Money, tied bool, err error) {
	g, err := p.Goals.Get(name)
	if err != nil {
		return Money{}, false, err
	}
	if g.TiedAccount == "" {
		return Money{}, false, nil
	}
	a, err := p.Accounts.Get(g.TiedAccount)
	if err != nil {
		return Money{}, false, err
	}
	return a.Balance, true, nil
}

func (p *Profile) checkSaving(name string) error {
	a, err := p.Accounts.Get(name)
	if err != nil {
		return err
	}
	if a.Variant != Saving {
		return fmt.Errorf("account %q is not a saving account: %w", name, ErrNotFound)
	}
	return nil
}

package moneybook

import (
	"errors"
	"iter"
	"testing"

	"github.com/shopspring/decimal"
)

func testProfile(t *testing.T) *Profile {
	t.Helper()
	p := NewProfile("alice", FixedClock(MustParseDate("20/03/2025")))
	if err := p.AddAccount(NewSaving("DBS", M(1000), M(3000))); err != nil {
		t.Fatal(err)
	}
	if err := p.AddAccount(NewSaving("OCBC", M(200), M(0))); err != nil {
		t.Fatal(err)
	}
	if err := p.AddAccount(NewInvestment("Tiger", M(5000))); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestProfileRename(t *testing.T) {
	p := testProfile(t)
	if err := p.Rename("bob", "carol"); !errors.Is(err, ErrNotFound) {
		t.Errorf("wrong current name: want ErrNotFound, got %v", err)
	}
	if err := p.Rename("alice", "alice"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("same name: want ErrDuplicateName, got %v", err)
	}
	if err := p.Rename("alice", "carol"); err != nil {
		t.Fatal(err)
	}
	if p.Username != "carol" {
		t.Errorf("username %q", p.Username)
	}
}

func TestAccountRegistry(t *testing.T) {
	p := testProfile(t)
	if err := p.AddAccount(NewSaving("DBS", M(0), M(0))); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate: want ErrDuplicateName, got %v", err)
	}
	if _, err := p.Accounts.Get("UOB"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if _, err := p.DeleteAccount("OCBC"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.DeleteAccount("Tiger"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.DeleteAccount("DBS"); !errors.Is(err, ErrLastAccountProtected) {
		t.Errorf("last account: want ErrLastAccountProtected, got %v", err)
	}
	if p.Accounts.Len() != 1 {
		t.Errorf("len %d, want 1", p.Accounts.Len())
	}
}

func TestEditAccountIncomeGuard(t *testing.T) {
	p := testProfile(t)
	income := M(100)
	if _, err := p.EditAccount("Tiger", AccountPatch{Income: &income}); !errors.Is(err, ErrNotFound) {
		t.Errorf("income on investment: want ErrNotFound, got %v", err)
	}
	if _, err := p.EditAccount("DBS", AccountPatch{Income: &income}); err != nil {
		t.Fatal(err)
	}
	a, _ := p.Accounts.Get("DBS")
	if !a.Income.Equal(M(100)) {
		t.Errorf("income %s", a.Income)
	}
}

func TestTransfer(t *testing.T) {
	p := testProfile(t)
	on := MustParseDate("10/03/2025")

	if err := p.Transfer("DBS", "OCBC", M(300), on); err != nil {
		t.Fatal(err)
	}
	from, _ := p.Accounts.Get("DBS")
	to, _ := p.Accounts.Get("OCBC")
	if !from.Balance.Equal(M(700)) || !to.Balance.Equal(M(500)) {
		t.Errorf("balances %s / %s, want 700 / 500", from.Balance, to.Balance)
	}
	// total funds are conserved
	if !from.Balance.Add(to.Balance).Equal(M(1200)) {
		t.Error("transfer must conserve the total")
	}

	debit, _ := from.Ledger().Get(1)
	if debit.Description != "Fund Transfer to OCBC" || debit.Category != "Fund Transfer" || debit.Kind != Expenditure {
		t.Errorf("debit leg %q %q %s", debit.Description, debit.Category, debit.Kind)
	}
	credit, _ := to.Ledger().Get(1)
	if credit.Description != "Fund Received from DBS" || credit.Category != "Deposit" || credit.Kind != Deposit {
		t.Errorf("credit leg %q %q %s", credit.Description, credit.Category, credit.Kind)
	}
}

func TestTransferValidation(t *testing.T) {
	p := testProfile(t)
	on := MustParseDate("10/03/2025")

	if err := p.Transfer("DBS", "DBS", M(10), on); err == nil {
		t.Error("self transfer must fail")
	} else if errors.Is(err, ErrDuplicateName) || errors.Is(err, ErrNotFound) {
		t.Errorf("self transfer reported a registry error: %v", err)
	}
	if err := p.Transfer("DBS", "UOB", M(10), on); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing destination: want ErrNotFound, got %v", err)
	}
	if err := p.Transfer("OCBC", "DBS", M(10000), on); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("want ErrInsufficientFunds, got %v", err)
	}
	// a failed transfer must not leave a single leg applied
	from, _ := p.Accounts.Get("DBS")
	to, _ := p.Accounts.Get("OCBC")
	if from.Ledger().Len() != 0 || to.Ledger().Len() != 0 {
		t.Error("failed transfers left ledger entries behind")
	}
	if !from.Balance.Equal(M(1000)) || !to.Balance.Equal(M(200)) {
		t.Error("failed transfers changed balances")
	}
}

func TestEditCardAllOrNothing(t *testing.T) {
	p := testProfile(t)
	visa := NewCard("Visa", M(1000), decimal.Zero)
	p.AddCard(visa)
	p.AddCard(NewCard("Amex", M(500), decimal.Zero))

	// a rename clashing with an existing card must not apply the limit
	name := "Amex"
	limit := M(2000)
	if _, err := p.EditCard("Visa", CardPatch{NewName: &name, Limit: &limit}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("want ErrDuplicateName, got %v", err)
	}
	if visa.Name != "Visa" || !visa.Limit.Equal(M(1000)) {
		t.Errorf("failed edit left card %q with limit %s", visa.Name, visa.Limit)
	}

	// renaming a card to its own name is fine
	same := "Visa"
	if _, err := p.EditCard("Visa", CardPatch{NewName: &same, Limit: &limit}); err != nil {
		t.Fatal(err)
	}
	if !visa.Limit.Equal(M(2000)) {
		t.Errorf("limit = %s, want 2000", visa.Limit)
	}
}

func TestPayBill(t *testing.T) {
	p := testProfile(t)
	card := NewCard("Visa", M(1000), decimal.NewFromInt(2))
	if err := p.AddCard(card); err != nil {
		t.Fatal(err)
	}
	p.AddCardExpenditure("Visa", "groceries", M(100), MustParseDate("05/03/2025"), "Food")
	p.AddCardExpenditure("Visa", "petrol", M(50), MustParseDate("20/03/2025"), "Transport")
	p.AddCardExpenditure("Visa", "dinner", M(40), MustParseDate("02/04/2025"), "Food")
	march := NewYearMonth(2025, 3)

	bill, err := p.PayBill("Visa", "DBS", march)
	if err != nil {
		t.Fatal(err)
	}
	if !bill.Equal(M(150)) {
		t.Fatalf("bill = %s, want 150", bill)
	}

	// bank side: charge of 150, rebate of 3 back
	bank, _ := p.Accounts.Get("DBS")
	if !bank.Balance.Equal(M(853)) {
		t.Errorf("bank balance = %s, want 853", bank.Balance)
	}
	charge, _ := bank.Ledger().Get(1)
	if charge.Description != "Payment for Credit Card Bill - Visa 2025-03" || charge.Category != "Credit Card Bill" {
		t.Errorf("charge %q %q", charge.Description, charge.Category)
	}
	rebate, _ := bank.Ledger().Get(2)
	if rebate.Description != "Credit Card Rebates - Visa 2025-03" || !rebate.Amount.Equal(M(3)) {
		t.Errorf("rebate %q %s", rebate.Description, rebate.Amount)
	}
	// charge and rebate are dated by the clock
	if charge.Date != MustParseDate("20/03/2025") {
		t.Errorf("charge dated %s", charge.Date)
	}

	// card side: march entries paid, april still unpaid
	if card.Unpaid().Len() != 1 || card.Paid().Len() != 2 {
		t.Errorf("%d unpaid, %d paid", card.Unpaid().Len(), card.Paid().Len())
	}
	if !card.Remaining.Equal(M(960)) {
		t.Errorf("remaining = %s, want 960", card.Remaining)
	}

	// paying the same month again finds nothing
	if _, err := p.PayBill("Visa", "DBS", march); !errors.Is(err, ErrEmptyList) {
		t.Errorf("second pay: want ErrEmptyList, got %v", err)
	}
}

func TestPayBillInsufficientFunds(t *testing.T) {
	p := testProfile(t)
	card := NewCard("Visa", M(1000), decimal.Zero)
	p.AddCard(card)
	p.AddCardExpenditure("Visa", "tv", M(900), MustParseDate("05/03/2025"), "Tech")

	if _, err := p.PayBill("Visa", "OCBC", NewYearMonth(2025, 3)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	// nothing moved on either side
	bank, _ := p.Accounts.Get("OCBC")
	if bank.Ledger().Len() != 0 || !bank.Balance.Equal(M(200)) {
		t.Error("failed payment touched the bank account")
	}
	if card.Unpaid().Len() != 1 || card.Paid().Len() != 0 {
		t.Error("failed payment touched the card")
	}
}

func TestUnpayBill(t *testing.T) {
	p := testProfile(t)
	card := NewCard("Visa", M(1000), decimal.NewFromInt(2))
	p.AddCard(card)
	p.AddCardExpenditure("Visa", "groceries", M(100), MustParseDate("05/03/2025"), "Food")
	march := NewYearMonth(2025, 3)
	if _, err := p.PayBill("Visa", "DBS", march); err != nil {
		t.Fatal(err)
	}

	amount, err := p.UnpayBill("Visa", march)
	if err != nil {
		t.Fatal(err)
	}
	if !amount.Equal(M(100)) {
		t.Errorf("reverted %s, want 100", amount)
	}
	if card.Unpaid().Len() != 1 || card.Paid().Len() != 0 {
		t.Errorf("%d unpaid, %d paid", card.Unpaid().Len(), card.Paid().Len())
	}
	// the bank-side charge and rebate entries stay in place
	bank, _ := p.Accounts.Get("DBS")
	if bank.Ledger().Len() != 2 {
		t.Errorf("bank ledger has %d entries, want 2", bank.Ledger().Len())
	}

	if _, err := p.UnpayBill("Visa", march); !errors.Is(err, ErrEmptyList) {
		t.Errorf("second unpay: want ErrEmptyList, got %v", err)
	}
}

func TestFindCardTransactions(t *testing.T) {
	p := testProfile(t)
	card := NewCard("Visa", M(1000), decimal.Zero)
	p.AddCard(card)
	p.AddCardExpenditure("Visa", "groceries", M(100), MustParseDate("05/03/2025"), "Food")
	p.AddCardExpenditure("Visa", "dinner", M(40), MustParseDate("02/04/2025"), "Food")
	if _, err := p.PayBill("Visa", "DBS", NewYearMonth(2025, 3)); err != nil {
		t.Fatal(err)
	}

	unpaid, paid, err := p.FindCardTransactions("Visa", Range{}, "", "food")
	if err != nil {
		t.Fatal(err)
	}
	count := func(found iter.Seq2[int, Transaction]) (n int) {
		for range found {
			n++
		}
		return n
	}
	if got := count(unpaid); got != 1 {
		t.Errorf("unpaid matches = %d, want 1", got)
	}
	if got := count(paid); got != 1 {
		t.Errorf("paid matches = %d, want 1", got)
	}

	if _, _, err := p.FindCardTransactions("Amex", Range{}, "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown card: want ErrNotFound, got %v", err)
	}
}

func TestProfileUpdate(t *testing.T) {
	p := testProfile(t)
	p.AddRecurring("DBS", RecurringTransaction{
		Description: "netflix", Amount: M(10), Kind: Expenditure, Next: MustParseDate("01/01/2025"),
	})
	p.AddRecurring("OCBC", RecurringTransaction{
		Description: "interest", Amount: M(5), Kind: Deposit, Next: MustParseDate("01/02/2025"),
	})

	if err := p.Update(MustParseDate("15/03/2025")); err != nil {
		t.Fatal(err)
	}
	dbs, _ := p.Accounts.Get("DBS")
	ocbc, _ := p.Accounts.Get("OCBC")
	if dbs.Ledger().Len() != 3 || !dbs.Balance.Equal(M(970)) {
		t.Errorf("DBS: %d entries, balance %s", dbs.Ledger().Len(), dbs.Balance)
	}
	if ocbc.Ledger().Len() != 2 || !ocbc.Balance.Equal(M(210)) {
		t.Errorf("OCBC: %d entries, balance %s", ocbc.Ledger().Len(), ocbc.Balance)
	}

	// idempotent for the same date
	if err := p.Update(MustParseDate("15/03/2025")); err != nil {
		t.Fatal(err)
	}
	if dbs.Ledger().Len() != 3 || ocbc.Ledger().Len() != 2 {
		t.Error("second update generated duplicates")
	}
}

func TestRecurringOnInvestment(t *testing.T) {
	p := testProfile(t)
	_, err := p.AddRecurring("Tiger", RecurringTransaction{Description: "x", Amount: M(1), Kind: Expenditure, Next: MustParseDate("01/01/2025")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestBondPurchaseAndSale(t *testing.T) {
	p := testProfile(t)
	bond := Bond{
		Name:         "SSB-2025",
		Amount:       M(1000),
		Rate:         decimal.NewFromFloat(2.5),
		PurchaseDate: MustParseDate("10/03/2025"),
		TermYears:    10,
	}
	if err := p.AddBond("Tiger", bond); err != nil {
		t.Fatal(err)
	}
	a, _ := p.Accounts.Get("Tiger")
	if !a.Balance.Equal(M(4000)) {
		t.Errorf("balance after purchase = %s, want 4000", a.Balance)
	}
	tx, _ := a.Ledger().Get(1)
	if tx.Category != "Bond" || tx.Kind != Expenditure || !tx.Amount.Equal(M(1000)) {
		t.Errorf("purchase entry %q %q %s", tx.Description, tx.Category, tx.Amount)
	}

	if err := p.AddBond("Tiger", bond); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate bond: want ErrDuplicateName, got %v", err)
	}
	if err := p.AddBond("DBS", bond); !errors.Is(err, ErrNotFound) {
		t.Errorf("bond on saving account: want ErrNotFound, got %v", err)
	}

	b, err := p.DeleteBond("Tiger", "SSB-2025")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Balance.Equal(M(5000)) {
		t.Errorf("balance after sale = %s, want 5000", a.Balance)
	}
	back, _ := a.Ledger().Get(2)
	if back.Kind != Deposit || !back.Amount.Equal(b.Amount) {
		t.Errorf("sale entry %s %s", back.Kind, back.Amount)
	}
}

func TestGoalLifecycle(t *testing.T) {
	p := testProfile(t)
	g := &Goal{Name: "house", Target: M(500), TargetDate: MustParseDate("31/12/2025"), TiedAccount: "DBS"}
	if err := p.AddGoal(g); err != nil {
		t.Fatal(err)
	}
	if err := p.AddGoal(&Goal{Name: "car", TiedAccount: "Tiger"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("tie to investment: want ErrNotFound, got %v", err)
	}

	saved, tied, err := p.GoalProgress("house")
	if err != nil || !tied {
		t.Fatalf("progress: %v tied=%v", err, tied)
	}
	if !saved.Equal(M(1000)) {
		t.Errorf("saved = %s, want 1000", saved)
	}

	// deleting the tied saving account unties the goal
	if _, err := p.DeleteAccount("DBS"); err != nil {
		t.Fatal(err)
	}
	if g.TiedAccount != "" {
		t.Errorf("goal still tied to %q", g.TiedAccount)
	}
	if _, tied, _ := p.GoalProgress("house"); tied {
		t.Error("untied goal reports progress")
	}
}

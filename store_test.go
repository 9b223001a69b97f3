package moneybook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func storedProfile(t *testing.T) *Profile {
	t.Helper()
	p := NewProfile("alice", FixedClock(MustParseDate("20/03/2025")))
	p.AddAccount(NewSaving("DBS", M(1000), M(3000)))
	p.AddAccount(NewInvestment("Tiger", M(5000)))
	p.AddExpenditure("DBS", "lunch", M(10), MustParseDate("01/03/2025"), "Food")
	p.AddDeposit("DBS", "salary", M(3000), MustParseDate("05/03/2025"), "Income")
	p.AddRecurring("DBS", RecurringTransaction{
		Description: "netflix", Amount: M(10.90), Category: "Subscription",
		Kind: Expenditure, Next: MustParseDate("15/04/2025"),
	})
	p.AddBond("Tiger", Bond{
		Name: "SSB-2025", Amount: M(1000), Rate: decimal.NewFromFloat(2.5),
		PurchaseDate: MustParseDate("10/03/2025"), TermYears: 10,
	})
	p.AddCard(NewCard("Visa", M(1000), decimal.NewFromFloat(1.5)))
	p.AddCardExpenditure("Visa", "groceries", M(80), MustParseDate("05/03/2025"), "Food")
	p.PayBill("Visa", "DBS", NewYearMonth(2025, 3))
	p.AddCardExpenditure("Visa", "petrol", M(60), MustParseDate("02/04/2025"), "Transport")
	p.AddGoal(&Goal{Name: "house", Target: M(100000), TargetDate: MustParseDate("31/12/2030"), TiedAccount: "DBS"})
	return p
}

func TestStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	p := storedProfile(t)
	if err := store.Save(p); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(FixedClock(MustParseDate("20/03/2025")))
	if err != nil {
		t.Fatalf("load reported: %v", err)
	}
	if loaded.Username != "alice" {
		t.Errorf("username %q", loaded.Username)
	}

	// balances come from the registry file, not from replaying ledgers
	dbs, err := loaded.Accounts.Get("DBS")
	if err != nil {
		t.Fatal(err)
	}
	orig, _ := p.Accounts.Get("DBS")
	if !dbs.Balance.Equal(orig.Balance) {
		t.Errorf("DBS balance %s, want %s", dbs.Balance, orig.Balance)
	}
	if dbs.Ledger().Len() != orig.Ledger().Len() {
		t.Errorf("DBS ledger %d entries, want %d", dbs.Ledger().Len(), orig.Ledger().Len())
	}
	rl, _ := dbs.Recurring()
	if rl.Len() != 1 {
		t.Errorf("recurring %d, want 1", rl.Len())
	}

	tiger, _ := loaded.Accounts.Get("Tiger")
	bl, _ := tiger.Bonds()
	if _, err := bl.Get("SSB-2025"); err != nil {
		t.Errorf("bond lost: %v", err)
	}

	card, err := loaded.Cards.Get("Visa")
	if err != nil {
		t.Fatal(err)
	}
	if card.Unpaid().Len() != 1 || card.Paid().Len() != 1 {
		t.Errorf("card ledgers %d unpaid / %d paid", card.Unpaid().Len(), card.Paid().Len())
	}
	// remaining limit recomputed from the unpaid file
	if !card.Remaining.Equal(M(940)) {
		t.Errorf("remaining %s, want 940", card.Remaining)
	}

	g, err := loaded.Goals.Get("house")
	if err != nil {
		t.Fatal(err)
	}
	if g.TiedAccount != "DBS" {
		t.Errorf("goal tied to %q", g.TiedAccount)
	}
}

func TestStoreRoundtripRebateBalance(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	p := NewProfile("alice", FixedClock(MustParseDate("20/03/2025")))
	p.AddAccount(NewSaving("DBS", M(100), M(0)))
	p.AddCard(NewCard("Visa", M(500), decimal.NewFromFloat(1.5)))
	p.AddCardExpenditure("Visa", "coffee machine", M(33.33), MustParseDate("05/03/2025"), "Kitchen")

	// 1.5% of 33.33 would be 0.49995 unrounded; the deposited rebate
	// must be a representable amount or the balance changes on reload
	if _, err := p.PayBill("Visa", "DBS", NewYearMonth(2025, 3)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(p); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(nil)
	if err != nil {
		t.Fatalf("load reported: %v", err)
	}
	orig, _ := p.Accounts.Get("DBS")
	dbs, _ := loaded.Accounts.Get("DBS")
	if !dbs.Balance.Equal(orig.Balance) {
		t.Errorf("balance %s after reload, was %s", dbs.Balance, orig.Balance)
	}
	if !dbs.Balance.Equal(M(67.17)) {
		t.Errorf("balance %s, want 67.17", dbs.Balance)
	}
}

func TestStoreLoadMissingProfile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if store.Exists() {
		t.Error("fresh directory reports an existing profile")
	}
	if _, err := store.Load(nil); err == nil {
		t.Error("loading a fresh directory must fail")
	}
}

func TestStoreLoadPartial(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(storedProfile(t)); err != nil {
		t.Fatal(err)
	}

	// corrupt one transaction file
	name := filepath.Join(dir, "0_saving_transactionList.csv")
	if err := os.WriteFile(name, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(nil)
	if loaded == nil {
		t.Fatal("partial load must still return the profile")
	}
	if !errors.Is(err, ErrImport) {
		t.Fatalf("want ErrImport, got %v", err)
	}
	// the rest of the profile survives
	if _, err := loaded.Cards.Get("Visa"); err != nil {
		t.Errorf("card lost: %v", err)
	}
	if _, err := loaded.Goals.Get("house"); err != nil {
		t.Errorf("goal lost: %v", err)
	}
}

func TestStoreUntiesOrphanGoals(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(storedProfile(t)); err != nil {
		t.Fatal(err)
	}

	// rewrite the goal file to point at an account that does not exist
	goals := NewGoalList()
	goals.Add(&Goal{Name: "house", Target: M(1), TargetDate: MustParseDate("31/12/2030"), TiedAccount: "Ghost"})
	f, err := os.Create(filepath.Join(dir, "profile_goallist.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if err := EncodeGoals(f, goals); err != nil {
		t.Fatal(err)
	}
	f.Close()

	loaded, err := store.Load(nil)
	if !errors.Is(err, ErrImport) {
		t.Fatalf("want ErrImport warning, got %v", err)
	}
	g, getErr := loaded.Goals.Get("house")
	if getErr != nil {
		t.Fatal(getErr)
	}
	if g.TiedAccount != "" {
		t.Errorf("orphan goal still tied to %q", g.TiedAccount)
	}
}

func TestStoreSweepsDeletedAccounts(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	p := storedProfile(t)
	p.SetStore(store)
	if err := store.Save(p); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "1_investment_bondList.csv")); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	// deleting the investment account drops its files on the next save
	if _, err := p.DeleteAccount("Tiger"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "1_investment_bondList.csv")); !os.IsNotExist(err) {
		t.Errorf("stale bond file left behind: %v", err)
	}

	loaded, err := store.Load(nil)
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if loaded.Accounts.Len() != 1 {
		t.Errorf("loaded %d accounts, want 1", loaded.Accounts.Len())
	}
}

package moneybook

import (
	"errors"
	"testing"
)

func testLedger() *Ledger {
	l := &Ledger{}
	l.Add(NewExpenditure("chicken rice", M(5), MustParseDate("01/03/2025"), "Food"))
	l.Add(NewDeposit("salary", M(3000), MustParseDate("05/03/2025"), "Income"))
	l.Add(NewExpenditure("bus fare", M(1.5), MustParseDate("10/03/2025"), "Transport"))
	l.Add(NewExpenditure("laksa", M(6), MustParseDate("02/04/2025"), "Food"))
	return l
}

func TestLedgerAddIndices(t *testing.T) {
	l := &Ledger{}
	for want := 1; want <= 3; want++ {
		got := l.Add(NewExpenditure("x", M(1), MustParseDate("01/01/2025"), "c"))
		if got != want {
			t.Fatalf("Add returned index %d, want %d", got, want)
		}
	}
}

func TestLedgerDelete(t *testing.T) {
	l := testLedger()
	tx, err := l.Delete(1)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Description != "chicken rice" {
		t.Errorf("deleted %q, want chicken rice", tx.Description)
	}
	// later entries shift down
	got, err := l.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != "salary" {
		t.Errorf("index 1 is now %q, want salary", got.Description)
	}
	if _, err := l.Delete(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if _, err := l.Delete(0); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound for index 0, got %v", err)
	}
}

func TestLedgerEdit(t *testing.T) {
	l := testLedger()
	desc := "duck rice"
	amount := M(4.5)
	old, edited, err := l.Edit(1, TransactionPatch{Description: &desc, Amount: &amount})
	if err != nil {
		t.Fatal(err)
	}
	if old.Description != "chicken rice" || !old.Amount.Equal(M(5)) {
		t.Errorf("old entry mismatch: %q %s", old.Description, old.Amount)
	}
	if edited.Description != "duck rice" || !edited.Amount.Equal(M(4.5)) {
		t.Errorf("edited entry mismatch: %q %s", edited.Description, edited.Amount)
	}
	if edited.Category != "Food" {
		t.Errorf("untouched field changed: category %q", edited.Category)
	}
	if edited.ID != old.ID {
		t.Error("edit must not change the transaction identity")
	}
}

func TestLedgerListLast(t *testing.T) {
	l := testLedger()
	list, err := l.ListLast(2, Expenditure)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d entries, want 2", len(list))
	}
	// most recent first
	if list[0].Tx.Description != "laksa" || list[0].Index != 4 {
		t.Errorf("first entry is #%d %q", list[0].Index, list[0].Tx.Description)
	}
	if list[1].Tx.Description != "bus fare" || list[1].Index != 3 {
		t.Errorf("second entry is #%d %q", list[1].Index, list[1].Tx.Description)
	}

	if _, err := (&Ledger{}).ListLast(5, Deposit); !errors.Is(err, ErrEmptyList) {
		t.Errorf("want ErrEmptyList, got %v", err)
	}
}

func TestLedgerFind(t *testing.T) {
	l := testLedger()

	count := func(r Range, desc, cat string) int {
		n := 0
		for range l.Find(r, desc, cat) {
			n++
		}
		return n
	}

	if got := count(Range{}, "", ""); got != 4 {
		t.Errorf("no filter matched %d, want 4", got)
	}
	if got := count(Range{}, "RICE", ""); got != 1 {
		t.Errorf("case-insensitive description matched %d, want 1", got)
	}
	if got := count(Range{}, "", "food"); got != 2 {
		t.Errorf("category matched %d, want 2", got)
	}
	march := NewRange(MustParseDate("01/03/2025"), MustParseDate("31/03/2025"))
	if got := count(march, "", ""); got != 3 {
		t.Errorf("march matched %d, want 3", got)
	}
	if got := count(march, "", "food"); got != 1 {
		t.Errorf("march food matched %d, want 1", got)
	}
	if got := count(Range{}, "durian", ""); got != 0 {
		t.Errorf("no-match search matched %d, want 0", got)
	}
}

func TestLedgerSums(t *testing.T) {
	l := testLedger()
	if got := l.SumKind(Expenditure); !got.Equal(M(12.5)) {
		t.Errorf("SumKind(Expenditure) = %s, want 12.50", got)
	}
	march := NewYearMonth(2025, 3)
	if got := l.SumMonth(march, Expenditure); !got.Equal(M(6.5)) {
		t.Errorf("SumMonth(march, Expenditure) = %s, want 6.50", got)
	}
	if got := l.SumMonth(march, Deposit); !got.Equal(M(3000)) {
		t.Errorf("SumMonth(march, Deposit) = %s, want 3000", got)
	}
}

func TestLedgerTakeMonth(t *testing.T) {
	l := testLedger()
	taken := l.takeMonth(NewYearMonth(2025, 3))
	if len(taken) != 3 {
		t.Fatalf("took %d entries, want 3", len(taken))
	}
	if l.Len() != 1 {
		t.Fatalf("ledger kept %d entries, want 1", l.Len())
	}
	if rest, _ := l.Get(1); rest.Description != "laksa" {
		t.Errorf("kept %q, want laksa", rest.Description)
	}
}

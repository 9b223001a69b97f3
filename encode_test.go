package moneybook

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerRoundtrip(t *testing.T) {
	l := testLedger()
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatal(err)
	}
	txs, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != l.Len() {
		t.Fatalf("decoded %d entries, want %d", len(txs), l.Len())
	}
	want, _ := l.Get(2)
	got := txs[1]
	if got.ID != want.ID || got.Description != want.Description || got.Date != want.Date ||
		got.Category != want.Category || got.Kind != want.Kind || !got.Amount.Equal(want.Amount) {
		t.Errorf("entry 2 mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestDecodeLedgerPartial(t *testing.T) {
	doc := strings.Join([]string{
		"id,description,amount,date,category,kind",
		"6b25f53c-6radius-bad-uuid,lunch,5.00,01/03/2025,Food,expenditure",
	}, "\n")
	txs, err := DecodeLedger(strings.NewReader(doc))
	if !errors.Is(err, ErrImport) {
		t.Fatalf("want ErrImport, got %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("kept %d entries before the bad row", len(txs))
	}

	// a good row before the bad one survives
	good := NewDeposit("salary", M(100), MustParseDate("05/03/2025"), "Income")
	doc = strings.Join([]string{
		"id,description,amount,date,category,kind",
		strings.Join(transactionRow(good), ","),
		good.ID.String() + ",lunch,notanumber,01/03/2025,Food,expenditure",
	}, "\n")
	txs, err = DecodeLedger(strings.NewReader(doc))
	if !errors.Is(err, ErrImport) {
		t.Fatalf("want ErrImport, got %v", err)
	}
	if len(txs) != 1 || txs[0].Description != "salary" {
		t.Errorf("partial result %+v", txs)
	}
}

func TestDecodeLedgerHeaderMismatch(t *testing.T) {
	doc := "wrong,header,row,entirely,bad,nope\n"
	if _, err := DecodeLedger(strings.NewReader(doc)); !errors.Is(err, ErrImport) {
		t.Errorf("want ErrImport, got %v", err)
	}
	if _, err := DecodeLedger(strings.NewReader("")); !errors.Is(err, ErrImport) {
		t.Errorf("empty file: want ErrImport, got %v", err)
	}
}

func TestAccountsRoundtrip(t *testing.T) {
	accounts := NewAccountList()
	accounts.Add(NewSaving("DBS", M(1234.56), M(3000)))
	accounts.Add(NewInvestment("Tiger", M(5000)))

	var buf bytes.Buffer
	if err := EncodeAccounts(&buf, accounts); err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeAccounts(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d accounts", len(decoded))
	}
	if decoded[0].Name != "DBS" || decoded[0].Variant != Saving ||
		!decoded[0].Balance.Equal(M(1234.56)) || !decoded[0].Income.Equal(M(3000)) {
		t.Errorf("saving mismatch %+v", decoded[0])
	}
	if decoded[1].Name != "Tiger" || decoded[1].Variant != Investment || !decoded[1].Balance.Equal(M(5000)) {
		t.Errorf("investment mismatch %+v", decoded[1])
	}
}

func TestRecurringRoundtrip(t *testing.T) {
	rl := newRecurringList(10)
	rl.Add(RecurringTransaction{
		Description: "netflix",
		Amount:      M(10.90),
		Category:    "Subscription",
		Kind:        Expenditure,
		Next:        MustParseDate("15/04/2025"),
	})

	var buf bytes.Buffer
	if err := EncodeRecurring(&buf, &rl); err != nil {
		t.Fatal(err)
	}
	list, err := DecodeRecurring(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("decoded %d templates", len(list))
	}
	r := list[0]
	if r.Description != "netflix" || !r.Amount.Equal(M(10.90)) || r.Kind != Expenditure ||
		r.Next != MustParseDate("15/04/2025") {
		t.Errorf("mismatch %+v", r)
	}
}

func TestBondsRoundtrip(t *testing.T) {
	bl := newBondLedger(10)
	bl.Add(Bond{
		Name:         "SSB-2025",
		Amount:       M(1000),
		Rate:         decimal.NewFromFloat(2.5),
		PurchaseDate: MustParseDate("10/03/2025"),
		TermYears:    10,
	})

	var buf bytes.Buffer
	if err := EncodeBonds(&buf, &bl); err != nil {
		t.Fatal(err)
	}
	list, err := DecodeBonds(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("decoded %d bonds", len(list))
	}
	b := list[0]
	if b.Name != "SSB-2025" || !b.Amount.Equal(M(1000)) || !b.Rate.Equal(decimal.NewFromFloat(2.5)) ||
		b.PurchaseDate != MustParseDate("10/03/2025") || b.TermYears != 10 {
		t.Errorf("mismatch %+v", b)
	}
}

func TestGoalsRoundtrip(t *testing.T) {
	goals := NewGoalList()
	goals.Add(&Goal{Name: "house", Target: M(100000), TargetDate: MustParseDate("31/12/2030"), TiedAccount: "DBS"})
	goals.Add(&Goal{Name: "trip, with commas", Target: M(2000), TargetDate: MustParseDate("01/06/2026")})

	var buf bytes.Buffer
	if err := EncodeGoals(&buf, goals); err != nil {
		t.Fatal(err)
	}
	list, err := DecodeGoals(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("decoded %d goals", len(list))
	}
	if list[0].TiedAccount != "DBS" || list[1].TiedAccount != "" {
		t.Errorf("ties %q / %q", list[0].TiedAccount, list[1].TiedAccount)
	}
	// csv quoting keeps commas in names intact
	if list[1].Name != "trip, with commas" {
		t.Errorf("name %q", list[1].Name)
	}
}

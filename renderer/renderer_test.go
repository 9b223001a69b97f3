package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/corvid/moneybook"
)

func TestAccountsMarkdown(t *testing.T) {
	accounts := moneybook.NewAccountList()
	accounts.Add(moneybook.NewSaving("DBS", moneybook.M(1000), moneybook.M(3000)))
	accounts.Add(moneybook.NewInvestment("Tiger", moneybook.M(5000)))

	md := AccountsMarkdown(accounts)
	for _, want := range []string{"# Accounts", "| 1 | DBS | saving |", "| 2 | Tiger | investment |"} {
		if !strings.Contains(md, want) {
			t.Errorf("missing %q in:\n%s", want, md)
		}
	}
	// investment accounts show no income
	if strings.Count(md, "$3,000.00") != 1 {
		t.Errorf("income column wrong in:\n%s", md)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	list := []moneybook.Listed{
		{Index: 2, Tx: moneybook.NewExpenditure("laksa", moneybook.M(6), moneybook.MustParseDate("02/04/2025"), "Food")},
	}
	md := TransactionsMarkdown("Expenditures of DBS", list)
	for _, want := range []string{"# Expenditures of DBS", "| 2 | 02/04/2025 | laksa | Food |"} {
		if !strings.Contains(md, want) {
			t.Errorf("missing %q in:\n%s", want, md)
		}
	}
}

func TestGoalsMarkdown(t *testing.T) {
	p := moneybook.NewProfile("alice", nil)
	p.AddAccount(moneybook.NewSaving("DBS", moneybook.M(1000), moneybook.M(0)))
	p.AddGoal(&moneybook.Goal{
		Name:        "house",
		Target:      moneybook.M(500),
		TargetDate:  moneybook.MustParseDate("31/12/2030"),
		TiedAccount: "DBS",
	})
	p.AddGoal(&moneybook.Goal{
		Name:       "trip",
		Target:     moneybook.M(2000),
		TargetDate: moneybook.MustParseDate("01/06/2026"),
	})

	md := GoalsMarkdown(p)
	if !strings.Contains(md, "achieved") {
		t.Errorf("funded goal not marked achieved:\n%s", md)
	}
	if !strings.Contains(md, "untracked") {
		t.Errorf("untied goal not marked untracked:\n%s", md)
	}
}

func TestCardsMarkdown(t *testing.T) {
	cards := moneybook.NewCardList()
	cards.Add(moneybook.NewCard("Visa", moneybook.M(1000), decimal.NewFromFloat(1.5)))

	md := CardsMarkdown(cards)
	if !strings.Contains(md, "| 1 | Visa |") || !strings.Contains(md, "1.5%") {
		t.Errorf("card row wrong in:\n%s", md)
	}
}

package renderer

import (
	"fmt"
	"strings"

	"github.com/corvid/moneybook"
)

// CardsMarkdown renders the card registry as a table. The rebate rate is a
// percentage.
func CardsMarkdown(cards *moneybook.CardList) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Credit Cards\n\n")
	fmt.Fprintln(&b, "| # | Name | Limit | Remaining | Rebate |")
	fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|")
	for i, c := range cards.All() {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s%% |\n",
			i+1, c.Name, c.Limit, c.Remaining, c.Rebate)
	}
	return b.String()
}

// BillMarkdown renders the settlement summary of one card bill month.
func BillMarkdown(card string, month moneybook.YearMonth, bill, rebate moneybook.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Bill of %s for %s\n\n", card, month)
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| **Bill Amount** | %s |\n", bill)
	fmt.Fprintf(&b, "| **Rebate** | %s |\n", rebate)
	return b.String()
}

// BondsMarkdown renders an investment account's bond holding. The yearly
// coupon is the face amount at the bond's rate.
func BondsMarkdown(account string, bonds []moneybook.Bond) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Bonds of %s\n\n", account)
	fmt.Fprintln(&b, "| # | Name | Amount | Rate | Purchased | Years | Yearly Coupon |")
	fmt.Fprintln(&b, "|---:|:---|---:|---:|:---|---:|---:|")
	for i, bd := range bonds {
		coupon := bd.Amount.MulRate(bd.Rate)
		fmt.Fprintf(&b, "| %d | %s | %s | %s%% | %s | %d | %s |\n",
			i+1, bd.Name, bd.Amount, bd.Rate, bd.PurchaseDate, bd.TermYears, coupon)
	}
	return b.String()
}

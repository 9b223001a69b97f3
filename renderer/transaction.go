package renderer

import (
	"fmt"
	"iter"
	"strings"

	"github.com/corvid/moneybook"
)

// TransactionsMarkdown renders listed entries under a title, in the order
// given (list views pass most recent first).
func TransactionsMarkdown(title string, list []moneybook.Listed) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	transactionHeader(&b)
	for _, e := range list {
		transactionRow(&b, e.Index, e.Tx)
	}
	return b.String()
}

// FoundMarkdown drains a search sequence into a markdown table. It reports
// how many entries matched.
func FoundMarkdown(title string, found iter.Seq2[int, moneybook.Transaction]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	transactionHeader(&b)
	n := 0
	for i, tx := range found {
		transactionRow(&b, i, tx)
		n++
	}
	fmt.Fprintf(&b, "\n%d matching transaction(s).\n", n)
	return b.String()
}

func transactionHeader(b *strings.Builder) {
	fmt.Fprintln(b, "| # | Date | Description | Category | Amount |")
	fmt.Fprintln(b, "|---:|:---|:---|:---|---:|")
}

func transactionRow(b *strings.Builder, index int, tx moneybook.Transaction) {
	fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
		index, tx.Date, tx.Description, tx.Category, tx.Signed())
}

// RecurringMarkdown renders an account's recurring templates.
func RecurringMarkdown(account string, list []moneybook.RecurringTransaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Recurring Transactions of %s\n\n", account)
	fmt.Fprintln(&b, "| # | Description | Category | Kind | Amount | Next |")
	fmt.Fprintln(&b, "|---:|:---|:---|:---|---:|:---|")
	for i, r := range list {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			i+1, r.Description, r.Category, r.Kind, r.Amount, r.Next)
	}
	return b.String()
}

// Package renderer turns moneybook values into markdown strings. It never
// prints: the command layer decides where the markdown goes.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/corvid/moneybook"
)

// overviewTemplate is the profile summary page.
const overviewTemplate = `# {{.Username}}'s Money Book

| | |
|:---|---:|
| **Accounts** | {{.Accounts.Len}} |
| **Credit Cards** | {{.Cards.Len}} |
| **Goals** | {{.Goals.Len}} |
`

var overview = template.Must(template.New("overview").Parse(overviewTemplate))

// OverviewMarkdown renders the profile summary page followed by the
// account table.
func OverviewMarkdown(p *moneybook.Profile) string {
	var b strings.Builder
	if err := overview.Execute(&b, p); err != nil {
		return fmt.Sprintf("error rendering overview: %v", err)
	}
	b.WriteString("\n")
	renderAccountTable(&b, p.Accounts)
	return b.String()
}

// AccountsMarkdown renders the account registry as a table.
func AccountsMarkdown(accounts *moneybook.AccountList) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Accounts\n\n")
	renderAccountTable(&b, accounts)
	return b.String()
}

func renderAccountTable(b *strings.Builder, accounts *moneybook.AccountList) {
	fmt.Fprintln(b, "| # | Name | Type | Balance | Income |")
	fmt.Fprintln(b, "|---:|:---|:---|---:|---:|")
	for i, a := range accounts.All() {
		income := ""
		if a.Variant == moneybook.Saving {
			income = a.Income.String()
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
			i+1, a.Name, a.Variant, a.Balance, income)
	}
}

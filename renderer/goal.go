package renderer

import (
	"fmt"
	"strings"

	"github.com/corvid/moneybook"
)

// GoalsMarkdown renders the goal registry. For tied goals, the saved
// column shows the tied account's balance and the status flips to
// "achieved" once it covers the target.
func GoalsMarkdown(p *moneybook.Profile) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Savings Goals\n\n")
	fmt.Fprintln(&b, "| # | Name | Target | By | Account | Saved | Status |")
	fmt.Fprintln(&b, "|---:|:---|---:|:---|:---|---:|:---|")
	for i, g := range p.Goals.All() {
		saved, status := "", "untracked"
		if g.TiedAccount != "" {
			balance, tied, err := p.GoalProgress(g.Name)
			if err == nil && tied {
				saved = balance.String()
				if balance.GreaterThanOrEqual(g.Target) {
					status = "achieved"
				} else {
					status = "in progress"
				}
			}
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			i+1, g.Name, g.Target, g.TargetDate, g.TiedAccount, saved, status)
	}
	return b.String()
}

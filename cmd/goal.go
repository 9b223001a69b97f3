package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/corvid/moneybook"
	"github.com/corvid/moneybook/renderer"
)

type goalAddCmd struct {
	name    string
	amount  string
	date    string
	account string
}

func (*goalAddCmd) Name() string     { return "goal-add" }
func (*goalAddCmd) Synopsis() string { return "add a savings goal" }
func (*goalAddCmd) Usage() string {
	return `mbk goal-add -name <goal> -amount <n> -by <dd/mm/yyyy> [-account <saving>]

  Adds a savings goal. Tying it to a saving account tracks progress
  against that account's balance.
`
}

func (c *goalAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Goal name, unique across goals.")
	f.StringVar(&c.amount, "amount", "", "Target amount.")
	f.StringVar(&c.date, "by", "", "Target date.")
	f.StringVar(&c.account, "account", "", "Saving account to track, optional.")
}

func (c *goalAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.date == "" {
		return fail(fmt.Errorf("both -name and -by are required"))
	}
	target, err := parseAmount(c.amount)
	if err != nil {
		return fail(err)
	}
	date, err := moneybook.ParseDate(c.date)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	g := &moneybook.Goal{
		Name:        c.name,
		Target:      target,
		TargetDate:  date,
		TiedAccount: c.account,
	}
	if err := p.AddGoal(g); err != nil {
		return fail(err)
	}
	fmt.Printf("Added goal %q of %s by %s\n", c.name, target, date)
	return subcommands.ExitSuccess
}

type goalEditCmd struct {
	name    string
	newName string
	amount  string
	date    string
	account string
	untie   bool
}

func (*goalEditCmd) Name() string     { return "goal-edit" }
func (*goalEditCmd) Synopsis() string { return "edit a savings goal" }
func (*goalEditCmd) Usage() string {
	return `mbk goal-edit -name <goal> [-to <new name>] [-amount <n>] [-by <dd/mm/yyyy>] [-account <saving>] [-untie]

  Overwrites the given fields of a goal. -untie removes the account tie.
`
}

func (c *goalEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Goal to edit.")
	f.StringVar(&c.newName, "to", "", "New goal name.")
	f.StringVar(&c.amount, "amount", "", "New target amount.")
	f.StringVar(&c.date, "by", "", "New target date.")
	f.StringVar(&c.account, "account", "", "Saving account to track.")
	f.BoolVar(&c.untie, "untie", false, "Remove the account tie.")
}

func (c *goalEditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return fail(fmt.Errorf("-name is required"))
	}
	if c.untie && c.account != "" {
		return fail(fmt.Errorf("-untie and -account cannot be used together"))
	}
	var patch moneybook.GoalPatch
	patch.NewName = optString(c.newName)
	if c.amount != "" {
		target, err := parseAmount(c.amount)
		if err != nil {
			return fail(err)
		}
		patch.Target = &target
	}
	if c.date != "" {
		date, err := moneybook.ParseDate(c.date)
		if err != nil {
			return fail(err)
		}
		patch.TargetDate = &date
	}
	if c.untie {
		none := ""
		patch.TiedAccount = &none
	} else if c.account != "" {
		patch.TiedAccount = &c.account
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	g, err := p.EditGoal(c.name, patch)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Edited goal %q of %s by %s\n", g.Name, g.Target, g.TargetDate)
	return subcommands.ExitSuccess
}

type goalDeleteCmd struct {
	name string
}

func (*goalDeleteCmd) Name() string     { return "goal-del" }
func (*goalDeleteCmd) Synopsis() string { return "delete a savings goal" }
func (*goalDeleteCmd) Usage() string {
	return `mbk goal-del -name <goal>

  Deletes a goal. Accounts and transactions are not touched.
`
}

func (c *goalDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Goal to delete.")
}

func (c *goalDeleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return fail(fmt.Errorf("-name is required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	g, err := p.DeleteGoal(c.name)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted goal %q\n", g.Name)
	return subcommands.ExitSuccess
}

type goalListCmd struct{}

func (*goalListCmd) Name() string     { return "goals" }
func (*goalListCmd) Synopsis() string { return "list the savings goals" }
func (*goalListCmd) Usage() string {
	return `mbk goals

  Lists every goal with its progress.
`
}
func (*goalListCmd) SetFlags(*flag.FlagSet) {}

func (*goalListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.GoalsMarkdown(p))
	return subcommands.ExitSuccess
}

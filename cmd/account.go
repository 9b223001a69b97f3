package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/corvid/moneybook"
	"github.com/corvid/moneybook/renderer"
)

type accountAddCmd struct {
	name   string
	kind   string
	amount string
	income string
}

func (*accountAddCmd) Name() string     { return "account-add" }
func (*accountAddCmd) Synopsis() string { return "add a bank account" }
func (*accountAddCmd) Usage() string {
	return `mbk account-add -name <name> [-type saving|investment] [-amount <n>] [-income <n>]

  Adds a bank account. Saving accounts carry a monthly income and recurring
  transactions; investment accounts carry bonds.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name, unique across accounts.")
	f.StringVar(&c.kind, "type", "saving", "Account type: saving or investment.")
	f.StringVar(&c.amount, "amount", "0", "Starting balance.")
	f.StringVar(&c.income, "income", "0", "Monthly income (saving accounts only).")
}

func (c *accountAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return fail(fmt.Errorf("-name is required"))
	}
	variant, err := moneybook.ParseVariant(c.kind)
	if err != nil {
		return fail(err)
	}
	balance, err := moneybook.ParseMoney(c.amount)
	if err != nil {
		return fail(err)
	}
	income, err := moneybook.ParseMoney(c.income)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	var account *moneybook.Account
	if variant == moneybook.Saving {
		account = moneybook.NewSaving(c.name, balance, income)
	} else {
		account = moneybook.NewInvestment(c.name, balance)
	}
	if err := p.AddAccount(account); err != nil {
		return fail(err)
	}
	fmt.Printf("Added %s account %q\n", variant, c.name)
	return subcommands.ExitSuccess
}

type accountEditCmd struct {
	name    string
	newName string
	amount  string
	income  string
}

func (*accountEditCmd) Name() string     { return "account-edit" }
func (*accountEditCmd) Synopsis() string { return "edit a bank account" }
func (*accountEditCmd) Usage() string {
	return `mbk account-edit -name <name> [-to <new name>] [-amount <n>] [-income <n>]

  Overwrites the given fields of an account. Flags left out keep their
  current value. Income applies to saving accounts only.
`
}

func (c *accountEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account to edit.")
	f.StringVar(&c.newName, "to", "", "New account name.")
	f.StringVar(&c.amount, "amount", "", "New balance.")
	f.StringVar(&c.income, "income", "", "New monthly income.")
}

func (c *accountEditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return fail(fmt.Errorf("-name is required"))
	}
	var patch moneybook.AccountPatch
	patch.NewName = optString(c.newName)
	if c.amount != "" {
		balance, err := moneybook.ParseMoney(c.amount)
		if err != nil {
			return fail(err)
		}
		patch.Balance = &balance
	}
	if c.income != "" {
		income, err := moneybook.ParseMoney(c.income)
		if err != nil {
			return fail(err)
		}
		patch.Income = &income
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	a, err := p.EditAccount(c.name, patch)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Edited account %q, balance %s\n", a.Name, a.Balance)
	return subcommands.ExitSuccess
}

type accountDeleteCmd struct {
	name string
}

func (*accountDeleteCmd) Name() string     { return "account-del" }
func (*accountDeleteCmd) Synopsis() string { return "delete a bank account" }
func (*accountDeleteCmd) Usage() string {
	return `mbk account-del -name <name>

  Deletes an account with its transactions. The last remaining account
  cannot be deleted. Goals tied to a deleted saving account are untied.
`
}

func (c *accountDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account to delete.")
}

func (c *accountDeleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return fail(fmt.Errorf("-name is required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	a, err := p.DeleteAccount(c.name)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted %s account %q\n", a.Variant, a.Name)
	return subcommands.ExitSuccess
}

type accountListCmd struct{}

func (*accountListCmd) Name() string     { return "accounts" }
func (*accountListCmd) Synopsis() string { return "list the bank accounts" }
func (*accountListCmd) Usage() string {
	return `mbk accounts

  Lists every bank account with its balance.
`
}
func (*accountListCmd) SetFlags(*flag.FlagSet) {}

func (*accountListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.AccountsMarkdown(p.Accounts))
	return subcommands.ExitSuccess
}

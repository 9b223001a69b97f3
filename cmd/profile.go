package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/corvid/moneybook"
	"github.com/corvid/moneybook/renderer"
)

type initCmd struct {
	name    string
	account string
	kind    string
	amount  string
	income  string
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new profile with its first bank account" }
func (*initCmd) Usage() string {
	return `mbk init -name <user> -account <name> [-type saving|investment] [-amount <n>] [-income <n>]

  Creates the profile files in the configured data directory. A profile
  always holds at least one bank account, so init creates the first one.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Profile username.")
	f.StringVar(&c.account, "account", "", "Name of the first bank account.")
	f.StringVar(&c.kind, "type", "saving", "Account type: saving or investment.")
	f.StringVar(&c.amount, "amount", "0", "Starting balance.")
	f.StringVar(&c.income, "income", "0", "Monthly income (saving accounts only).")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.account == "" {
		return fail(fmt.Errorf("both -name and -account are required"))
	}
	cfg, err := moneybook.LoadConfig()
	if err != nil {
		return fail(err)
	}
	cfg.Apply()
	store, err := moneybook.NewStore(cfg.Dir)
	if err != nil {
		return fail(err)
	}
	if store.Exists() {
		return fail(fmt.Errorf("a profile already exists in %s", cfg.Dir))
	}
	balance, err := moneybook.ParseMoney(c.amount)
	if err != nil {
		return fail(err)
	}
	income, err := moneybook.ParseMoney(c.income)
	if err != nil {
		return fail(err)
	}
	variant, err := moneybook.ParseVariant(c.kind)
	if err != nil {
		return fail(err)
	}

	p := moneybook.NewProfile(c.name, nil)
	var account *moneybook.Account
	if variant == moneybook.Saving {
		account = moneybook.NewSaving(c.account, balance, income)
	} else {
		account = moneybook.NewInvestment(c.account, balance)
	}
	if err := p.AddAccount(account); err != nil {
		return fail(err)
	}
	p.SetStore(store)
	if err := store.Save(p); err != nil {
		return fail(err)
	}
	fmt.Printf("Created profile %q in %s\n", c.name, cfg.Dir)
	return subcommands.ExitSuccess
}

type overviewCmd struct{}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "show the profile summary" }
func (*overviewCmd) Usage() string {
	return `mbk overview

  Shows the profile summary and the account table.
`
}
func (*overviewCmd) SetFlags(*flag.FlagSet) {}

func (*overviewCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.OverviewMarkdown(p))
	return subcommands.ExitSuccess
}

type renameCmd struct {
	name    string
	newName string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename the profile" }
func (*renameCmd) Usage() string {
	return `mbk rename -name <current> -to <new>

  Renames the profile. The current name must match.
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Current profile username.")
	f.StringVar(&c.newName, "to", "", "New profile username.")
}

func (c *renameCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.newName == "" {
		return fail(fmt.Errorf("both -name and -to are required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	if err := p.Rename(c.name, c.newName); err != nil {
		return fail(err)
	}
	fmt.Printf("Profile renamed to %q\n", c.newName)
	return subcommands.ExitSuccess
}

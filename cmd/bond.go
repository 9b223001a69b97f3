package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/corvid/moneybook"
	"github.com/corvid/moneybook/renderer"
)

type bondAddCmd struct {
	account string
	name    string
	amount  string
	rate    string
	date    string
	years   int
}

func (*bondAddCmd) Name() string     { return "bond-add" }
func (*bondAddCmd) Synopsis() string { return "buy a bond in an investment account" }
func (*bondAddCmd) Usage() string {
	return `mbk bond-add -account <investment> -name <bond> -amount <n> -rate <percent> [-date <dd/mm/yyyy>] [-years <n>]

  Buys a bond: it joins the account's holding and its amount is charged to
  the account balance.
`
}

func (c *bondAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Investment account buying the bond.")
	f.StringVar(&c.name, "name", "", "Bond name, unique within the account.")
	f.StringVar(&c.amount, "amount", "", "Face amount.")
	f.StringVar(&c.rate, "rate", "", "Yearly rate in percent, e.g. 2.5.")
	f.StringVar(&c.date, "date", "", "Purchase date, defaults to today.")
	f.IntVar(&c.years, "years", 10, "Term in years.")
}

func (c *bondAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.name == "" {
		return fail(fmt.Errorf("both -account and -name are required"))
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return fail(err)
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return fail(fmt.Errorf("rate %q: %v", c.rate, err))
	}
	date, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	bond := moneybook.Bond{
		Name:         c.name,
		Amount:       amount,
		Rate:         rate,
		PurchaseDate: date,
		TermYears:    c.years,
	}
	if err := p.AddBond(c.account, bond); err != nil {
		return fail(err)
	}
	fmt.Printf("Bought bond %q of %s in %q\n", c.name, amount, c.account)
	return subcommands.ExitSuccess
}

type bondEditCmd struct {
	account string
	name    string
	rate    string
	years   int
}

func (*bondEditCmd) Name() string     { return "bond-edit" }
func (*bondEditCmd) Synopsis() string { return "edit a held bond" }
func (*bondEditCmd) Usage() string {
	return `mbk bond-edit -account <investment> -name <bond> [-rate <percent>] [-years <n>]

  Changes the rate or the term of a held bond. Name, amount, and purchase
  date are fixed at purchase.
`
}

func (c *bondEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Investment account holding the bond.")
	f.StringVar(&c.name, "name", "", "Bond to edit.")
	f.StringVar(&c.rate, "rate", "", "New yearly rate in percent.")
	f.IntVar(&c.years, "years", 0, "New term in years.")
}

func (c *bondEditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.name == "" {
		return fail(fmt.Errorf("both -account and -name are required"))
	}
	var rate *decimal.Decimal
	if c.rate != "" {
		r, err := decimal.NewFromString(c.rate)
		if err != nil {
			return fail(fmt.Errorf("rate %q: %v", c.rate, err))
		}
		rate = &r
	}
	var years *int
	if c.years > 0 {
		years = &c.years
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	b, err := p.EditBond(c.account, c.name, rate, years)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Edited bond %q: rate %s%%, %d years\n", b.Name, b.Rate, b.TermYears)
	return subcommands.ExitSuccess
}

type bondDeleteCmd struct {
	account string
	name    string
}

func (*bondDeleteCmd) Name() string     { return "bond-del" }
func (*bondDeleteCmd) Synopsis() string { return "sell a held bond" }
func (*bondDeleteCmd) Usage() string {
	return `mbk bond-del -account <investment> -name <bond>

  Sells a bond: it leaves the holding and its amount flows back into the
  account balance.
`
}

func (c *bondDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Investment account holding the bond.")
	f.StringVar(&c.name, "name", "", "Bond to sell.")
}

func (c *bondDeleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.name == "" {
		return fail(fmt.Errorf("both -account and -name are required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	b, err := p.DeleteBond(c.account, c.name)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Sold bond %q, %s returned to %q\n", b.Name, b.Amount, c.account)
	return subcommands.ExitSuccess
}

type bondListCmd struct {
	account string
	number  int
}

func (*bondListCmd) Name() string     { return "bonds" }
func (*bondListCmd) Synopsis() string { return "list the bonds of an investment account" }
func (*bondListCmd) Usage() string {
	return `mbk bonds -account <investment> [-n <count>]

  Lists the bonds held by an investment account.
`
}

func (c *bondListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Investment account to list.")
	f.IntVar(&c.number, "n", 30, "Maximum number of bonds.")
}

func (c *bondListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return fail(fmt.Errorf("-account is required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	bonds, err := p.ListBonds(c.account, c.number)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.BondsMarkdown(c.account, bonds))
	return subcommands.ExitSuccess
}

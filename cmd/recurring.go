package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/corvid/moneybook"
	"github.com/corvid/moneybook/renderer"
)

type recurringAddCmd struct {
	account     string
	description string
	amount      string
	category    string
	kind        string
	from        string
}

func (*recurringAddCmd) Name() string     { return "recur-add" }
func (*recurringAddCmd) Synopsis() string { return "add a monthly recurring transaction" }
func (*recurringAddCmd) Usage() string {
	return `mbk recur-add -account <saving> -desc <text> -amount <n> [-category <text>] [-kind expenditure|deposit] [-from <dd/mm/yyyy>]

  Registers a monthly template on a saving account. Each 'mbk update'
  materializes one concrete transaction per elapsed month, starting at
  the -from date (defaults to today).
`
}

func (c *recurringAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Saving account carrying the template.")
	f.StringVar(&c.description, "desc", "", "Description of the generated transactions.")
	f.StringVar(&c.amount, "amount", "", "Monthly amount.")
	f.StringVar(&c.category, "category", "Miscellaneous", "Category of the generated transactions.")
	f.StringVar(&c.kind, "kind", "expenditure", "Kind: expenditure or deposit.")
	f.StringVar(&c.from, "from", "", "First occurrence date, defaults to today.")
}

func (c *recurringAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.description == "" {
		return fail(fmt.Errorf("both -account and -desc are required"))
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return fail(err)
	}
	kind, err := moneybook.ParseKind(c.kind)
	if err != nil {
		return fail(err)
	}
	from, err := parseDate(c.from)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	r := moneybook.RecurringTransaction{
		Description: c.description,
		Amount:      amount,
		Category:    c.category,
		Kind:        kind,
		Next:        from,
	}
	index, err := p.AddRecurring(c.account, r)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Added recurring #%d %q of %s per month on %q\n", index, c.description, amount, c.account)
	return subcommands.ExitSuccess
}

type recurringEditCmd struct {
	account     string
	index       int
	description string
	amount      string
	category    string
}

func (*recurringEditCmd) Name() string     { return "recur-edit" }
func (*recurringEditCmd) Synopsis() string { return "edit a recurring transaction" }
func (*recurringEditCmd) Usage() string {
	return `mbk recur-edit -account <saving> -index <n> [-desc <text>] [-amount <n>] [-category <text>]

  Overwrites the given fields of a recurring template. Already generated
  transactions keep their recorded values.
`
}

func (c *recurringEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Saving account carrying the template.")
	f.IntVar(&c.index, "index", 0, "Template index as shown by 'mbk recurs'.")
	f.StringVar(&c.description, "desc", "", "New description.")
	f.StringVar(&c.amount, "amount", "", "New monthly amount.")
	f.StringVar(&c.category, "category", "", "New category.")
}

func (c *recurringEditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.index <= 0 {
		return fail(fmt.Errorf("both -account and a positive -index are required"))
	}
	var amount *moneybook.Money
	if c.amount != "" {
		m, err := parseAmount(c.amount)
		if err != nil {
			return fail(err)
		}
		amount = &m
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	r, err := p.EditRecurring(c.account, c.index, optString(c.description), optString(c.category), amount)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Edited recurring #%d: %s of %s per month\n", c.index, r.Description, r.Amount)
	return subcommands.ExitSuccess
}

type recurringDeleteCmd struct {
	account string
	index   int
}

func (*recurringDeleteCmd) Name() string     { return "recur-del" }
func (*recurringDeleteCmd) Synopsis() string { return "delete a recurring transaction" }
func (*recurringDeleteCmd) Usage() string {
	return `mbk recur-del -account <saving> -index <n>

  Deletes a recurring template. Already generated transactions stay in
  the ledger.
`
}

func (c *recurringDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Saving account carrying the template.")
	f.IntVar(&c.index, "index", 0, "Template index as shown by 'mbk recurs'.")
}

func (c *recurringDeleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.index <= 0 {
		return fail(fmt.Errorf("both -account and a positive -index are required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	r, err := p.DeleteRecurring(c.account, c.index)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted recurring %q of %s per month\n", r.Description, r.Amount)
	return subcommands.ExitSuccess
}

type recurringListCmd struct {
	account string
}

func (*recurringListCmd) Name() string     { return "recurs" }
func (*recurringListCmd) Synopsis() string { return "list the recurring transactions of an account" }
func (*recurringListCmd) Usage() string {
	return `mbk recurs -account <saving>

  Lists the recurring templates of a saving account with their next
  occurrence dates.
`
}

func (c *recurringListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Saving account to list.")
}

func (c *recurringListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return fail(fmt.Errorf("-account is required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	list, err := p.ListRecurring(c.account)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RecurringMarkdown(c.account, list))
	return subcommands.ExitSuccess
}

type updateCmd struct {
	date string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "materialize due recurring transactions" }
func (*updateCmd) Usage() string {
	return `mbk update [-date <dd/mm/yyyy>]

  Walks every saving account and materializes the recurring transactions
  due up to the given date (defaults to today). Running it twice for the
  same date generates nothing new.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Run the update as of this date.")
}

func (c *updateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	date, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	if err := p.Update(date); err != nil {
		return fail(err)
	}
	fmt.Printf("Accounts updated to %s\n", date)
	return subcommands.ExitSuccess
}

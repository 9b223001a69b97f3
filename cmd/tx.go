package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/corvid/moneybook"
	"github.com/corvid/moneybook/renderer"
)

type spendCmd struct {
	account     string
	description string
	amount      string
	date        string
	category    string
}

func (*spendCmd) Name() string     { return "spend" }
func (*spendCmd) Synopsis() string { return "record an expenditure on a bank account" }
func (*spendCmd) Usage() string {
	return `mbk spend -account <name> -desc <text> -amount <n> [-date <dd/mm/yyyy>] [-category <text>]

  Records an expenditure and deducts it from the account balance. Fails
  when the balance cannot cover the amount.
`
}

func (c *spendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Bank account to charge.")
	f.StringVar(&c.description, "desc", "", "What the money was spent on.")
	f.StringVar(&c.amount, "amount", "", "Amount spent.")
	f.StringVar(&c.date, "date", "", "Transaction date, defaults to today.")
	f.StringVar(&c.category, "category", "Miscellaneous", "Spending category.")
}

func (c *spendCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.description == "" {
		return fail(fmt.Errorf("both -account and -desc are required"))
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return fail(err)
	}
	date, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	index, err := p.AddExpenditure(c.account, c.description, amount, date, c.category)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded expenditure #%d of %s on %q\n", index, amount, c.account)
	return subcommands.ExitSuccess
}

type receiveCmd struct {
	account     string
	description string
	amount      string
	date        string
	category    string
}

func (*receiveCmd) Name() string     { return "receive" }
func (*receiveCmd) Synopsis() string { return "record a deposit into a bank account" }
func (*receiveCmd) Usage() string {
	return `mbk receive -account <name> -desc <text> -amount <n> [-date <dd/mm/yyyy>] [-category <text>]

  Records a deposit and adds it to the account balance.
`
}

func (c *receiveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Bank account to credit.")
	f.StringVar(&c.description, "desc", "", "Where the money came from.")
	f.StringVar(&c.amount, "amount", "", "Amount received.")
	f.StringVar(&c.date, "date", "", "Transaction date, defaults to today.")
	f.StringVar(&c.category, "category", "Deposit", "Deposit category.")
}

func (c *receiveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.description == "" {
		return fail(fmt.Errorf("both -account and -desc are required"))
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return fail(err)
	}
	date, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	index, err := p.AddDeposit(c.account, c.description, amount, date, c.category)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded deposit #%d of %s into %q\n", index, amount, c.account)
	return subcommands.ExitSuccess
}

type txEditCmd struct {
	account     string
	index       int
	description string
	amount      string
	date        string
	category    string
}

func (*txEditCmd) Name() string     { return "tx-edit" }
func (*txEditCmd) Synopsis() string { return "edit a bank transaction" }
func (*txEditCmd) Usage() string {
	return `mbk tx-edit -account <name> -index <n> [-desc <text>] [-amount <n>] [-date <dd/mm/yyyy>] [-category <text>]

  Overwrites the given fields of a transaction and adjusts the account
  balance by the amount difference. Fails when the adjusted balance would
  go negative.
`
}

func (c *txEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Bank account holding the transaction.")
	f.IntVar(&c.index, "index", 0, "Transaction index as shown by 'mbk tx'.")
	f.StringVar(&c.description, "desc", "", "New description.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
	f.StringVar(&c.date, "date", "", "New date.")
	f.StringVar(&c.category, "category", "", "New category.")
}

func (c *txEditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.index <= 0 {
		return fail(fmt.Errorf("both -account and a positive -index are required"))
	}
	var patch moneybook.TransactionPatch
	patch.Description = optString(c.description)
	patch.Category = optString(c.category)
	if c.amount != "" {
		amount, err := parseAmount(c.amount)
		if err != nil {
			return fail(err)
		}
		patch.Amount = &amount
	}
	if c.date != "" {
		date, err := moneybook.ParseDate(c.date)
		if err != nil {
			return fail(err)
		}
		patch.Date = &date
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	tx, err := p.EditTransaction(c.account, c.index, patch)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Edited transaction #%d: %s %s\n", c.index, tx.Description, tx.Amount)
	return subcommands.ExitSuccess
}

type txDeleteCmd struct {
	account string
	index   int
}

func (*txDeleteCmd) Name() string     { return "tx-del" }
func (*txDeleteCmd) Synopsis() string { return "delete a bank transaction" }
func (*txDeleteCmd) Usage() string {
	return `mbk tx-del -account <name> -index <n>

  Deletes a transaction and reverses its effect on the account balance.
  A deposit cannot be deleted when doing so would overdraw the account.
`
}

func (c *txDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Bank account holding the transaction.")
	f.IntVar(&c.index, "index", 0, "Transaction index as shown by 'mbk tx'.")
}

func (c *txDeleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.index <= 0 {
		return fail(fmt.Errorf("both -account and a positive -index are required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	tx, err := p.DeleteTransaction(c.account, c.index)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted %s %q of %s\n", tx.Kind, tx.Description, tx.Amount)
	return subcommands.ExitSuccess
}

type txListCmd struct {
	account string
	number  int
	kind    string
}

func (*txListCmd) Name() string     { return "tx" }
func (*txListCmd) Synopsis() string { return "list bank transactions, most recent first" }
func (*txListCmd) Usage() string {
	return `mbk tx -account <name> [-n <count>] [-kind expenditure|deposit]

  Lists the most recent transactions of an account.
`
}

func (c *txListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Bank account to list.")
	f.IntVar(&c.number, "n", 30, "Maximum number of entries.")
	f.StringVar(&c.kind, "kind", "expenditure", "Entry kind: expenditure or deposit.")
}

func (c *txListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return fail(fmt.Errorf("-account is required"))
	}
	kind, err := moneybook.ParseKind(c.kind)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	list, err := p.ListTransactions(c.account, c.number, kind)
	if err != nil {
		return fail(err)
	}
	title := fmt.Sprintf("%ss of %s", kind, c.account)
	printMarkdown(renderer.TransactionsMarkdown(title, list))
	return subcommands.ExitSuccess
}

type findCmd struct {
	account  string
	card     string
	from     string
	to       string
	contains string
	category string
}

func (*findCmd) Name() string     { return "find" }
func (*findCmd) Synopsis() string { return "search bank or card transactions" }
func (*findCmd) Usage() string {
	return `mbk find {-account <name> | -card <name>} [-from <dd/mm/yyyy>] [-to <dd/mm/yyyy>] [-desc <text>] [-category <text>]

  Searches an account's or a card's transactions. Description and
  category match as case-insensitive substrings; all given criteria
  must match. Card searches cover unpaid and paid entries separately.
`
}

func (c *findCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Bank account to search.")
	f.StringVar(&c.card, "card", "", "Credit card to search instead of an account.")
	f.StringVar(&c.from, "from", "", "Earliest date, inclusive.")
	f.StringVar(&c.to, "to", "", "Latest date, inclusive.")
	f.StringVar(&c.contains, "desc", "", "Description substring.")
	f.StringVar(&c.category, "category", "", "Category substring.")
}

func (c *findCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.account == "") == (c.card == "") {
		return fail(fmt.Errorf("exactly one of -account or -card is required"))
	}
	r, err := parseRange(c.from, c.to)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	if c.card != "" {
		unpaid, paid, err := p.FindCardTransactions(c.card, r, c.contains, c.category)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.FoundMarkdown("Unpaid matches on "+c.card, unpaid))
		printMarkdown(renderer.FoundMarkdown("Paid matches on "+c.card, paid))
		return subcommands.ExitSuccess
	}
	found, err := p.FindTransactions(c.account, r, c.contains, c.category)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.FoundMarkdown("Matches in "+c.account, found))
	return subcommands.ExitSuccess
}

func parseRange(from, to string) (moneybook.Range, error) {
	var r moneybook.Range
	var err error
	if from != "" {
		if r.From, err = moneybook.ParseDate(from); err != nil {
			return r, err
		}
	}
	if to != "" {
		if r.To, err = moneybook.ParseDate(to); err != nil {
			return r, err
		}
	}
	return r, nil
}

type transferCmd struct {
	from   string
	to     string
	amount string
	date   string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move funds between two bank accounts" }
func (*transferCmd) Usage() string {
	return `mbk transfer -from <account> -to <account> -amount <n> [-date <dd/mm/yyyy>]

  Moves funds between two accounts as one operation: an expenditure on the
  source and a deposit on the destination. Nothing moves when the source
  cannot cover the amount.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account.")
	f.StringVar(&c.to, "to", "", "Destination account.")
	f.StringVar(&c.amount, "amount", "", "Amount to move.")
	f.StringVar(&c.date, "date", "", "Transfer date, defaults to today.")
}

func (c *transferCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" {
		return fail(fmt.Errorf("both -from and -to are required"))
	}
	if c.from == c.to {
		return fail(fmt.Errorf("cannot transfer from %q to itself", c.from))
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return fail(err)
	}
	date, err := parseDate(c.date)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	if err := p.Transfer(c.from, c.to, amount, date); err != nil {
		return fail(err)
	}
	fmt.Printf("Transferred %s from %q to %q\n", amount, c.from, c.to)
	return subcommands.ExitSuccess
}

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

type cardAddCmd struct {
	name   string
	limit  string
	rebate string
}

func (*cardAddCmd) Name() string     { return "card-add" }
func (*cardAddCmd) Synopsis() string { return "add a credit card" }
func (*cardAddCmd) Usage() string {
	return `mbk card-add -name <name> -limit <n> [-rebate <percent>]

  Adds a credit card with a monthly spending limit and a cash rebate rate.
`
}

func (c *cardAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Card name, unique across cards.")
	f.StringVar(&c.limit, "limit", "", "Monthly spending limit.")
	f.StringVar(&c.rebate, "rebate", "0", "Cash rebate in percent, e.g. 1.5.")
}

func (c *cardAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return fail(fmt.Errorf("-name is required"))
	}
	limit, err := parseAmount(c.limit)
	if err != nil {
		return fail(err)
	}
	rebate, err := decimal.NewFromString(c.rebate)
	if err != nil {
		return fail(fmt.Errorf("rebate %q: %v", c.rebate, err))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	if err := p.AddCard(moneybook.NewCard(c.name, limit, rebate)); err != nil {
		return fail(err)
	}
	fmt.Printf("Added card %q with limit %s\n", c.name, limit)
	return subcommands.ExitSuccess
}

type cardEditCmd struct {
	name    string
	newName string
	limit   string
	rebate  string
}

func (*cardEditCmd) Name() string     { return "card-edit" }
func (*cardEditCmd) Synopsis() string { return "edit a credit card" }
func (*cardEditCmd) Usage() string {
	return `mbk card-edit -name <name> [-to <new name>] [-limit <n>] [-rebate <percent>]

  Overwrites the given fields of a card. A new limit must cover the
  current unpaid spend.
`
}

func (c *cardEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Card to edit.")
	f.StringVar(&c.newName, "to", "", "New card name.")
	f.StringVar(&c.limit, "limit", "", "New monthly limit.")
	f.StringVar(&c.rebate, "rebate", "", "New rebate in percent.")
}

func (c *cardEditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return fail(fmt.Errorf("-name is required"))
	}
	var patch moneybook.CardPatch
	patch.NewName = optString(c.newName)
	if c.limit != "" {
		limit, err := parseAmount(c.limit)
		if err != nil {
			return fail(err)
		}
		patch.Limit = &limit
	}
	if c.rebate != "" {
		rebate, err := decimal.NewFromString(c.rebate)
		if err != nil {
			return fail(fmt.Errorf("rebate %q: %v", c.rebate, err))
		}
		patch.Rebate = &rebate
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	card, err := p.EditCard(c.name, patch)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Edited card %q, remaining limit %s\n", card.Name, card.Remaining)
	return subcommands.ExitSuccess
}

type cardDeleteCmd struct {
	name string
}

func (*cardDeleteCmd) Name() string     { return "card-del" }
func (*cardDeleteCmd) Synopsis() string { return "delete a credit card" }
func (*cardDeleteCmd) Usage() string {
	return `mbk card-del -name <name>

  Deletes a card with its paid and unpaid transactions.
`
}

func (c *cardDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Card to delete.")
}

func (c *cardDeleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return fail(fmt.Errorf("-name is required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	card, err := p.DeleteCard(c.name)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted card %q\n", card.Name)
	return subcommands.ExitSuccess
}

type cardListCmd struct{}

func (*cardListCmd) Name() string     { return "cards" }
func (*cardListCmd) Synopsis() string { return "list the credit cards" }
func (*cardListCmd) Usage() string {
	return `mbk cards

  Lists every card with its limit, remaining limit, and rebate.
`
}
func (*cardListCmd) SetFlags(*flag.FlagSet) {}

func (*cardListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.CardsMarkdown(p.Cards))
	return subcommands.ExitSuccess
}

type cardSpendCmd struct {
	card        string
	description string
	amount      string
	date        string
	category    string
}

func (*cardSpendCmd) Name() string     { return "card-spend" }
func (*cardSpendCmd) Synopsis() string { return "charge an expenditure to a credit card" }
func (*cardSpendCmd) Usage() string {
	return `mbk card-spend -card <name> -desc <text> -amount <n> [-date <dd/mm/yyyy>] [-category <text>]

  Charges an expenditure to a card, consuming its remaining monthly limit.
`
}

func (c *cardSpendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card, "card", "", "Card to charge.")
	f.StringVar(&c.description, "desc", "", "What the money was spent on.")
	f.StringVar(&c.amount, "amount", "", "Amount spent.")
	f.StringVar(&c.date, "date", "", "Transaction date, defaults to today.")
	f.StringVar(&c.category, "category", "Miscellaneous", "Spending category.")
}

func (c *cardSpendCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.card == "" || c.description == "" {
		return fail(fmt.Errorf("both -card and -desc are required"))
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
	index, err := p.AddCardExpenditure(c.card, c.description, amount, date, c.category)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Charged #%d of %s to card %q\n", index, amount, c.card)
	return subcommands.ExitSuccess
}

type cardTxEditCmd struct {
	card        string
	index       int
	description string
	amount      string
	date        string
	category    string
}

func (*cardTxEditCmd) Name() string     { return "card-tx-edit" }
func (*cardTxEditCmd) Synopsis() string { return "edit an unpaid card expenditure" }
func (*cardTxEditCmd) Usage() string {
	return `mbk card-tx-edit -card <name> -index <n> [-desc <text>] [-amount <n>] [-date <dd/mm/yyyy>] [-category <text>]

  Overwrites the given fields of an unpaid card expenditure and adjusts
  the remaining limit. Entries of already paid bills cannot be edited.
`
}

func (c *cardTxEditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card, "card", "", "Card holding the expenditure.")
	f.IntVar(&c.index, "index", 0, "Expenditure index as shown by 'mbk card-tx'.")
	f.StringVar(&c.description, "desc", "", "New description.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
	f.StringVar(&c.date, "date", "", "New date.")
	f.StringVar(&c.category, "category", "", "New category.")
}

func (c *cardTxEditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.card == "" || c.index <= 0 {
		return fail(fmt.Errorf("both -card and a positive -index are required"))
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
	tx, err := p.EditCardExpenditure(c.card, c.index, patch)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Edited card expenditure #%d: %s %s\n", c.index, tx.Description, tx.Amount)
	return subcommands.ExitSuccess
}

type cardTxDeleteCmd struct {
	card  string
	index int
}

func (*cardTxDeleteCmd) Name() string     { return "card-tx-del" }
func (*cardTxDeleteCmd) Synopsis() string { return "delete an unpaid card expenditure" }
func (*cardTxDeleteCmd) Usage() string {
	return `mbk card-tx-del -card <name> -index <n>

  Deletes an unpaid card expenditure, releasing its amount back into the
  remaining limit.
`
}

func (c *cardTxDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card, "card", "", "Card holding the expenditure.")
	f.IntVar(&c.index, "index", 0, "Expenditure index as shown by 'mbk card-tx'.")
}

func (c *cardTxDeleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.card == "" || c.index <= 0 {
		return fail(fmt.Errorf("both -card and a positive -index are required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	tx, err := p.DeleteCardExpenditure(c.card, c.index)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted card expenditure %q of %s\n", tx.Description, tx.Amount)
	return subcommands.ExitSuccess
}

type cardTxListCmd struct {
	card   string
	number int
}

func (*cardTxListCmd) Name() string     { return "card-tx" }
func (*cardTxListCmd) Synopsis() string { return "list unpaid card expenditures, most recent first" }
func (*cardTxListCmd) Usage() string {
	return `mbk card-tx -card <name> [-n <count>]

  Lists the most recent unpaid expenditures of a card.
`
}

func (c *cardTxListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card, "card", "", "Card to list.")
	f.IntVar(&c.number, "n", 30, "Maximum number of entries.")
}

func (c *cardTxListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.card == "" {
		return fail(fmt.Errorf("-card is required"))
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	list, err := p.ListCardTransactions(c.card, c.number)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TransactionsMarkdown("Unpaid expenditures of "+c.card, list))
	return subcommands.ExitSuccess
}

type billCmd struct {
	card  string
	month string
	paid  bool
}

func (*billCmd) Name() string     { return "bill" }
func (*billCmd) Synopsis() string { return "show a card's bill amount for a month" }
func (*billCmd) Usage() string {
	return `mbk bill -card <name> [-month <mm/yyyy>] [-paid]

  Shows the unpaid bill total of a card for a month, or the already
  settled total with -paid. The month defaults to the current one.
`
}

func (c *billCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card, "card", "", "Card to bill.")
	f.StringVar(&c.month, "month", "", "Bill month as mm/yyyy.")
	f.BoolVar(&c.paid, "paid", false, "Show the settled total instead.")
}

func (c *billCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.card == "" {
		return fail(fmt.Errorf("-card is required"))
	}
	month, err := parseMonth(c.month)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	var bill moneybook.Money
	if c.paid {
		bill, err = p.PaidBillAmount(c.card, month)
	} else {
		bill, err = p.BillAmount(c.card, month)
	}
	if err != nil {
		return fail(err)
	}
	state := "Unpaid"
	if c.paid {
		state = "Paid"
	}
	fmt.Printf("%s bill of %q for %s: %s\n", state, c.card, month, bill)
	return subcommands.ExitSuccess
}

type billPayCmd struct {
	card  string
	bank  string
	month string
}

func (*billPayCmd) Name() string     { return "bill-pay" }
func (*billPayCmd) Synopsis() string { return "settle a card's monthly bill from a bank account" }
func (*billPayCmd) Usage() string {
	return `mbk bill-pay -card <name> -account <bank> [-month <mm/yyyy>]

  Charges the card's unpaid total for the month to the bank account,
  credits the card rebate back, and marks the month's expenditures paid.
`
}

func (c *billPayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card, "card", "", "Card whose bill is settled.")
	f.StringVar(&c.bank, "account", "", "Bank account paying the bill.")
	f.StringVar(&c.month, "month", "", "Bill month as mm/yyyy.")
}

func (c *billPayCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.card == "" || c.bank == "" {
		return fail(fmt.Errorf("both -card and -account are required"))
	}
	month, err := parseMonth(c.month)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	bill, err := p.PayBill(c.card, c.bank, month)
	if err != nil {
		return fail(err)
	}
	card, _ := p.Cards.Get(c.card)
	printMarkdown(renderer.BillMarkdown(c.card, month, bill, card.RebateFor(bill)))
	return subcommands.ExitSuccess
}

type billUnpayCmd struct {
	card  string
	month string
}

func (*billUnpayCmd) Name() string     { return "bill-unpay" }
func (*billUnpayCmd) Synopsis() string { return "revert a card's monthly bill to unpaid" }
func (*billUnpayCmd) Usage() string {
	return `mbk bill-unpay -card <name> [-month <mm/yyyy>]

  Moves the month's paid expenditures back to unpaid, consuming the
  remaining limit again. The bank-side payment and rebate entries stay;
  delete them with 'mbk tx-del' if the payment itself was a mistake.
`
}

func (c *billUnpayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card, "card", "", "Card whose bill is reverted.")
	f.StringVar(&c.month, "month", "", "Bill month as mm/yyyy.")
}

func (c *billUnpayCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.card == "" {
		return fail(fmt.Errorf("-card is required"))
	}
	month, err := parseMonth(c.month)
	if err != nil {
		return fail(err)
	}
	p, err := loadProfile()
	if err != nil {
		return fail(err)
	}
	amount, err := p.UnpayBill(c.card, month)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Reverted %s of %q for %s to unpaid\n", amount, c.card, month)
	return subcommands.ExitSuccess
}

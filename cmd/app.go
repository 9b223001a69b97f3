// Package cmd implements the CLI application to manage a money book.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/corvid/moneybook"
)

// Commands lists every subcommand with its help section. A main package
// registers them all and executes the user-selected one.
var Commands = []struct {
	Cmd     subcommands.Command
	Section string
}{
	{&initCmd{}, "profile"},
	{&overviewCmd{}, "profile"},
	{&renameCmd{}, "profile"},

	{&accountAddCmd{}, "accounts"},
	{&accountEditCmd{}, "accounts"},
	{&accountDeleteCmd{}, "accounts"},
	{&accountListCmd{}, "accounts"},

	{&spendCmd{}, "transactions"},
	{&receiveCmd{}, "transactions"},
	{&txEditCmd{}, "transactions"},
	{&txDeleteCmd{}, "transactions"},
	{&txListCmd{}, "transactions"},
	{&findCmd{}, "transactions"},
	{&transferCmd{}, "transactions"},

	{&cardAddCmd{}, "cards"},
	{&cardEditCmd{}, "cards"},
	{&cardDeleteCmd{}, "cards"},
	{&cardListCmd{}, "cards"},
	{&cardSpendCmd{}, "cards"},
	{&cardTxEditCmd{}, "cards"},
	{&cardTxDeleteCmd{}, "cards"},
	{&cardTxListCmd{}, "cards"},
	{&billCmd{}, "cards"},
	{&billPayCmd{}, "cards"},
	{&billUnpayCmd{}, "cards"},

	{&bondAddCmd{}, "bonds"},
	{&bondEditCmd{}, "bonds"},
	{&bondDeleteCmd{}, "bonds"},
	{&bondListCmd{}, "bonds"},

	{&recurringAddCmd{}, "recurring"},
	{&recurringEditCmd{}, "recurring"},
	{&recurringDeleteCmd{}, "recurring"},
	{&recurringListCmd{}, "recurring"},
	{&updateCmd{}, "recurring"},

	{&goalAddCmd{}, "goals"},
	{&goalEditCmd{}, "goals"},
	{&goalDeleteCmd{}, "goals"},
	{&goalListCmd{}, "goals"},
}

// loadProfile opens the configured store and loads the profile. Partial
// load failures are reported as warnings and the readable part of the
// profile is used.
func loadProfile() (*moneybook.Profile, error) {
	cfg, err := moneybook.LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Apply()
	store, err := moneybook.NewStore(cfg.Dir)
	if err != nil {
		return nil, err
	}
	if !store.Exists() {
		return nil, fmt.Errorf("no profile in %s, run 'mbk init' first", cfg.Dir)
	}
	p, err := store.Load(nil)
	if p == nil {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: some records could not be loaded:\n%v\n", err)
	}
	return p, nil
}

// fail prints the error and maps it to a command exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

// printMarkdown renders a markdown string to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// raw markdown is still readable
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

package moneybook

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Flat-file codec. Each entity kind has an Encode function writing a CSV
// document with a header row, and a Decode function reading one back.
// Decode functions are strict: a malformed row fails with the row number
// wrapped around ErrImport, and the caller decides how much of the partial
// result to keep.

// Column headers, one set per file kind.
var (
	profileHeader     = []string{"name"}
	accountHeader     = []string{"name", "type", "balance", "income"}
	transactionHeader = []string{"id", "description", "amount", "date", "category", "kind"}
	recurringHeader   = []string{"description", "amount", "category", "kind", "next"}
	bondHeader        = []string{"name", "amount", "rate", "date", "years"}
	cardHeader        = []string{"name", "limit", "rebate"}
	goalHeader        = []string{"name", "target", "date", "account"}
)

// readRows consumes a whole CSV document, checks the header, and returns
// the data rows. Rows are validated for field count by the csv reader
// against the header width.
func readRows(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrImport)
	}
	for i, name := range header {
		if rows[0][i] != name {
			return nil, fmt.Errorf("%w: header column %d is %q, want %q", ErrImport, i+1, rows[0][i], name)
		}
	}
	return rows[1:], nil
}

func writeRows(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// rowErr tags a row-level decode failure with its 1-based data row number.
func rowErr(row int, err error) error {
	return fmt.Errorf("row %d: %w: %v", row+1, ErrImport, err)
}

// EncodeProfile writes the profile identity file.
func EncodeProfile(w io.Writer, username string) error {
	return writeRows(w, profileHeader, [][]string{{username}})
}

// DecodeProfile reads the profile identity file back.
func DecodeProfile(r io.Reader) (username string, err error) {
	rows, err := readRows(r, profileHeader)
	if err != nil {
		return "", err
	}
	if len(rows) != 1 {
		return "", fmt.Errorf("%w: want exactly one profile row, got %d", ErrImport, len(rows))
	}
	return rows[0][0], nil
}

// EncodeAccounts writes the account registry, one row per account in
// registry order. Ledgers, recurring templates, and bonds live in their
// own files keyed by the account's position here.
func EncodeAccounts(w io.Writer, accounts *AccountList) error {
	rows := make([][]string, 0, accounts.Len())
	for _, a := range accounts.All() {
		rows = append(rows, []string{a.Name, a.Variant.String(), a.Balance.text(), a.Income.text()})
	}
	return writeRows(w, accountHeader, rows)
}

// DecodeAccounts reads the account registry back. The returned accounts
// carry name, variant, balance, and income only; their transaction files
// are loaded separately.
func DecodeAccounts(r io.Reader) ([]*Account, error) {
	rows, err := readRows(r, accountHeader)
	if err != nil {
		return nil, err
	}
	accounts := make([]*Account, 0, len(rows))
	for i, row := range rows {
		variant, err := ParseVariant(row[1])
		if err != nil {
			return accounts, rowErr(i, err)
		}
		balance, err := ParseMoney(row[2])
		if err != nil {
			return accounts, rowErr(i, err)
		}
		income, err := ParseMoney(row[3])
		if err != nil {
			return accounts, rowErr(i, err)
		}
		var a *Account
		switch variant {
		case Saving:
			a = NewSaving(row[0], balance, income)
		case Investment:
			a = NewInvestment(row[0], balance)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func transactionRow(tx Transaction) []string {
	return []string{
		tx.ID.String(),
		tx.Description,
		tx.Amount.text(),
		tx.Date.Format(FileDateFormat),
		tx.Category,
		tx.Kind.String(),
	}
}

func parseTransaction(row []string) (Transaction, error) {
	id, err := uuid.Parse(row[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction id: %v", err)
	}
	amount, err := ParseMoney(row[2])
	if err != nil {
		return Transaction{}, err
	}
	date, err := ParseDate(row[3])
	if err != nil {
		return Transaction{}, err
	}
	kind, err := ParseKind(row[5])
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:          id,
		Description: row[1],
		Amount:      amount,
		Date:        date,
		Category:    row[4],
		Kind:        kind,
	}, nil
}

// EncodeLedger writes a transaction list in ledger order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	rows := make([][]string, 0, l.Len())
	for _, tx := range l.All() {
		rows = append(rows, transactionRow(tx))
	}
	return writeRows(w, transactionHeader, rows)
}

// DecodeLedger reads a transaction list back in file order. On a row
// failure the transactions decoded so far are returned alongside the
// error.
func DecodeLedger(r io.Reader) ([]Transaction, error) {
	rows, err := readRows(r, transactionHeader)
	if err != nil {
		return nil, err
	}
	txs := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := parseTransaction(row)
		if err != nil {
			return txs, rowErr(i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// EncodeRecurring writes an account's recurring templates.
func EncodeRecurring(w io.Writer, rl *RecurringList) error {
	list, err := rl.List()
	if err != nil {
		list = nil
	}
	rows := make([][]string, 0, len(list))
	for _, rt := range list {
		rows = append(rows, []string{
			rt.Description,
			rt.Amount.text(),
			rt.Category,
			rt.Kind.String(),
			rt.Next.Format(FileDateFormat),
		})
	}
	return writeRows(w, recurringHeader, rows)
}

// DecodeRecurring reads recurring templates back in file order.
func DecodeRecurring(r io.Reader) ([]RecurringTransaction, error) {
	rows, err := readRows(r, recurringHeader)
	if err != nil {
		return nil, err
	}
	list := make([]RecurringTransaction, 0, len(rows))
	for i, row := range rows {
		amount, err := ParseMoney(row[1])
		if err != nil {
			return list, rowErr(i, err)
		}
		kind, err := ParseKind(row[3])
		if err != nil {
			return list, rowErr(i, err)
		}
		next, err := ParseDate(row[4])
		if err != nil {
			return list, rowErr(i, err)
		}
		list = append(list, RecurringTransaction{
			Description: row[0],
			Amount:      amount,
			Category:    row[2],
			Kind:        kind,
			Next:        next,
		})
	}
	return list, nil
}

// EncodeBonds writes an account's bond holding.
func EncodeBonds(w io.Writer, bl *BondLedger) error {
	list, err := bl.List(bl.Len())
	if err != nil {
		list = nil
	}
	rows := make([][]string, 0, len(list))
	for _, b := range list {
		rows = append(rows, []string{
			b.Name,
			b.Amount.text(),
			b.Rate.String(),
			b.PurchaseDate.Format(FileDateFormat),
			strconv.Itoa(b.TermYears),
		})
	}
	return writeRows(w, bondHeader, rows)
}

// DecodeBonds reads a bond holding back in file order.
func DecodeBonds(r io.Reader) ([]Bond, error) {
	rows, err := readRows(r, bondHeader)
	if err != nil {
		return nil, err
	}
	list := make([]Bond, 0, len(rows))
	for i, row := range rows {
		amount, err := ParseMoney(row[1])
		if err != nil {
			return list, rowErr(i, err)
		}
		rate, err := decimal.NewFromString(row[2])
		if err != nil {
			return list, rowErr(i, err)
		}
		date, err := ParseDate(row[3])
		if err != nil {
			return list, rowErr(i, err)
		}
		years, err := strconv.Atoi(row[4])
		if err != nil {
			return list, rowErr(i, err)
		}
		list = append(list, Bond{
			Name:         row[0],
			Amount:       amount,
			Rate:         rate,
			PurchaseDate: date,
			TermYears:    years,
		})
	}
	return list, nil
}

// EncodeCards writes the card registry in registry order. The remaining
// limit is not stored: it is recomputed at load time from the limit and
// the unpaid transaction file.
func EncodeCards(w io.Writer, cards *CardList) error {
	rows := make([][]string, 0, cards.Len())
	for _, c := range cards.All() {
		rows = append(rows, []string{c.Name, c.Limit.text(), c.Rebate.String()})
	}
	return writeRows(w, cardHeader, rows)
}

// DecodeCards reads the card registry back. The returned cards carry no
// transactions; their files are loaded separately.
func DecodeCards(r io.Reader) ([]*Card, error) {
	rows, err := readRows(r, cardHeader)
	if err != nil {
		return nil, err
	}
	cards := make([]*Card, 0, len(rows))
	for i, row := range rows {
		limit, err := ParseMoney(row[1])
		if err != nil {
			return cards, rowErr(i, err)
		}
		rebate, err := decimal.NewFromString(row[2])
		if err != nil {
			return cards, rowErr(i, err)
		}
		cards = append(cards, NewCard(row[0], limit, rebate))
	}
	return cards, nil
}

// EncodeGoals writes the goal registry. An untied goal has an empty
// account column.
func EncodeGoals(w io.Writer, goals *GoalList) error {
	rows := make([][]string, 0, goals.Len())
	for _, g := range goals.All() {
		rows = append(rows, []string{
			g.Name,
			g.Target.text(),
			g.TargetDate.Format(FileDateFormat),
			g.TiedAccount,
		})
	}
	return writeRows(w, goalHeader, rows)
}

// DecodeGoals reads the goal registry back. Ties are returned as stored;
// the loader is responsible for untying goals whose account no longer
// exists.
func DecodeGoals(r io.Reader) ([]*Goal, error) {
	rows, err := readRows(r, goalHeader)
	if err != nil {
		return nil, err
	}
	goals := make([]*Goal, 0, len(rows))
	for i, row := range rows {
		target, err := ParseMoney(row[1])
		if err != nil {
			return goals, rowErr(i, err)
		}
		date, err := ParseDate(row[2])
		if err != nil {
			return goals, rowErr(i, err)
		}
		goals = append(goals, &Goal{
			Name:        row[0],
			Target:      target,
			TargetDate:  date,
			TiedAccount: row[3],
		})
	}
	return goals, nil
}

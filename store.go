package moneybook

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// File names inside a store directory. Per-account and per-card files are
// keyed by the entity's position in its registry file, so renames never
// touch transaction files.
const (
	profileFile = "profile.csv"
	bankFile    = "profile_banklist.csv"
	cardFile    = "profile_cardlist.csv"
	goalFile    = "profile_goallist.csv"
)

func savingLedgerFile(i int) string    { return fmt.Sprintf("%d_saving_transactionList.csv", i) }
func savingRecurringFile(i int) string { return fmt.Sprintf("%d_saving_recurring_transactionList.csv", i) }
func investmentLedgerFile(i int) string { return fmt.Sprintf("%d_investment_transactionList.csv", i) }
func investmentBondFile(i int) string   { return fmt.Sprintf("%d_investment_bondList.csv", i) }
func cardUnpaidFile(i int) string       { return fmt.Sprintf("%d_card_unpaid_transactionList.csv", i) }
func cardPaidFile(i int) string         { return fmt.Sprintf("%d_card_paid_transactionList.csv", i) }

// ownedFile matches every file name the store may have written, so Save
// can sweep stale indexed files without touching anything else in the
// directory.
var ownedFile = regexp.MustCompile(`^(profile(_banklist|_cardlist|_goallist)?|\d+_(saving|investment|card)_\w+)\.csv$`)

// Store persists a whole profile as flat CSV files under one directory.
// Every file is written through a temp file and an atomic rename, so a
// crash mid-save never leaves a half-written file behind.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, creating the directory if
// needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Exists reports whether the directory already holds a profile.
func (s *Store) Exists() bool {
	_, err := os.Stat(filepath.Join(s.dir, profileFile))
	return err == nil
}

func (s *Store) writeFile(name string, encode func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

// Save writes the whole profile graph. Indexed files belonging to entities
// that no longer exist are removed, so a load never resurrects a deleted
// account's transactions.
func (s *Store) Save(p *Profile) error {
	written := map[string]bool{
		profileFile: true,
		bankFile:    true,
		cardFile:    true,
		goalFile:    true,
	}
	if err := s.writeFile(profileFile, func(b *bytes.Buffer) error {
		return EncodeProfile(b, p.Username)
	}); err != nil {
		return err
	}
	if err := s.writeFile(bankFile, func(b *bytes.Buffer) error {
		return EncodeAccounts(b, p.Accounts)
	}); err != nil {
		return err
	}
	for i, a := range p.Accounts.All() {
		var ledgerName string
		switch a.Variant {
		case Saving:
			ledgerName = savingLedgerFile(i)
			name := savingRecurringFile(i)
			written[name] = true
			rl, _ := a.Recurring()
			if err := s.writeFile(name, func(b *bytes.Buffer) error {
				return EncodeRecurring(b, rl)
			}); err != nil {
				return err
			}
		case Investment:
			ledgerName = investmentLedgerFile(i)
			name := investmentBondFile(i)
			written[name] = true
			bl, _ := a.Bonds()
			if err := s.writeFile(name, func(b *bytes.Buffer) error {
				return EncodeBonds(b, bl)
			}); err != nil {
				return err
			}
		}
		written[ledgerName] = true
		if err := s.writeFile(ledgerName, func(b *bytes.Buffer) error {
			return EncodeLedger(b, a.Ledger())
		}); err != nil {
			return err
		}
	}
	if err := s.writeFile(cardFile, func(b *bytes.Buffer) error {
		return EncodeCards(b, p.Cards)
	}); err != nil {
		return err
	}
	for i, c := range p.Cards.All() {
		unpaidName, paidName := cardUnpaidFile(i), cardPaidFile(i)
		written[unpaidName], written[paidName] = true, true
		if err := s.writeFile(unpaidName, func(b *bytes.Buffer) error {
			return EncodeLedger(b, c.Unpaid())
		}); err != nil {
			return err
		}
		if err := s.writeFile(paidName, func(b *bytes.Buffer) error {
			return EncodeLedger(b, c.Paid())
		}); err != nil {
			return err
		}
	}
	if err := s.writeFile(goalFile, func(b *bytes.Buffer) error {
		return EncodeGoals(b, p.Goals)
	}); err != nil {
		return err
	}
	return s.sweep(written)
}

// sweep removes store-owned files that the last Save did not write.
func (s *Store) sweep(written map[string]bool) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || written[name] || !ownedFile.MatchString(name) {
			continue
		}
		if strings.Contains(name, ".tmp-") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the profile back. A corrupt or missing sub-file does not
// abort the load: everything readable is kept and the failures come back
// joined, each wrapping ErrImport, alongside the partial profile. Only a
// missing or unreadable profile.csv makes Load return a nil profile.
//
// Replayed transactions do not re-apply to balances: the stored balance is
// the current one, and the ledgers are history.
func (s *Store) Load(clock Clock) (*Profile, error) {
	username, err := s.loadUsername()
	if err != nil {
		return nil, err
	}
	p := NewProfile(username, clock)
	var errs error
	fail := func(name string, err error) {
		errs = errors.Join(errs, fmt.Errorf("%s: %w", name, err))
	}

	accounts, err := s.loadAccounts()
	if err != nil {
		fail(bankFile, err)
	}
	for i, a := range accounts {
		if err := p.Accounts.Add(a); err != nil {
			fail(bankFile, err)
			continue
		}
		var ledgerName string
		switch a.Variant {
		case Saving:
			ledgerName = savingLedgerFile(i)
			name := savingRecurringFile(i)
			list, err := s.loadRecurring(name)
			if err != nil {
				fail(name, err)
			}
			if rl, err := a.Recurring(); err == nil {
				for _, rt := range list {
					if _, err := rl.Add(rt); err != nil {
						fail(name, err)
						break
					}
				}
			}
		case Investment:
			ledgerName = investmentLedgerFile(i)
			name := investmentBondFile(i)
			list, err := s.loadBonds(name)
			if err != nil {
				fail(name, err)
			}
			if bl, err := a.Bonds(); err == nil {
				for _, b := range list {
					if err := bl.Add(b); err != nil {
						fail(name, err)
						break
					}
				}
			}
		}
		txs, err := s.loadLedger(ledgerName)
		if err != nil {
			fail(ledgerName, err)
		}
		for _, tx := range txs {
			a.importTransaction(tx)
		}
	}

	cards, err := s.loadCards()
	if err != nil {
		fail(cardFile, err)
	}
	for i, c := range cards {
		if err := p.Cards.Add(c); err != nil {
			fail(cardFile, err)
			continue
		}
		name := cardUnpaidFile(i)
		txs, err := s.loadLedger(name)
		if err != nil {
			fail(name, err)
		}
		for _, tx := range txs {
			c.importUnpaid(tx)
		}
		name = cardPaidFile(i)
		txs, err = s.loadLedger(name)
		if err != nil {
			fail(name, err)
		}
		for _, tx := range txs {
			c.importPaid(tx)
		}
	}

	goals, err := s.loadGoals()
	if err != nil {
		fail(goalFile, err)
	}
	for _, g := range goals {
		if g.TiedAccount != "" {
			if _, err := p.Accounts.Get(g.TiedAccount); err != nil {
				fail(goalFile, fmt.Errorf("goal %q untied: %w: account %q no longer exists", g.Name, ErrImport, g.TiedAccount))
				g.TiedAccount = ""
			}
		}
		if err := p.Goals.Add(g); err != nil {
			fail(goalFile, err)
		}
	}

	p.store = s
	return p, errs
}

func (s *Store) open(name string) (*bytes.Reader, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func (s *Store) loadUsername() (string, error) {
	r, err := s.open(profileFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("no profile in %s: %w", s.dir, err)
		}
		return "", err
	}
	return DecodeProfile(r)
}

func (s *Store) loadAccounts() ([]*Account, error) {
	r, err := s.open(bankFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	return DecodeAccounts(r)
}

func (s *Store) loadLedger(name string) ([]Transaction, error) {
	r, err := s.open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	return DecodeLedger(r)
}

func (s *Store) loadRecurring(name string) ([]RecurringTransaction, error) {
	r, err := s.open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	return DecodeRecurring(r)
}

func (s *Store) loadBonds(name string) ([]Bond, error) {
	r, err := s.open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	return DecodeBonds(r)
}

func (s *Store) loadCards() ([]*Card, error) {
	r, err := s.open(cardFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	return DecodeCards(r)
}

func (s *Store) loadGoals() ([]*Goal, error) {
	r, err := s.open(goalFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	return DecodeGoals(r)
}

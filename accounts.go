package moneybook

import (
	"fmt"
	"iter"
)

// AccountList is the name-keyed registry of bank accounts. It preserves
// insertion order for listing and keeps an index map for O(1) lookup.
// Names are unique across the whole registry, regardless of variant.
type AccountList struct {
	accounts []*Account
	byName   map[string]*Account
}

// NewAccountList creates an empty registry.
func NewAccountList() *AccountList {
	return &AccountList{byName: make(map[string]*Account)}
}

// Len returns the number of registered accounts.
func (al *AccountList) Len() int { return len(al.accounts) }

// Add registers an account. It fails with ErrDuplicateName when the name is
// already taken by any account.
func (al *AccountList) Add(a *Account) error {
	if _, ok := al.byName[a.Name]; ok {
		return fmt.Errorf("account %q: %w", a.Name, ErrDuplicateName)
	}
	al.accounts = append(al.accounts, a)
	al.byName[a.Name] = a
	return nil
}

// Get returns the account with the given name.
func (al *AccountList) Get(name string) (*Account, error) {
	a, ok := al.byName[name]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", name, ErrNotFound)
	}
	return a, nil
}

// Delete removes the named account and returns it. Deleting the sole
// remaining account fails with ErrLastAccountProtected.
func (al *AccountList) Delete(name string) (*Account, error) {
	a, err := al.Get(name)
	if err != nil {
		return nil, err
	}
	if len(al.accounts) == 1 {
		return nil, fmt.Errorf("account %q: %w", name, ErrLastAccountProtected)
	}
	for i, other := range al.accounts {
		if other == a {
			al.accounts = append(al.accounts[:i], al.accounts[i+1:]...)
			break
		}
	}
	delete(al.byName, name)
	return a, nil
}

// Rename changes an account's name, preserving its position. It fails with
// ErrDuplicateName when the new name is already taken.
func (al *AccountList) Rename(name, newName string) error {
	a, err := al.Get(name)
	if err != nil {
		return err
	}
	if name == newName {
		return nil
	}
	if _, ok := al.byName[newName]; ok {
		return fmt.Errorf("account %q: %w", newName, ErrDuplicateName)
	}
	delete(al.byName, name)
	a.Name = newName
	al.byName[newName] = a
	return nil
}

// All returns an iterator over the accounts in insertion order, paired with
// their 0-based position (the key of the per-account data files).
func (al *AccountList) All() iter.Seq2[int, *Account] {
	return func(yield func(int, *Account) bool) {
		for i, a := range al.accounts {
			if !yield(i, a) {
				return
			}
		}
	}
}

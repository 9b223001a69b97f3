package moneybook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultBondCapacity bounds the bond holding of an Investment account.
const DefaultBondCapacity = 20

// Bond is a fixed-term, fixed-rate instrument held within an Investment
// account. Its name is unique within the owning account.
type Bond struct {
	Name         string
	Amount       Money
	Rate         decimal.Decimal // annual rate in percent
	PurchaseDate Date
	TermYears    int
}

// BondLedger is the capacity-bounded, name-keyed collection of bonds of one
// Investment account. Insertion order is preserved for listing.
type BondLedger struct {
	bonds    []Bond
	capacity int
}

func newBondLedger(capacity int) BondLedger {
	if capacity <= 0 {
		capacity = DefaultBondCapacity
	}
	return BondLedger{capacity: capacity}
}

// Len returns the number of bonds held.
func (bl *BondLedger) Len() int { return len(bl.bonds) }

// IsFull reports whether the holding reached its capacity.
func (bl *BondLedger) IsFull() bool { return len(bl.bonds) >= bl.capacity }

func (bl *BondLedger) indexOf(name string) int {
	for i, b := range bl.bonds {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Add inserts a bond. It fails with ErrCapacityExceeded at capacity and
// with ErrDuplicateName when a bond with that name is already held.
func (bl *BondLedger) Add(b Bond) error {
	if bl.IsFull() {
		return fmt.Errorf("bond holding is limited to %d bonds: %w", bl.capacity, ErrCapacityExceeded)
	}
	if bl.indexOf(b.Name) >= 0 {
		return fmt.Errorf("bond %q: %w", b.Name, ErrDuplicateName)
	}
	bl.bonds = append(bl.bonds, b)
	return nil
}

// Get returns the bond with the given name.
func (bl *BondLedger) Get(name string) (Bond, error) {
	i := bl.indexOf(name)
	if i < 0 {
		return Bond{}, fmt.Errorf("bond %q: %w", name, ErrNotFound)
	}
	return bl.bonds[i], nil
}

// Edit overwrites the supplied fields of the named bond. Only the rate and
// the term can change after purchase.
func (bl *BondLedger) Edit(name string, rate *decimal.Decimal, termYears *int) (Bond, error) {
	i := bl.indexOf(name)
	if i < 0 {
		return Bond{}, fmt.Errorf("bond %q: %w", name, ErrNotFound)
	}
	if rate != nil {
		bl.bonds[i].Rate = *rate
	}
	if termYears != nil {
		bl.bonds[i].TermYears = *termYears
	}
	return bl.bonds[i], nil
}

// Delete removes the named bond.
func (bl *BondLedger) Delete(name string) (Bond, error) {
	i := bl.indexOf(name)
	if i < 0 {
		return Bond{}, fmt.Errorf("bond %q: %w", name, ErrNotFound)
	}
	b := bl.bonds[i]
	bl.bonds = append(bl.bonds[:i], bl.bonds[i+1:]...)
	return b, nil
}

// List returns up to max bonds in insertion order. It fails with
// ErrEmptyList when the holding is empty.
func (bl *BondLedger) List(max int) ([]Bond, error) {
	if len(bl.bonds) == 0 {
		return nil, fmt.Errorf("no bonds: %w", ErrEmptyList)
	}
	if max <= 0 || max > len(bl.bonds) {
		max = len(bl.bonds)
	}
	out := make([]Bond, max)
	copy(out, bl.bonds[:max])
	return out, nil
}

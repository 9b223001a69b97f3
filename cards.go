package moneybook

import (
	"fmt"
	"iter"
)

// CardList is the name-keyed registry of credit cards, insertion-ordered
// like AccountList.
type CardList struct {
	cards  []*Card
	byName map[string]*Card
}

// NewCardList creates an empty registry.
func NewCardList() *CardList {
	return &CardList{byName: make(map[string]*Card)}
}

// Len returns the number of registered cards.
func (cl *CardList) Len() int { return len(cl.cards) }

// Add registers a card. It fails with ErrDuplicateName when the name is
// already taken.
func (cl *CardList) Add(c *Card) error {
	if _, ok := cl.byName[c.Name]; ok {
		return fmt.Errorf("card %q: %w", c.Name, ErrDuplicateName)
	}
	cl.cards = append(cl.cards, c)
	cl.byName[c.Name] = c
	return nil
}

// Get returns the card with the given name.
func (cl *CardList) Get(name string) (*Card, error) {
	c, ok := cl.byName[name]
	if !ok {
		return nil, fmt.Errorf("card %q: %w", name, ErrNotFound)
	}
	return c, nil
}

// Delete removes the named card and returns it.
func (cl *CardList) Delete(name string) (*Card, error) {
	c, err := cl.Get(name)
	if err != nil {
		return nil, err
	}
	for i, other := range cl.cards {
		if other == c {
			cl.cards = append(cl.cards[:i], cl.cards[i+1:]...)
			break
		}
	}
	delete(cl.byName, name)
	return c, nil
}

// Rename changes a card's name, preserving its position.
func (cl *CardList) Rename(name, newName string) error {
	c, err := cl.Get(name)
	if err != nil {
		return err
	}
	if name == newName {
		return nil
	}
	if _, ok := cl.byName[newName]; ok {
		return fmt.Errorf("card %q: %w", newName, ErrDuplicateName)
	}
	delete(cl.byName, name)
	c.Name = newName
	cl.byName[newName] = c
	return nil
}

// All returns an iterator over the cards in insertion order with their
// 0-based position.
func (cl *CardList) All() iter.Seq2[int, *Card] {
	return func(yield func(int, *Card) bool) {
		for i, c := range cl.cards {
			if !yield(i, c) {
				return
			}
		}
	}
}

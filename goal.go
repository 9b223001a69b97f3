package moneybook

import (
	"fmt"
	"iter"
)

// Goal is a savings target. TiedAccount optionally names the Saving
// account tracking progress toward it; the reference is advisory and is
// cleared when that account is deleted.
type Goal struct {
	Name        string
	Target      Money
	TargetDate  Date
	TiedAccount string // "" when not tied
}

// GoalList is the name-keyed registry of goals, insertion-ordered.
type GoalList struct {
	goals  []*Goal
	byName map[string]*Goal
}

// NewGoalList creates an empty registry.
func NewGoalList() *GoalList {
	return &GoalList{byName: make(map[string]*Goal)}
}

// Len returns the number of registered goals.
func (gl *GoalList) Len() int { return len(gl.goals) }

// Add registers a goal. It fails with ErrDuplicateName when the name is
// already taken.
func (gl *GoalList) Add(g *Goal) error {
	if _, ok := gl.byName[g.Name]; ok {
		return fmt.Errorf("goal %q: %w", g.Name, ErrDuplicateName)
	}
	gl.goals = append(gl.goals, g)
	gl.byName[g.Name] = g
	return nil
}

// Get returns the goal with the given name.
func (gl *GoalList) Get(name string) (*Goal, error) {
	g, ok := gl.byName[name]
	if !ok {
		return nil, fmt.Errorf("goal %q: %w", name, ErrNotFound)
	}
	return g, nil
}

// Delete removes the named goal.
func (gl *GoalList) Delete(name string) (*Goal, error) {
	g, err := gl.Get(name)
	if err != nil {
		return nil, err
	}
	for i, other := range gl.goals {
		if other == g {
			gl.goals = append(gl.goals[:i], gl.goals[i+1:]...)
			break
		}
	}
	delete(gl.byName, name)
	return g, nil
}

// Rename changes a goal's name, preserving its position.
func (gl *GoalList) Rename(name, newName string) error {
	g, err := gl.Get(name)
	if err != nil {
		return err
	}
	if name == newName {
		return nil
	}
	if _, ok := gl.byName[newName]; ok {
		return fmt.Errorf("goal %q: %w", newName, ErrDuplicateName)
	}
	delete(gl.byName, name)
	g.Name = newName
	gl.byName[newName] = g
	return nil
}

// ClearTies resets to none the tie of every goal referencing the given
// Saving account. Invoked by the orchestrator when the account is deleted
// so no goal is left dangling.
func (gl *GoalList) ClearTies(accountName string) {
	for _, g := range gl.goals {
		if g.TiedAccount == accountName {
			g.TiedAccount = ""
		}
	}
}

// All returns an iterator over the goals in insertion order.
func (gl *GoalList) All() iter.Seq2[int, *Goal] {
	return func(yield func(int, *Goal) bool) {
		for i, g := range gl.goals {
			if !yield(i, g) {
				return
			}
		}
	}
}

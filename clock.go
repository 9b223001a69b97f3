package moneybook

import "time"

// Clock supplies the current date to operations that are date-bound
// (recurring updates, default transaction dates). Injecting it keeps the
// scheduler deterministic in tests.
type Clock interface {
	Today() Date
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() Date

func (f ClockFunc) Today() Date { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(func() Date { return NewDate(time.Now().Date()) })

// FixedClock returns a Clock frozen at the given date.
func FixedClock(on Date) Clock { return ClockFunc(func() Date { return on }) }

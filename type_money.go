package moneybook

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayCurrency is the ISO code used to format amounts for display.
// The ledger itself is single-currency; this only affects String().
var displayCurrency = "SGD"

// SetDisplayCurrency changes the currency code used to render amounts.
func SetDisplayCurrency(code string) { displayCurrency = code }

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value in the profile's single currency.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal amount from its persisted form.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }

// MulRate returns m scaled by a percentage rate (rate of 1.5 means 1.5%).
// The result is rounded to the currency's minor unit so a derived amount
// reads back from its persisted form unchanged.
func (m Money) MulRate(rate decimal.Decimal) Money {
	cur := *money.New(0, displayCurrency).Currency()
	v := m.value.Mul(rate).Div(decimal.NewFromInt(100))
	return Money{value: v.Round(int32(cur.Fraction))}
}

// String returns the amount formatted with the display currency.
func (m Money) String() string {
	cur := *money.New(0, displayCurrency).Currency()
	shifted := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.IntPart())
}

// text returns the canonical persisted form: a plain decimal with the
// currency's minor-unit precision and no symbol.
func (m Money) text() string {
	cur := *money.New(0, displayCurrency).Currency()
	return m.value.StringFixed(int32(cur.Fraction))
}

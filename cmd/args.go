package cmd

import (
	"fmt"

	"github.com/corvid/moneybook"
)

// Flag parsing helpers shared by the commands. Amount flags must be
// strictly positive, date flags default to today, month flags to the
// current month.

func parseAmount(s string) (moneybook.Money, error) {
	if s == "" {
		return moneybook.Money{}, fmt.Errorf("missing -amount")
	}
	m, err := moneybook.ParseMoney(s)
	if err != nil {
		return moneybook.Money{}, err
	}
	if !m.IsPositive() {
		return moneybook.Money{}, fmt.Errorf("amount %s must be positive", s)
	}
	return m, nil
}

func parseDate(s string) (moneybook.Date, error) {
	if s == "" {
		return moneybook.SystemClock.Today(), nil
	}
	return moneybook.ParseDate(s)
}

func parseMonth(s string) (moneybook.YearMonth, error) {
	if s == "" {
		return moneybook.SystemClock.Today().YearMonth(), nil
	}
	return moneybook.ParseYearMonth(s)
}

// optString returns nil when the flag was left empty.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

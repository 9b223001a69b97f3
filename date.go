package moneybook

import (
	"fmt"
	"strings"
	"time"
)

// FileDateFormat is the format used to persist dates in the data files.
const FileDateFormat = "02/01/2006"

// readDateFormat is a permissive variant accepted when parsing user input
// (allows single-digit day/month).
const readDateFormat = "2/1/2006"

// Date represents a calendar date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// String formats the date in the data file format.
func (d Date) String() string { return d.time().Format(FileDateFormat) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// AddMonth returns a new Date with the given number of months added. A day
// past the end of the target month clamps to its last day, so a schedule
// anchored on the 31st still fires in February.
func (d Date) AddMonth(i int) Date {
	// day 0 of the following month is the target month's last day
	last := time.Date(d.y, d.m+time.Month(i)+1, 0, 0, 0, 0, 0, time.UTC)
	day := d.d
	if day > last.Day() {
		day = last.Day()
	}
	return NewDate(last.Year(), last.Month(), day)
}

// YearMonth returns the bill month containing d.
func (d Date) YearMonth() YearMonth { return YearMonth{y: d.y, m: d.m} }

// ParseDate parses a Date from a string in dd/MM/yyyy form.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q want format dd/mm/yyyy", ErrInvalidDate, str)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error. For tests and fixtures.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// YearMonth represents a calendar year-month, the granularity a credit card
// statement aggregates.
type YearMonth struct {
	y int
	m time.Month
}

// NewYearMonth returns a normalized YearMonth.
func NewYearMonth(year int, month time.Month) YearMonth {
	d := NewDate(year, month, 1)
	return YearMonth{y: d.y, m: d.m}
}

// Year returns the year of the bill month.
func (ym YearMonth) Year() int { return ym.y }

// Month returns the month of the bill month.
func (ym YearMonth) Month() time.Month { return ym.m }

// IsZero returns true if the bill month is the zero value.
func (ym YearMonth) IsZero() bool { return ym.y == 0 && ym.m == 0 }

func (ym YearMonth) String() string {
	return time.Date(ym.y, ym.m, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Contains reports whether the given date falls within the bill month.
func (ym YearMonth) Contains(d Date) bool { return d.y == ym.y && d.m == ym.m }

// ParseYearMonth parses a YearMonth from a string in MM/yyyy form.
func ParseYearMonth(str string) (YearMonth, error) {
	str = strings.TrimSpace(str)
	on, err := time.Parse("1/2006", str)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q want format mm/yyyy", ErrInvalidDate, str)
	}
	return NewYearMonth(on.Year(), on.Month()), nil
}

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// IsZero returns true if the range is unbounded (no date filter).
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains returns true if date is included in the range (boundaries
// included). A zero boundary leaves that side unbounded.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

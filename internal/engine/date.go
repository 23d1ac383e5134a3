package engine

import (
	"fmt"
	"time"

	"github.com/hardfinhq/go-date"
	"github.com/tartampluch/go-age/internal/config"
)

// DateTriple is the raw, unvalidated birth date as typed by the user.
type DateTriple struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// CalendarDate is a real calendar date. Month is 1-based.
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// monthLengths is indexed by month-1 for a common year.
var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the length of month (1..12) in year.
func DaysInMonth(month, year int) int {
	return daysInMonth(month, IsLeapYear(year))
}

func daysInMonth(month int, leap bool) int {
	if month == 2 && leap {
		return 29
	}
	return monthLengths[month-1]
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: int(m), Day: d}
}

// FromDate converts from the go-date representation.
func FromDate(d date.Date) CalendarDate {
	return CalendarDate{Year: d.Year, Month: int(d.Month), Day: d.Day}
}

// Date converts to the go-date representation.
func (d CalendarDate) Date() date.Date {
	return date.Date{Year: d.Year, Month: time.Month(d.Month), Day: d.Day}
}

// Time returns midnight of d in loc.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func (d CalendarDate) Before(other CalendarDate) bool { return d.Compare(other) < 0 }
func (d CalendarDate) After(other CalendarDate) bool  { return d.Compare(other) > 0 }

// Triple renders d as zero-padded input fields.
func (d CalendarDate) Triple() DateTriple {
	return DateTriple{
		Day:   fmt.Sprintf("%02d", d.Day),
		Month: fmt.Sprintf("%02d", d.Month),
		Year:  fmt.Sprintf("%04d", d.Year),
	}
}

// String returns the ISO 8601 form YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler so dates serialise as ISO strings.
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses an ISO 8601 date through go-date, which rejects impossible dates.
func (d *CalendarDate) UnmarshalText(text []byte) error {
	parsed, err := date.FromString(string(text))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	*d = FromDate(parsed)
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

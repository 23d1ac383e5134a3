package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/go-age/internal/config"
)

// Field names one of the three date inputs.
type Field string

const (
	FieldDay   Field = "day"
	FieldMonth Field = "month"
	FieldYear  Field = "year"
)

// Fields lists the inputs in display order.
var Fields = []Field{FieldDay, FieldMonth, FieldYear}

// ErrorKind classifies a validation failure.
type ErrorKind int

const (
	NoError ErrorKind = iota
	EmptyField
	InvalidField
	FutureDate
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyField:
		return "empty"
	case InvalidField:
		return "invalid"
	case FutureDate:
		return "future"
	default:
		return "none"
	}
}

// MarshalText renders the kind by name in JSON maps and bodies.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ValidationErrors accumulates every problem found in one validation pass.
// Fields holds per-input errors; Future is the whole-input FutureDate error and
// is only ever set once all three fields are structurally valid.
type ValidationErrors struct {
	Fields map[Field]ErrorKind `json:"errors,omitempty"`
	Future bool                `json:"future"`
}

// Valid reports whether no error was recorded.
func (v ValidationErrors) Valid() bool {
	return len(v.Fields) == 0 && !v.Future
}

// Kind returns the error recorded for f, NoError if there is none.
func (v ValidationErrors) Kind(f Field) ErrorKind {
	return v.Fields[f]
}

// Error lists the failing fields in display order.
func (v ValidationErrors) Error() string {
	if v.Future {
		return config.ErrFutureDate
	}
	parts := make([]string, 0, len(v.Fields))
	for _, f := range Fields {
		if k, ok := v.Fields[f]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", f, k))
		}
	}
	return fmt.Sprintf("%s: %s", config.ErrValidation, strings.Join(parts, ", "))
}

// add records the first failure for f; later ones for the same field are ignored.
func (v *ValidationErrors) add(f Field, kind ErrorKind) {
	if v.Fields == nil {
		v.Fields = make(map[Field]ErrorKind)
	}
	if _, exists := v.Fields[f]; !exists {
		v.Fields[f] = kind
	}
}

// check records kind for f when ok is false.
func (v *ValidationErrors) check(ok bool, f Field, kind ErrorKind) {
	if !ok {
		v.add(f, kind)
	}
}

// Validate checks triple against the calendar and today. All three fields are
// checked independently; the future-date check only runs when they all pass.
// A failure is returned as ValidationErrors.
func Validate(triple DateTriple, today CalendarDate) (CalendarDate, error) {
	var v ValidationErrors

	if triple.Day == "" {
		v.add(FieldDay, EmptyField)
	} else {
		v.check(validDay(triple), FieldDay, InvalidField)
	}

	if triple.Month == "" {
		v.add(FieldMonth, EmptyField)
	} else {
		v.check(validMonth(triple.Month), FieldMonth, InvalidField)
	}

	if triple.Year == "" {
		v.add(FieldYear, EmptyField)
	} else {
		v.check(validYear(triple.Year, today.Year), FieldYear, InvalidField)
	}

	if !v.Valid() {
		return CalendarDate{}, v
	}

	// Every field is now a zero-padded run of digits.
	day, _ := strconv.Atoi(triple.Day)
	month, _ := strconv.Atoi(triple.Month)
	year, _ := strconv.Atoi(triple.Year)
	birth := CalendarDate{Year: year, Month: month, Day: day}

	if birth.After(today) {
		return CalendarDate{}, ValidationErrors{Future: true}
	}
	return birth, nil
}

// validDay checks the day against the length of the entered month. A month
// that is empty or out of range is clamped to 1..12 for the lookup; a month
// that is not a number at all leaves the day unverifiable, hence invalid.
func validDay(t DateTriple) bool {
	if len(t.Day) != config.DayDigits || !isDigits(t.Day) {
		return false
	}
	month, ok := monthNumber(t.Month)
	if !ok {
		return false
	}
	day, _ := strconv.Atoi(t.Day)
	limit := daysInMonth(clamp(month, config.MinMonth, config.MaxMonth), leapInput(t.Year))
	return day >= config.MinDay && day <= limit
}

func validMonth(s string) bool {
	if len(s) != config.MonthDigits || !isDigits(s) {
		return false
	}
	m, _ := strconv.Atoi(s)
	return m >= config.MinMonth && m <= config.MaxMonth
}

func validYear(s string, currentYear int) bool {
	if len(s) != config.YearDigits || !isDigits(s) {
		return false
	}
	y, _ := strconv.Atoi(s)
	return y <= currentYear
}

// monthNumber reads the raw month for the day-range lookup. Empty reads as 0.
func monthNumber(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	if !isDigits(s) {
		return 0, false
	}
	m, err := strconv.Atoi(s)
	if err != nil {
		// Too many digits for an int: clamps to December like any large month.
		return config.MaxMonth, true
	}
	return m, true
}

// leapInput reports whether the raw year denotes a leap year. An empty year
// reads as year 0, which is a leap year; an unparsable one as a common year.
func leapInput(s string) bool {
	if s == "" {
		return IsLeapYear(0)
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return IsLeapYear(y)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func clamp(value, lo, hi int) int {
	if value > hi {
		return hi
	}
	if value < lo {
		return lo
	}
	return value
}

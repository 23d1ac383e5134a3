package engine

import (
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// AgeDifference is an elapsed age in calendar units.
type AgeDifference struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// Age subtracts birth from today with month and year borrowing, the way a
// person counts "X years, Y months, Z days". A day borrow uses the length of
// the birth month in the birth year. birth must not be after today.
func Age(birth, today CalendarDate) AgeDifference {
	yearDiff := today.Year - birth.Year
	var monthDiff, dayDiff int

	if today.Month < birth.Month {
		yearDiff--
		monthDiff = config.MonthsPerYear - birth.Month + today.Month
	} else {
		monthDiff = today.Month - birth.Month
	}

	if (today.Month < birth.Month && today.Day <= birth.Day) || today.Day < birth.Day {
		monthDiff--
		if monthDiff < 0 {
			yearDiff--
			monthDiff = config.MonthsPerYear - 1
		}
		dayDiff = DaysInMonth(birth.Month, birth.Year) - birth.Day + today.Day
	} else {
		dayDiff = today.Day - birth.Day
	}

	return AgeDifference{Years: yearDiff, Months: monthDiff, Days: dayDiff}
}

// Anniversary describes the next birthday on or after a reference day.
type Anniversary struct {
	Date      CalendarDate `json:"date"`
	Turning   int          `json:"turning"`
	DaysUntil int          `json:"days_until"`
}

// NextBirthday determines the next birthday relative to today.
// A 29 February birthday falls on 1 March in common years.
func NextBirthday(birth, today CalendarDate) Anniversary {
	// Day arithmetic in UTC is free of DST gaps.
	todayStart := today.Time(time.UTC)

	// time.Date normalizes Feb 29 to March 1st in common years.
	candidate := time.Date(today.Year, time.Month(birth.Month), birth.Day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(todayStart) {
		candidate = time.Date(today.Year+1, time.Month(birth.Month), birth.Day, 0, 0, 0, 0, time.UTC)
	}

	return Anniversary{
		Date:      DateOf(candidate),
		Turning:   candidate.Year() - birth.Year,
		DaysUntil: int(candidate.Sub(todayStart).Hours() / 24),
	}
}

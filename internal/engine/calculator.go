package engine

import (
	"errors"
	"log/slog"

	"github.com/tartampluch/go-age/internal/config"
)

// Result is everything a presenter needs to display a successful computation.
type Result struct {
	Birth CalendarDate  `json:"birth"`
	Age   AgeDifference `json:"age"`
	Next  Anniversary   `json:"next_birthday"`
}

// Presenter renders the outcome of a submission. The desktop form, the CLI
// and the HTTP API each provide one; the engine never touches widgets.
type Presenter interface {
	ShowAge(Result)
	ShowErrors(ValidationErrors)
	Clear()
}

// Calculator wires validation and age computation to a clock.
// It holds no state between calls.
type Calculator struct {
	Clock Clock
}

// NewCalculator returns a Calculator reading today from clock.
// A nil clock means the host's local clock.
func NewCalculator(clock Clock) *Calculator {
	if clock == nil {
		clock = RealClock{}
	}
	return &Calculator{Clock: clock}
}

// Today reads the current calendar date from the clock.
func (c *Calculator) Today() CalendarDate {
	return DateOf(c.Clock.Now())
}

// Evaluate validates triple and, on success, computes the age against today.
// Validation failures are returned as ValidationErrors.
func (c *Calculator) Evaluate(triple DateTriple) (Result, error) {
	today := c.Today()

	birth, err := Validate(triple, today)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Birth: birth,
		Age:   Age(birth, today),
		Next:  NextBirthday(birth, today),
	}, nil
}

// Submit runs one validate-then-compute pass and hands the outcome to p.
// Previous output is cleared first so nothing from an earlier pass survives.
func (c *Calculator) Submit(p Presenter, triple DateTriple) error {
	p.Clear()

	res, err := c.Evaluate(triple)
	if err != nil {
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		slog.Debug(config.MsgInputRejected,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyFields, len(verrs.Fields),
			config.LogKeyFuture, verrs.Future,
		)
		p.ShowErrors(verrs)
		return err
	}

	slog.Debug(config.MsgAgeComputed,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyBirth, res.Birth.String(),
		config.LogKeyToday, c.Today().String(),
		config.LogKeyYears, res.Age.Years,
		config.LogKeyMonths, res.Age.Months,
		config.LogKeyDays, res.Age.Days,
	)
	p.ShowAge(res)
	return nil
}

// Reset clears the presenter without computing anything.
func (c *Calculator) Reset(p Presenter) {
	p.Clear()
}

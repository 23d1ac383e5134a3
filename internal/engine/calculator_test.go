package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// recordingPresenter captures every call in order.
type recordingPresenter struct {
	calls  []string
	result engine.Result
	errs   engine.ValidationErrors
}

func (p *recordingPresenter) ShowAge(r engine.Result) {
	p.calls = append(p.calls, "age")
	p.result = r
}

func (p *recordingPresenter) ShowErrors(e engine.ValidationErrors) {
	p.calls = append(p.calls, "errors")
	p.errs = e
}

func (p *recordingPresenter) Clear() {
	p.calls = append(p.calls, "clear")
}

func newTestCalculator() *engine.Calculator {
	// Late evening so a UTC conversion would roll over to the next day.
	return engine.NewCalculator(MockClock{CurrentTime: time.Date(2024, 1, 1, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))})
}

func TestCalculator_Today_UsesClockLocation(t *testing.T) {
	assert.Equal(t, d(2024, 1, 1), newTestCalculator().Today())
}

func TestCalculator_Submit_Success(t *testing.T) {
	calc := newTestCalculator()
	p := &recordingPresenter{}

	err := calc.Submit(p, engine.DateTriple{Day: "15", Month: "03", Year: "2000"})

	require.NoError(t, err)
	assert.Equal(t, []string{"clear", "age"}, p.calls)
	assert.Equal(t, engine.AgeDifference{Years: 23, Months: 9, Days: 17}, p.result.Age)
	assert.Equal(t, d(2000, 3, 15), p.result.Birth)
	assert.Equal(t, d(2024, 3, 15), p.result.Next.Date)
	assert.Equal(t, 24, p.result.Next.Turning)
}

func TestCalculator_Submit_ValidationFailure(t *testing.T) {
	calc := newTestCalculator()
	p := &recordingPresenter{}

	err := calc.Submit(p, engine.DateTriple{Day: "", Month: "05", Year: "2000"})

	require.Error(t, err)
	assert.Equal(t, []string{"clear", "errors"}, p.calls, "no age may be shown on failure")
	assert.Equal(t, engine.EmptyField, p.errs.Kind(engine.FieldDay))
}

func TestCalculator_Submit_Future(t *testing.T) {
	calc := newTestCalculator()
	p := &recordingPresenter{}

	err := calc.Submit(p, engine.DateTriple{Day: "02", Month: "01", Year: "2024"})

	require.Error(t, err)
	assert.True(t, p.errs.Future)
	assert.Empty(t, p.errs.Fields)
}

func TestCalculator_Submit_ClearsBetweenPasses(t *testing.T) {
	calc := newTestCalculator()
	p := &recordingPresenter{}

	_ = calc.Submit(p, engine.DateTriple{Day: "15", Month: "03", Year: "2000"})
	_ = calc.Submit(p, engine.DateTriple{Day: "99", Month: "03", Year: "2000"})

	assert.Equal(t, []string{"clear", "age", "clear", "errors"}, p.calls)
}

func TestCalculator_Reset(t *testing.T) {
	p := &recordingPresenter{}
	newTestCalculator().Reset(p)
	assert.Equal(t, []string{"clear"}, p.calls)
}

func TestNewCalculator_DefaultsToRealClock(t *testing.T) {
	calc := engine.NewCalculator(nil)
	assert.IsType(t, engine.RealClock{}, calc.Clock)
}

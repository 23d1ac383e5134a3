package engine_test

import (
	"bytes"
	"testing"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func decodeCalendar(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err, "output must be valid iCalendar")
	return cal
}

func TestBirthdayCalendar_Events(t *testing.T) {
	data, err := engine.BirthdayCalendar("Ada", d(2024, 3, 10), d(2025, 6, 15))
	require.NoError(t, err)

	cal := decodeCalendar(t, data)
	events := cal.Events()
	require.Len(t, events, 3)

	var starts, summaries []string
	uids := make(map[string]bool)
	for _, e := range events {
		starts = append(starts, e.Props.Get(ical.PropDateTimeStart).Value)
		summary, err := e.Props.Text(ical.PropSummary)
		require.NoError(t, err)
		summaries = append(summaries, summary)
		uid, err := e.Props.Text(ical.PropUID)
		require.NoError(t, err)
		uids[uid] = true
	}

	assert.Equal(t, []string{"20240310", "20250310", "20260310"}, starts)
	assert.Equal(t, []string{"Birthday: Ada (birth)", "Birthday: Ada (1)", "Birthday: Ada (2)"}, summaries)
	assert.Len(t, uids, 3, "UIDs must be unique per year")
}

func TestBirthdayCalendar_SkipsYearsBeforeBirth(t *testing.T) {
	data, err := engine.BirthdayCalendar("Baby", d(2025, 6, 1), d(2025, 6, 15))
	require.NoError(t, err)

	assert.Len(t, decodeCalendar(t, data).Events(), 2)
}

func TestBirthdayCalendar_LeaplingInCommonYear(t *testing.T) {
	data, err := engine.BirthdayCalendar("Leap", d(2000, 2, 29), d(2025, 6, 15))
	require.NoError(t, err)

	events := decodeCalendar(t, data).Events()
	require.Len(t, events, 3)
	assert.Equal(t, "20240229", events[0].Props.Get(ical.PropDateTimeStart).Value)
	assert.Equal(t, "20250301", events[1].Props.Get(ical.PropDateTimeStart).Value)
}

func TestBirthdayCalendar_Deterministic(t *testing.T) {
	first, err := engine.BirthdayCalendar("Ada", d(1990, 4, 12), d(2025, 6, 15))
	require.NoError(t, err)
	second, err := engine.BirthdayCalendar("Ada", d(1990, 4, 12), d(2025, 6, 15))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBirthdayCalendar_FallbackNameAndStub(t *testing.T) {
	data, err := engine.BirthdayCalendar("", d(1990, 4, 12), d(2025, 6, 15))
	require.NoError(t, err)
	summary, err := decodeCalendar(t, data).Events()[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Contains(t, summary, config.FallbackName)

	// No year in range: the stub calendar is returned.
	data, err = engine.BirthdayCalendar("Later", d(2030, 1, 1), d(2025, 6, 15))
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

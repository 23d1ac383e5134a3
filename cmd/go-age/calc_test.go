package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/engine"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var newYear2024 = fixedClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

// runCalc parses args into a fresh calcCmd and executes it.
func runCalc(t *testing.T, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()

	var out bytes.Buffer
	cmd := newCalcCmd(&out)
	cmd.clock = newYear2024

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	status := cmd.Execute(context.Background(), fs)
	return status, out.String()
}

func TestCalc_Text(t *testing.T) {
	status, out := runCalc(t, "-day", "15", "-month", "03", "-year", "2000")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t,
		"23 years, 9 months, 17 days\nnext birthday: 2024-03-15 (turning 24, in 74 days)\n",
		out)
}

func TestCalc_JSON(t *testing.T) {
	status, out := runCalc(t, "-day", "15", "-month", "03", "-year", "2000", "-json")
	require.Equal(t, subcommands.ExitSuccess, status)

	var got engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, engine.CalendarDate{Year: 2000, Month: 3, Day: 15}, got.Birth)
	assert.Equal(t, engine.AgeDifference{Years: 23, Months: 9, Days: 17}, got.Age)
	assert.Equal(t, 24, got.Next.Turning)
	assert.Equal(t, 74, got.Next.DaysUntil)
}

func TestCalc_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "Empty day and bad month",
			args: []string{"-month", "13", "-year", "2000"},
			want: "day: empty\nmonth: invalid\n",
		},
		{
			name: "Day beyond month",
			args: []string{"-day", "31", "-month", "04", "-year", "1990"},
			want: "day: invalid\n",
		},
		{
			name: "Single digit month",
			args: []string{"-day", "15", "-month", "3", "-year", "2000"},
			want: "month: invalid\n",
		},
		{
			name: "Future date",
			args: []string{"-day", "02", "-month", "01", "-year", "2024"},
			want: "date: must be in the past\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := runCalc(t, tt.args...)
			assert.Equal(t, subcommands.ExitFailure, status)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalc_ValidationErrorsJSON(t *testing.T) {
	status, out := runCalc(t, "-day", "29", "-month", "02", "-year", "2023", "-json")
	require.Equal(t, subcommands.ExitFailure, status)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, map[string]any{"day": "invalid"}, body["errors"])
	assert.Equal(t, false, body["future"])
}

func TestCalc_MissingInput(t *testing.T) {
	status, out := runCalc(t)
	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.Empty(t, out)
}

func TestCalc_VCardExcludesDateFlags(t *testing.T) {
	status, out := runCalc(t, "-vcard", "ada.vcf", "-day", "15")
	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.Empty(t, out)
}

func TestCalc_VCardAndCalendar(t *testing.T) {
	dir := t.TempDir()
	cardPath := filepath.Join(dir, "ada.vcf")
	icsPath := filepath.Join(dir, "ada.ics")
	card := "BEGIN:VCARD\nVERSION:3.0\nFN:Ada Lovelace\nBDAY:1990-04-12\nEND:VCARD\n"
	require.NoError(t, os.WriteFile(cardPath, []byte(card), 0o600))

	status, out := runCalc(t, "-vcard", cardPath, "-ics", icsPath)
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "33 years, 8 months, 19 days")

	f, err := os.Open(icsPath)
	require.NoError(t, err)
	defer f.Close()

	cal, err := ical.NewDecoder(f).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.NotEmpty(t, events)

	summary, err := events[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Contains(t, summary, "Ada Lovelace")
}

func TestCalc_VCardFailures(t *testing.T) {
	dir := t.TempDir()
	noBirthday := filepath.Join(dir, "nobody.vcf")
	require.NoError(t, os.WriteFile(noBirthday, []byte("BEGIN:VCARD\nVERSION:3.0\nFN:Nobody\nEND:VCARD\n"), 0o600))

	for name, path := range map[string]string{
		"No birthday":  noBirthday,
		"Missing file": filepath.Join(dir, "absent.vcf"),
	} {
		t.Run(name, func(t *testing.T) {
			status, out := runCalc(t, "-vcard", path)
			assert.Equal(t, subcommands.ExitFailure, status)
			assert.Empty(t, out)
		})
	}
}

func TestCalc_CalendarWriteFailure(t *testing.T) {
	icsPath := filepath.Join(t.TempDir(), "missing-dir", "out.ics")

	status, _ := runCalc(t, "-day", "15", "-month", "03", "-year", "2000", "-ics", icsPath)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.NoFileExists(t, icsPath)
}

func TestServe_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [oops"), 0o600))

	cmd := &serveCmd{configPath: path}
	assert.Equal(t, subcommands.ExitFailure, cmd.Execute(context.Background(), flag.NewFlagSet("serve", flag.ContinueOnError)))
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := &serveCmd{listen: "127.0.0.1:0", clock: newYear2024}

	done := make(chan subcommands.ExitStatus, 1)
	go func() {
		done <- cmd.Execute(ctx, flag.NewFlagSet("serve", flag.ContinueOnError))
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case status := <-done:
		assert.Equal(t, subcommands.ExitSuccess, status)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
}

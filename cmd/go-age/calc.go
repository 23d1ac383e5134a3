package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

type calcCmd struct {
	day, month, year string
	vcard            string
	icsPath          string
	asJSON           bool

	out     io.Writer
	clock   engine.Clock
	fetcher engine.VCardFetcher
}

func newCalcCmd(out io.Writer) *calcCmd {
	return &calcCmd{out: out}
}

func (*calcCmd) Name() string     { return config.CmdCalc }
func (*calcCmd) Synopsis() string { return config.SynopsisCalc }
func (*calcCmd) Usage() string    { return config.UsageCalc }

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, config.FlagDay, "", config.FlagDescDay)
	f.StringVar(&c.month, config.FlagMonth, "", config.FlagDescMonth)
	f.StringVar(&c.year, config.FlagYear, "", config.FlagDescYear)
	f.StringVar(&c.vcard, config.FlagVCard, "", config.FlagDescVCard)
	f.StringVar(&c.icsPath, config.FlagICS, "", config.FlagDescICS)
	f.BoolVar(&c.asJSON, config.FlagJSON, false, config.FlagDescJSON)
}

// Execute prints the age, or the rejected fields with a failure status.
func (c *calcCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := slog.With(config.LogKeyComponent, config.CompCLI)

	triple := engine.DateTriple{Day: c.day, Month: c.month, Year: c.year}
	name := ""

	if c.vcard != "" {
		if triple != (engine.DateTriple{}) {
			fmt.Fprintln(os.Stderr, config.ErrVCardWithDate)
			return subcommands.ExitUsageError
		}
		var err error
		triple, name, err = c.readVCard(ctx)
		if err != nil {
			log.Error(config.ErrImportFailed, config.LogKeyFile, c.vcard, config.LogKeyError, err)
			return subcommands.ExitFailure
		}
	} else if triple == (engine.DateTriple{}) {
		fmt.Fprintln(os.Stderr, config.ErrMissingInput)
		return subcommands.ExitUsageError
	}

	calc := engine.NewCalculator(c.clock)
	p := &writerPresenter{w: c.out, asJSON: c.asJSON}
	if err := calc.Submit(p, triple); err != nil {
		return subcommands.ExitFailure
	}
	if p.err != nil {
		log.Error(config.ErrWriteResp, config.LogKeyError, p.err)
		return subcommands.ExitFailure
	}

	if c.icsPath != "" {
		if err := c.writeCalendar(name, p.result.Birth, calc.Today()); err != nil {
			log.Error(config.ErrWriteICS, config.LogKeyFile, c.icsPath, config.LogKeyError, err)
			return subcommands.ExitFailure
		}
		log.Info(config.MsgICSWritten, config.LogKeyFile, c.icsPath)
	}
	return subcommands.ExitSuccess
}

func (c *calcCmd) readVCard(ctx context.Context) (engine.DateTriple, string, error) {
	rc, err := engine.OpenVCard(ctx, c.vcard, c.fetcher)
	if err != nil {
		return engine.DateTriple{}, "", err
	}
	defer func() { _ = rc.Close() }()
	return engine.ReadBirthTriple(rc)
}

func (c *calcCmd) writeCalendar(name string, birth, today engine.CalendarDate) error {
	data, err := engine.BirthdayCalendar(name, birth, today)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.icsPath, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteICS, err)
	}
	return nil
}

// writerPresenter renders results as text lines or JSON. The first write
// error is kept in err.
type writerPresenter struct {
	w      io.Writer
	asJSON bool

	result engine.Result
	err    error
}

func (p *writerPresenter) Clear() {}

func (p *writerPresenter) ShowAge(res engine.Result) {
	p.result = res
	if p.asJSON {
		p.encode(res)
		return
	}
	p.printf(config.FormatAgeText, res.Age.Years, res.Age.Months, res.Age.Days)
	p.printf(config.FormatNextText, res.Next.Date, res.Next.Turning, res.Next.DaysUntil)
}

func (p *writerPresenter) ShowErrors(verrs engine.ValidationErrors) {
	if p.asJSON {
		p.encode(verrs)
		return
	}
	if verrs.Future {
		p.printf(config.FormatFutureText)
		return
	}
	for _, field := range engine.Fields {
		if kind := verrs.Kind(field); kind != engine.NoError {
			p.printf(config.FormatFieldErrText, field, kind)
		}
	}
}

func (p *writerPresenter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *writerPresenter) encode(v any) {
	if p.err != nil {
		return
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		p.err = errors.Join(errors.New(config.ErrWriteResp), err)
	}
}

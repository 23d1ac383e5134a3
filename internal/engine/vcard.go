package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-age/internal/config"
)

// ErrNoBirthday is returned when no card in the stream carries a usable BDAY.
var ErrNoBirthday = errors.New(config.ErrNoBirthday)

// ErrBirthYearMissing is returned when the only birthdays found lack a year.
var ErrBirthYearMissing = errors.New(config.ErrBirthYearMissing)

// ReadBirthTriple scans a vCard stream and returns the birth date of the first
// card with a full BDAY, as zero-padded input fields, together with the card's
// display name. The triple is raw input: it still has to pass Validate.
func ReadBirthTriple(r io.Reader) (DateTriple, string, error) {
	decoder := vcard.NewDecoder(r)
	yearless := false

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken card ends the stream: the decoder cannot resync.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			return DateTriple{}, "", fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, yearKnown, err := parseBirthday(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}
		if !yearKnown {
			yearless = true
			continue
		}

		name := cardName(card)
		slog.Info(config.MsgVCardImported,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, name)
		return DateOf(birth).Triple(), name, nil
	}

	if yearless {
		return DateTriple{}, "", ErrBirthYearMissing
	}
	return DateTriple{}, "", ErrNoBirthday
}

// cardName picks FN (formatted) over N (structured) over a fallback.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

// parseBirthday handles the BDAY layouts found in the wild. The boolean is
// false for truncated --MM-DD values, which carry no year.
func parseBirthday(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			return t, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}

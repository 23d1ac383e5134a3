package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/engine"
)

// NumericalEntry is an Entry that only holds ASCII digits, up to MaxLength.
type NumericalEntry struct {
	widget.Entry

	// MaxLength caps the number of digits. Zero means unlimited.
	MaxLength int

	// OnFilled fires when a keystroke brings the text to MaxLength.
	OnFilled func()

	// OnEscape fires when Escape is pressed.
	OnEscape func()
}

// NewNumericalEntry creates a NumericalEntry limited to maxLength digits.
func NewNumericalEntry(maxLength int) *NumericalEntry {
	entry := &NumericalEntry{MaxLength: maxLength}
	entry.ExtendBaseWidget(entry)
	return entry
}

func (e *NumericalEntry) full() bool {
	return e.MaxLength > 0 && len(e.Text) >= e.MaxLength && e.SelectedText() == ""
}

// TypedRune accepts digits while there is room left.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' || e.full() {
		return
	}
	e.Entry.TypedRune(r)

	if e.MaxLength > 0 && len(e.Text) == e.MaxLength && e.OnFilled != nil {
		e.OnFilled()
	}
}

// TypedKey routes Escape to OnEscape and everything else to the Entry.
func (e *NumericalEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.OnEscape != nil {
		e.OnEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// TypedShortcut sanitises pasted text so only digits get in.
func (e *NumericalEntry) TypedShortcut(s fyne.Shortcut) {
	paste, ok := s.(*fyne.ShortcutPaste)
	if !ok || paste.Clipboard == nil {
		e.Entry.TypedShortcut(s)
		return
	}

	for _, r := range engine.SanitizeDigits(paste.Clipboard.Content(), e.MaxLength) {
		e.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

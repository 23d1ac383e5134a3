package ui

import (
	"io"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// fieldRow groups the widgets of one date input.
type fieldRow struct {
	caption *widget.Label
	entry   *NumericalEntry
	errLbl  *widget.Label
}

// AgeForm is the date entry form. It implements engine.Presenter.
type AgeForm struct {
	app    *GoAgeApp
	window fyne.Window

	Day   *NumericalEntry
	Month *NumericalEntry
	Year  *NumericalEntry
	rows  map[engine.Field]*fieldRow

	FutureLbl *widget.Label
	StatusLbl *widget.Label

	YearsLbl  *widget.Label
	MonthsLbl *widget.Label
	DaysLbl   *widget.Label
	NextLbl   *widget.Label

	CalcBtn   *widget.Button
	ResetBtn  *widget.Button
	ImportBtn *widget.Button

	content fyne.CanvasObject
}

// NewAgeForm creates the widgets and wires keyboard navigation between them.
func NewAgeForm(app *GoAgeApp, w fyne.Window) *AgeForm {
	f := &AgeForm{app: app, window: w}

	f.Day = f.newEntry(config.DayDigits, config.PlaceholderDay)
	f.Month = f.newEntry(config.MonthDigits, config.PlaceholderMonth)
	f.Year = f.newEntry(config.YearDigits, config.PlaceholderYear)

	// Auto-advance once a field is complete.
	f.Day.OnFilled = func() { f.focus(f.Month) }
	f.Month.OnFilled = func() { f.focus(f.Year) }

	f.rows = map[engine.Field]*fieldRow{
		engine.FieldDay:   newFieldRow(app.GetMsg(config.TKeyLblDay), f.Day),
		engine.FieldMonth: newFieldRow(app.GetMsg(config.TKeyLblMonth), f.Month),
		engine.FieldYear:  newFieldRow(app.GetMsg(config.TKeyLblYear), f.Year),
	}

	f.FutureLbl = newErrorLabel()
	f.StatusLbl = widget.NewLabel("")
	f.StatusLbl.TextStyle = fyne.TextStyle{Italic: true}

	f.YearsLbl = newOutputLabel()
	f.MonthsLbl = newOutputLabel()
	f.DaysLbl = newOutputLabel()
	f.NextLbl = widget.NewLabel("")
	f.NextLbl.Alignment = fyne.TextAlignCenter

	f.CalcBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCalculate), theme.ConfirmIcon(), f.Submit)
	f.CalcBtn.Importance = widget.HighImportance
	f.ResetBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnReset), theme.ContentClearIcon(), f.Reset)
	f.ImportBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.FolderOpenIcon(), f.showImportDialog)

	f.content = f.layout()
	f.Clear()
	return f
}

func (f *AgeForm) newEntry(maxLength int, placeholder string) *NumericalEntry {
	e := NewNumericalEntry(maxLength)
	e.PlaceHolder = placeholder
	e.OnSubmitted = func(string) { f.Submit() }
	e.OnEscape = f.Reset
	return e
}

func newFieldRow(caption string, entry *NumericalEntry) *fieldRow {
	lbl := widget.NewLabel(caption)
	lbl.TextStyle = fyne.TextStyle{Bold: true}
	return &fieldRow{caption: lbl, entry: entry, errLbl: newErrorLabel()}
}

func newErrorLabel() *widget.Label {
	lbl := widget.NewLabel("")
	lbl.Importance = widget.DangerImportance
	lbl.TextStyle = fyne.TextStyle{Italic: true}
	return lbl
}

func newOutputLabel() *widget.Label {
	lbl := widget.NewLabel(config.OutputPlaceholder)
	lbl.Importance = widget.HighImportance
	lbl.TextStyle = fyne.TextStyle{Bold: true}
	return lbl
}

func (f *AgeForm) layout() fyne.CanvasObject {
	inputs := container.NewGridWithColumns(config.LayoutColumnsTriple)
	for _, field := range engine.Fields {
		row := f.rows[field]
		inputs.Add(container.NewVBox(row.caption, row.entry, row.errLbl))
	}

	result := func(value *widget.Label, key string) fyne.CanvasObject {
		return container.NewHBox(value, widget.NewLabel(f.app.GetMsg(key)))
	}

	return container.NewPadded(container.NewVBox(
		inputs,
		f.FutureLbl,
		container.NewGridWithColumns(config.LayoutColumnsTriple, f.ResetBtn, f.ImportBtn, f.CalcBtn),
		widget.NewSeparator(),
		result(f.YearsLbl, config.TKeyLblYears),
		result(f.MonthsLbl, config.TKeyLblMonths),
		result(f.DaysLbl, config.TKeyLblDays),
		f.NextLbl,
		f.StatusLbl,
	))
}

// Content returns the root canvas object of the form.
func (f *AgeForm) Content() fyne.CanvasObject {
	return f.content
}

func (f *AgeForm) focus(e *NumericalEntry) {
	if f.window != nil {
		f.window.Canvas().Focus(e)
	}
}

// Triple returns the sanitised contents of the three entries.
func (f *AgeForm) Triple() engine.DateTriple {
	return engine.SanitizeTriple(engine.DateTriple{
		Day:   f.Day.Text,
		Month: f.Month.Text,
		Year:  f.Year.Text,
	})
}

// Submit validates the entries and shows either the age or the errors.
func (f *AgeForm) Submit() {
	// Validation failures are rendered by ShowErrors.
	_ = f.app.Calc.Submit(f, f.Triple())
}

// Reset empties the entries and every output.
func (f *AgeForm) Reset() {
	f.Day.SetText("")
	f.Month.SetText("")
	f.Year.SetText("")
	f.StatusLbl.SetText("")
	f.app.Calc.Reset(f)
	f.focus(f.Day)
	slog.Debug(config.MsgFormReset, config.LogKeyComponent, config.CompUI)
}

// ShowAge renders a successful computation.
func (f *AgeForm) ShowAge(res engine.Result) {
	f.YearsLbl.SetText(strconv.Itoa(res.Age.Years))
	f.MonthsLbl.SetText(strconv.Itoa(res.Age.Months))
	f.DaysLbl.SetText(strconv.Itoa(res.Age.Days))

	if res.Next.DaysUntil == 0 {
		f.NextLbl.SetText(f.app.GetMsgData(config.TKeyBirthdayToday, map[string]any{
			"Age": res.Next.Turning,
		}))
		return
	}
	f.NextLbl.SetText(f.app.GetMsgPlural(config.TKeyNextBirthday, res.Next.DaysUntil, map[string]any{
		"Days": res.Next.DaysUntil,
		"Age":  res.Next.Turning,
	}))
}

// ShowErrors marks every caption and explains each failing field.
func (f *AgeForm) ShowErrors(verrs engine.ValidationErrors) {
	for field, row := range f.rows {
		row.caption.Importance = widget.DangerImportance
		row.caption.Refresh()
		row.errLbl.SetText(f.fieldMessage(field, verrs.Kind(field)))
	}
	if verrs.Future {
		f.FutureLbl.SetText(f.app.GetMsg(config.TKeyErrFuture))
	}
}

func (f *AgeForm) fieldMessage(field engine.Field, kind engine.ErrorKind) string {
	switch kind {
	case engine.EmptyField:
		return f.app.GetMsg(config.TKeyErrEmpty)
	case engine.InvalidField:
		switch field {
		case engine.FieldDay:
			return f.app.GetMsg(config.TKeyErrDay)
		case engine.FieldMonth:
			return f.app.GetMsg(config.TKeyErrMonth)
		default:
			return f.app.GetMsg(config.TKeyErrYear)
		}
	default:
		return ""
	}
}

// Clear restores placeholders and removes error marks.
func (f *AgeForm) Clear() {
	for _, row := range f.rows {
		row.caption.Importance = widget.MediumImportance
		row.caption.Refresh()
		row.errLbl.SetText("")
	}
	f.FutureLbl.SetText("")
	f.YearsLbl.SetText(config.OutputPlaceholder)
	f.MonthsLbl.SetText(config.OutputPlaceholder)
	f.DaysLbl.SetText(config.OutputPlaceholder)
	f.NextLbl.SetText("")
}

func (f *AgeForm) showImportDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer func() { _ = r.Close() }()
		f.importVCard(r)
	}, f.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// importVCard fills the entries from the first usable birthday in r and
// submits the form.
func (f *AgeForm) importVCard(r io.Reader) {
	triple, name, err := engine.ReadBirthTriple(r)
	if err != nil {
		slog.Warn(config.ErrImportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err,
		)
		f.StatusLbl.SetText(f.app.GetMsg(config.TKeyErrImport))
		return
	}

	f.Day.SetText(triple.Day)
	f.Month.SetText(triple.Month)
	f.Year.SetText(triple.Year)
	f.StatusLbl.SetText(f.app.GetMsgData(config.TKeyImported, map[string]any{"Name": name}))
	f.Submit()
}

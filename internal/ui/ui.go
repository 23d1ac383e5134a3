package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// GoAgeApp holds the desktop window and its collaborators.
type GoAgeApp struct {
	App        fyne.App
	Window     fyne.Window
	I18nBundle *i18n.Bundle
	Localizer  *i18n.Localizer
	Ctx        context.Context

	Calc *engine.Calculator
	Form *AgeForm
}

// NewGoAgeApp constructs the application and wires dependencies.
func NewGoAgeApp(a fyne.App, ctx context.Context, calc *engine.Calculator) *GoAgeApp {
	if calc == nil {
		calc = engine.NewCalculator(nil)
	}
	return &GoAgeApp{
		App:  a,
		Ctx:  ctx,
		Calc: calc,
	}
}

// Run opens the calculator window and blocks in the Fyne event loop until the
// window is closed or the context is cancelled.
func (app *GoAgeApp) Run() {
	app.SetupI18n()
	app.ShowMainWindow()

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.App.Run()
}

// ShowMainWindow builds the form and shows it in a fixed-size window.
func (app *GoAgeApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	app.Form = NewAgeForm(app, w)

	w.SetContent(app.Form.Content())
	w.Resize(fyne.NewSize(config.FormWindowWidth, config.FormWindowHeight))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })
	w.Canvas().Focus(app.Form.Day)
	w.Show()
}

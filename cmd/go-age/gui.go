package main

import (
	"context"
	"flag"

	"fyne.io/fyne/v2/app"
	"github.com/google/subcommands"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/ui"
)

type guiCmd struct{}

func (*guiCmd) Name() string     { return config.CmdGUI }
func (*guiCmd) Synopsis() string { return config.SynopsisGUI }
func (*guiCmd) Usage() string    { return config.UsageGUI }

func (*guiCmd) SetFlags(*flag.FlagSet) {}

// Execute blocks until the window is closed or ctx is cancelled.
func (*guiCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a := app.NewWithID(config.AppID)
	ui.NewGoAgeApp(a, ctx, engine.NewCalculator(nil)).Run()
	return subcommands.ExitSuccess
}

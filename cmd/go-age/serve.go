package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/google/subcommands"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/server"
)

type serveCmd struct {
	configPath string
	listen     string
	clock      engine.Clock
}

func (*serveCmd) Name() string     { return config.CmdServe }
func (*serveCmd) Synopsis() string { return config.SynopsisServe }
func (*serveCmd) Usage() string    { return config.UsageServe }

func (s *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.configPath, config.FlagConf, "", config.FlagDescConf)
	f.StringVar(&s.listen, config.FlagListen, "", config.FlagDescListen)
}

// Execute serves until ctx is cancelled.
func (s *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := slog.With(config.LogKeyComponent, config.CompCLI)

	cfg, err := config.LoadServerConfig(s.configPath)
	if err != nil {
		log.Error(config.ErrConfigRead, config.LogKeyFile, s.configPath, config.LogKeyError, err)
		return subcommands.ExitFailure
	}
	if s.listen != "" {
		cfg.Listen = s.listen
	}

	srv := server.NewAgeServer(cfg, engine.NewCalculator(s.clock))
	if err := srv.Start(ctx); err != nil {
		log.Error(config.ErrAppFailed, config.LogKeyError, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

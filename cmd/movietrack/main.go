package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rushteam/movietrack/app"
	"github.com/rushteam/movietrack/cli"
	"github.com/rushteam/movietrack/config"
	"github.com/rushteam/movietrack/logging"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default $"+config.ConfigPathEnvVar+" or ./movietrack.yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		logging.Error().Err(err).Msg("startup failed")
		return err
	}

	session := cli.NewSession(a.Accounts, a.Catalog, a.Engine, os.Stdin, os.Stdout)
	runErr := session.Run(ctx)
	if err := a.Close(context.Background()); err != nil {
		logging.Error().Err(err).Msg("shutdown")
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

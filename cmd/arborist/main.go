package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/appengine-ltd/arborist/internal/config"
	"github.com/appengine-ltd/arborist/internal/console"
	"github.com/appengine-ltd/arborist/internal/logging"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		configPath  string
		execLine    string
		writeConfig bool
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to arborist.toml (default: per-user config dir)")
	flag.StringVar(&execLine, "exec", "", "run one console line and exit")
	flag.BoolVar(&writeConfig, "write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Arborist %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(configPath, execLine, writeConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, execLine string, writeConfig bool) error {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if writeConfig {
		if err := config.Save(configPath, cfg); err != nil {
			return err
		}
		fmt.Println("wrote", configPath)
		return nil
	}
	log := logging.New("arborist", cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := console.New(ctx, cfg, log, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()

	if execLine != "" {
		srv.Handle(ctx, execLine)
		return srv.Save(ctx)
	}
	log.Info().Str("config", configPath).Msg("reading console commands from stdin")
	return srv.Run(ctx, os.Stdin)
}

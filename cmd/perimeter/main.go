package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"libdb.so/perimeter"
	"libdb.so/perimeter/anim"
)

var (
	config  = ""
	mode    = ""
	verbose = false
)

func init() {
	pflag.StringVarP(&config, "config", "c", config, "configuration file, defaults are used if empty")
	pflag.StringVarP(&mode, "mode", "m", mode, "override the startup mode")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "verbose output")
}

func main() {
	pflag.Parse()

	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := readConfig()
	if err != nil {
		return err
	}

	if mode != "" {
		m, err := anim.ParseMode(mode)
		if err != nil {
			return err
		}
		cfg.Mode = m
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	s, err := perimeter.NewSimulator(cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}

	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulator failed: %w", err)
	}

	return nil
}

func readConfig() (*perimeter.Config, error) {
	if config == "" {
		cfg := perimeter.DefaultConfig()
		return &cfg, nil
	}

	f, err := os.Open(config)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return perimeter.ParseConfig(f)
}

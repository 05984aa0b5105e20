// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/viewd/viewd/bridge"
	"github.com/viewd/viewd/control"
	"github.com/viewd/viewd/display"
	"github.com/viewd/viewd/lib/config"
	"github.com/viewd/viewd/navigate"
	"github.com/viewd/viewd/transport"
)

func runDisplay(args []string) error {
	var configPath string
	var directory string
	var bind string
	var logLevel string
	var headless bool

	flagSet := pflag.NewFlagSet("viewd display", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to viewd.yaml (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVarP(&directory, "directory", "d", "", "directory of images to show")
	flagSet.StringVar(&bind, "bind", "", "address to listen on (default: "+config.DefaultAddress+")")
	flagSet.BoolVar(&headless, "headless", false, "run without a window")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printDisplayHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printDisplayHelp(flagSet)
		return nil
	}

	positional := flagSet.Args()
	if len(positional) > 1 {
		return fmt.Errorf("unexpected argument: %s", positional[1])
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if len(positional) == 1 {
		cfg.Display.Bind = positional[0]
	}
	if flagSet.Changed("bind") {
		cfg.Display.Bind = bind
	}
	if flagSet.Changed("directory") {
		cfg.Display.Directory = directory
	}
	if flagSet.Changed("headless") {
		cfg.Display.Headless = headless
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.ValidateDisplay(); err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	frameInterval, _ := cfg.FrameIntervalDuration()
	logger := newLogger(level).With("component", "display")

	cursor, err := navigate.Import(cfg.Display.Directory)
	if err != nil {
		return err
	}
	logger.Info("imported items", "directory", cfg.Display.Directory, "count", cursor.Len())

	var tlsConfig *tls.Config
	if cfg.Display.TLS.Enabled() {
		tlsConfig, err = transport.ServerTLS(cfg.Display.TLS.CertFile, cfg.Display.TLS.KeyFile)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Display.Headless {
		surface := display.NewHeadless(logger)
		return serve(ctx, logger, cfg, cursor, tlsConfig, frameInterval, surface, nil)
	}

	window, err := display.NewWindow("viewd", logger)
	if err != nil {
		if errors.Is(err, display.ErrUnavailable) {
			return fmt.Errorf("%w (use --headless)", err)
		}
		return err
	}
	return serve(ctx, logger, cfg, cursor, tlsConfig, frameInterval, window, window.Run)
}

// serve runs the control loop and the network bridge until the loop
// stops. When mainLoop is set it is run on the calling goroutine, as
// window toolkits require, and the control loop moves to a goroutine
// that closes surface on exit so that mainLoop returns.
func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config, cursor *navigate.Cursor, tlsConfig *tls.Config, frameInterval time.Duration, surface display.Display, mainLoop func()) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controller := control.New(navigate.NewNavigator(cursor), surface,
		control.WithLogger(logger),
		control.WithRotateDegrees(cfg.Display.RotateDegrees),
		control.WithFrameInterval(frameInterval),
	)
	if err := controller.Start(); err != nil {
		surface.Close()
		return err
	}

	server := &bridge.Bridge{
		ListenAddr: cfg.Display.Bind,
		TLS:        tlsConfig,
		Controller: controller,
		Logger:     logger.With("component", "bridge"),
	}
	if err := server.Start(ctx); err != nil {
		surface.Close()
		return err
	}
	defer server.Stop()
	logger.Info("listening", "address", server.Addr().String(), "tls", tlsConfig != nil)

	if mainLoop == nil {
		err := controller.Run(ctx)
		surface.Close()
		return loopResult(err)
	}

	loopDone := make(chan error, 1)
	go func() {
		err := controller.Run(ctx)
		surface.Close()
		loopDone <- err
	}()

	mainLoop()
	cancel()
	return loopResult(<-loopDone)
}

// loopResult maps a signal-driven stop to a clean exit.
func loopResult(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printDisplayHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Show a directory of images and accept remote commands.

The first loadable image is shown at startup. Files that cannot be
decoded are dropped when navigation reaches them. Keys in the window:
Escape or q quits.

Usage:
  viewd display [bind] --directory DIR [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

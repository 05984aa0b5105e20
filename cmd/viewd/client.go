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

	"github.com/spf13/pflag"

	"github.com/viewd/viewd/client"
	"github.com/viewd/viewd/console"
	"github.com/viewd/viewd/lib/config"
	"github.com/viewd/viewd/transport"
)

func runClient(args []string) error {
	var configPath string
	var server string
	var downloadDir string
	var logOutput string
	var logLevel string

	flagSet := pflag.NewFlagSet("viewd client", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to viewd.yaml (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&server, "server", "", "display address (default: "+config.DefaultAddress+")")
	flagSet.StringVar(&downloadDir, "download-dir", "", "directory for fetched images (default: current directory)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status line)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printClientHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printClientHelp(flagSet)
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
		cfg.Client.Server = positional[0]
	}
	if flagSet.Changed("server") {
		cfg.Client.Server = server
	}
	if flagSet.Changed("download-dir") {
		cfg.Client.DownloadDir = downloadDir
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.ValidateClient(); err != nil {
		return err
	}

	directory, err := cfg.EnsureDownloadDir()
	if err != nil {
		return err
	}

	// Records go to the status line rather than stderr, which would
	// corrupt the terminal display. The file, if any, gets everything
	// at the configured level.
	level, _ := cfg.LogLevel()
	statusHandler := console.NewLogHandler(max(level, slog.LevelWarn))
	var logger *slog.Logger
	if logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(logOutput, level)
		if err != nil {
			return fmt.Errorf("cannot open log file %s: %w", logOutput, err)
		}
		defer closeFile()
		logger = slog.New(console.TeeHandler{statusHandler, fileHandler})
	} else {
		logger = slog.New(statusHandler)
	}
	logger = logger.With("component", "client")

	var tlsConfig *tls.Config
	if cfg.Client.TLS.Enabled {
		tlsConfig, err = transport.ClientTLS(cfg.Client.TLS.CAFile, cfg.Client.TLS.ServerName, cfg.Client.TLS.InsecureSkipVerify)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connection, err := client.Dial(ctx, cfg.Client.Server, client.Options{TLS: tlsConfig})
	if err != nil {
		return err
	}
	defer connection.Close()
	logger.Info("connected", "server", connection.Address(), "tls", tlsConfig != nil)

	return console.Run(ctx, connection, console.Options{
		Server:      connection.Address(),
		DownloadDir: directory,
	}, statusHandler)
}

func printClientHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Connect to a display and control it from this terminal.

Keys:
  right/left  next/previous image
  f           toggle fullscreen
  r           rotate
  p, space    toggle pageant (auto-advance)
  s           save the current image to the download directory
  q, esc      quit

Usage:
  viewd client [server] [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// viewd drives an image-viewing display from a remote terminal.
//
// Two subcommands:
//
// display (alias server): imports a directory of images, opens a
// window (or runs headless), and serves the control protocol on a TCP
// address.
//
// client: connects to a display and runs an interactive terminal
// console whose keys map to protocol commands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/viewd/viewd/lib/process"
	"github.com/viewd/viewd/lib/version"
)

// errUsage marks a command line that could not be interpreted. The
// usage text has already been printed by the time it is returned.
var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return errUsage
	}

	switch args[0] {
	case "--version", "version":
		version.Print("viewd")
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	case "display", "server":
		return runDisplay(args[1:])
	case "client":
		return runClient(args[1:])
	default:
		printUsage()
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `viewd: remote-controlled image viewer.

Usage:
  viewd display [bind] --directory DIR [flags]
  viewd client [server] [flags]
  viewd --version

Examples:
  # Show ./photos in a window, listening on the default address
  viewd display -d ./photos

  # Run without a window on all interfaces
  viewd display 0.0.0.0:4433 -d ./photos --headless

  # Drive it from another terminal
  viewd client 127.0.0.1:4433

Run "viewd display --help" or "viewd client --help" for flags.
`)
}

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import "fmt"

// Command is a remote operation on the display. The zero value is not
// a valid command, so a Request with a missing field never decodes to
// a real operation.
type Command uint8

const (
	// CommandAdvance moves to the next loadable item, wrapping past
	// the end.
	CommandAdvance Command = iota + 1
	// CommandRetreat moves to the previous loadable item, wrapping
	// before the start.
	CommandRetreat
	// CommandToggleFullscreen switches the window between windowed
	// and desktop fullscreen.
	CommandToggleFullscreen
	// CommandRotate rotates the displayed item by one step.
	CommandRotate
	// CommandTogglePageant arms or disarms auto-advance.
	CommandTogglePageant
	// CommandFetchBytes returns the displayed item's file contents.
	CommandFetchBytes
)

// Commands lists every valid command in discriminant order.
var Commands = []Command{
	CommandAdvance,
	CommandRetreat,
	CommandToggleFullscreen,
	CommandRotate,
	CommandTogglePageant,
	CommandFetchBytes,
}

// Valid reports whether c is one of the defined commands.
func (c Command) Valid() bool {
	return c >= CommandAdvance && c <= CommandFetchBytes
}

func (c Command) String() string {
	switch c {
	case CommandAdvance:
		return "Advance"
	case CommandRetreat:
		return "Retreat"
	case CommandToggleFullscreen:
		return "ToggleFullscreen"
	case CommandRotate:
		return "Rotate"
	case CommandTogglePageant:
		return "TogglePageant"
	case CommandFetchBytes:
		return "FetchBytes"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}

// NavigatesItems reports whether the command moves the cursor.
func (c Command) NavigatesItems() bool {
	return c == CommandAdvance || c == CommandRetreat
}

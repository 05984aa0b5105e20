// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package display

import (
	"errors"
	"fmt"
)

// Display is the surface the control loop drives.
type Display interface {
	// TryLoad reports whether path can be shown. It has no visible
	// effect when it returns false.
	TryLoad(path string) bool

	// Render shows path.
	Render(path string) error

	// ToggleFullscreen switches between windowed and fullscreen while
	// path is shown.
	ToggleFullscreen(path string) error

	// Rotate turns the shown image by degrees (a multiple of 90).
	Rotate(path string, degrees int) error

	// PollEvents returns the UI events received since the last call
	// without blocking.
	PollEvents() []Event

	// Close releases the surface. Calls after Close fail with
	// ErrClosed.
	Close() error
}

// EventKind classifies a UI event.
type EventKind uint8

const (
	// EventQuit asks the control loop to exit (window closed, Escape,
	// or q).
	EventQuit EventKind = iota + 1
	// EventKey is any other key press. Key holds its name.
	EventKey
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventKey:
		return "key"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is one UI event.
type Event struct {
	Kind EventKind
	Key  string
}

var (
	// ErrClosed is returned by operations on a closed Display.
	ErrClosed = errors.New("display closed")

	// ErrUnavailable is returned by NewWindow in builds without GUI
	// support.
	ErrUnavailable = errors.New("window display not available in this build")

	// ErrInvalidRotation is returned for rotations that are not a whole
	// number of quarter turns.
	ErrInvalidRotation = errors.New("rotation is not a multiple of 90 degrees")

	errNothingShown = errors.New("nothing is shown")

	_ Display = (*Headless)(nil)
	_ Display = (*Window)(nil)
)

// Error is a failed display operation.
type Error struct {
	Operation string
	Path      string
	Err       error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("display %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("display %s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NormalizeDegrees reduces degrees to [0, 360).
func NormalizeDegrees(degrees int) int {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

// ValidRotation reports whether degrees is a whole number of quarter
// turns.
func ValidRotation(degrees int) bool {
	return degrees%90 == 0
}

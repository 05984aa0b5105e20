// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

//go:build nogui

package display

import "log/slog"

// Window is unavailable in nogui builds.
type Window struct{}

// NewWindow always fails with ErrUnavailable in nogui builds.
func NewWindow(title string, logger *slog.Logger) (*Window, error) {
	return nil, ErrUnavailable
}

func (w *Window) Run() {}

func (w *Window) TryLoad(path string) bool { return false }

func (w *Window) Render(path string) error {
	return &Error{Operation: "render", Path: path, Err: ErrUnavailable}
}

func (w *Window) ToggleFullscreen(path string) error {
	return &Error{Operation: "fullscreen", Path: path, Err: ErrUnavailable}
}

func (w *Window) Rotate(path string, degrees int) error {
	return &Error{Operation: "rotate", Path: path, Err: ErrUnavailable}
}

func (w *Window) PollEvents() []Event { return nil }

func (w *Window) Close() error { return nil }

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package display

import (
	"fmt"
	"log/slog"
	"sync"
)

// Headless is a Display with no screen. It decodes images to decide
// loadability and records what a real screen would show.
//
// Headless is safe for concurrent use so tests can inspect it and
// inject events while the control loop runs.
type Headless struct {
	logger *slog.Logger

	mu         sync.Mutex
	current    string
	rendered   []string
	fullscreen bool
	rotation   int
	pending    []Event
	closed     bool
}

// NewHeadless returns an empty Headless display. A nil logger means
// slog.Default().
func NewHeadless(logger *slog.Logger) *Headless {
	if logger == nil {
		logger = slog.Default()
	}
	return &Headless{logger: logger}
}

// TryLoad decodes path and reports whether it succeeded.
func (h *Headless) TryLoad(path string) bool {
	if err := Probe(path); err != nil {
		h.logger.Debug("item not loadable", "path", path, "error", err)
		return false
	}
	return true
}

// Render records path as shown and resets rotation.
func (h *Headless) Render(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return &Error{Operation: "render", Path: path, Err: ErrClosed}
	}
	h.current = path
	h.rendered = append(h.rendered, path)
	h.rotation = 0
	h.logger.Info("rendered", "path", path)
	return nil
}

// ToggleFullscreen flips the fullscreen flag.
func (h *Headless) ToggleFullscreen(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return &Error{Operation: "fullscreen", Path: path, Err: ErrClosed}
	}
	h.fullscreen = !h.fullscreen
	h.logger.Info("fullscreen toggled", "path", path, "fullscreen", h.fullscreen)
	return nil
}

// Rotate adds degrees to the accumulated rotation.
func (h *Headless) Rotate(path string, degrees int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return &Error{Operation: "rotate", Path: path, Err: ErrClosed}
	}
	if !ValidRotation(degrees) {
		return &Error{Operation: "rotate", Path: path, Err: fmt.Errorf("%w: %d", ErrInvalidRotation, degrees)}
	}
	h.rotation = NormalizeDegrees(h.rotation + degrees)
	h.logger.Info("rotated", "path", path, "rotation", h.rotation)
	return nil
}

// PollEvents returns and clears injected events.
func (h *Headless) PollEvents() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	events := h.pending
	h.pending = nil
	return events
}

// Close marks the display closed. Close is idempotent.
func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

// Inject queues events for the next PollEvents.
func (h *Headless) Inject(events ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, events...)
}

// Current returns the path most recently rendered.
func (h *Headless) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Rendered returns every path rendered so far, in order.
func (h *Headless) Rendered() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.rendered...)
}

// Fullscreen reports the fullscreen flag.
func (h *Headless) Fullscreen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fullscreen
}

// Rotation returns the accumulated rotation in [0, 360).
func (h *Headless) Rotation() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rotation
}

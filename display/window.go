// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !nogui

package display

import (
	"image"
	"log/slog"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

// eventBuffer bounds queued UI events between polls. Events beyond it
// are dropped; the control loop polls every frame.
const eventBuffer = 64

// Window is a Display backed by a fyne window.
//
// fyne requires its event loop on the main goroutine: create the
// Window there, hand it to the control loop, then call Run. The
// control loop's calls into the Window are serialized by mu.
type Window struct {
	logger *slog.Logger
	app    fyne.App
	window fyne.Window
	canvas *canvas.Image
	events chan Event

	mu       sync.Mutex
	source   image.Image
	rotation int
	closed   bool
}

// NewWindow creates the application and its window. The window is not
// shown until Run.
func NewWindow(title string, logger *slog.Logger) (*Window, error) {
	if logger == nil {
		logger = slog.Default()
	}
	application := app.NewWithID("dev.viewd.display")
	window := application.NewWindow(title)

	picture := canvas.NewImageFromImage(nil)
	picture.FillMode = canvas.ImageFillContain
	picture.ScaleMode = canvas.ImageScaleSmooth
	window.SetContent(picture)
	window.Resize(fyne.NewSize(1024, 768))

	w := &Window{
		logger: logger,
		app:    application,
		window: window,
		canvas: picture,
		events: make(chan Event, eventBuffer),
	}
	window.Canvas().SetOnTypedKey(w.typedKey)
	window.SetCloseIntercept(func() { w.push(Event{Kind: EventQuit}) })
	return w, nil
}

// Run shows the window and blocks in the fyne event loop until Close.
// Must be called from the main goroutine.
func (w *Window) Run() {
	w.window.ShowAndRun()
}

func (w *Window) typedKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyEscape, fyne.KeyQ:
		w.push(Event{Kind: EventQuit, Key: string(event.Name)})
	default:
		w.push(Event{Kind: EventKey, Key: string(event.Name)})
	}
}

func (w *Window) push(event Event) {
	select {
	case w.events <- event:
	default:
		w.logger.Warn("ui event dropped", "kind", event.Kind, "key", event.Key)
	}
}

// TryLoad decodes path and reports whether it succeeded.
func (w *Window) TryLoad(path string) bool {
	if err := Probe(path); err != nil {
		w.logger.Debug("item not loadable", "path", path, "error", err)
		return false
	}
	return true
}

// Render decodes path, shows it unrotated and sets the window title to
// its file name.
func (w *Window) Render(path string) error {
	img, _, err := Decode(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return &Error{Operation: "render", Path: path, Err: ErrClosed}
	}
	w.source = img
	w.rotation = 0
	w.canvas.Image = img
	w.canvas.Refresh()
	w.window.SetTitle(filepath.Base(path))
	return nil
}

// ToggleFullscreen switches between windowed and fullscreen.
func (w *Window) ToggleFullscreen(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return &Error{Operation: "fullscreen", Path: path, Err: ErrClosed}
	}
	w.window.SetFullScreen(!w.window.FullScreen())
	return nil
}

// Rotate turns the shown image by degrees clockwise.
func (w *Window) Rotate(path string, degrees int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return &Error{Operation: "rotate", Path: path, Err: ErrClosed}
	}
	if w.source == nil {
		return &Error{Operation: "rotate", Path: path, Err: errNothingShown}
	}
	rotation := NormalizeDegrees(w.rotation + degrees)
	rotated, err := RotateImage(w.source, rotation)
	if err != nil {
		return &Error{Operation: "rotate", Path: path, Err: err}
	}
	w.rotation = rotation
	w.canvas.Image = rotated
	w.canvas.Refresh()
	return nil
}

// PollEvents drains queued UI events without blocking.
func (w *Window) PollEvents() []Event {
	var events []Event
	for {
		select {
		case event := <-w.events:
			events = append(events, event)
		default:
			return events
		}
	}
}

// Close quits the fyne application, which makes Run return.
func (w *Window) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	w.app.Quit()
	return nil
}

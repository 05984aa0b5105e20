// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/viewd/viewd/display"
	"github.com/viewd/viewd/lib/clock"
	"github.com/viewd/viewd/navigate"
	"github.com/viewd/viewd/pageant"
	"github.com/viewd/viewd/protocol"
)

const (
	// DefaultFrameInterval is the control loop's idle cadence.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultRotateDegrees is the step applied by one Rotate command.
	DefaultRotateDegrees = 90
)

// Controller is the single owner of navigation, display and pageant
// state. Dispatch, Step, Start and Run must be called from one
// goroutine. Submit, RequestExit and Exiting are safe from any
// goroutine.
type Controller struct {
	navigator *navigate.Navigator
	display   display.Display
	pageant   *pageant.Timer
	inbox     *Inbox

	clock         clock.Clock
	logger        *slog.Logger
	readFile      func(path string) ([]byte, error)
	rotateDegrees int
	frameInterval time.Duration
	maxPayload    int

	started bool
	exit    atomic.Bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used by the pageant timer and the frame
// ticker. The default is clock.Real().
func WithClock(c clock.Clock) Option {
	return func(controller *Controller) {
		controller.clock = c
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(controller *Controller) {
		controller.logger = logger
	}
}

// WithReadFile replaces the loader used by FetchBytes. The default is
// display.ReadFile.
func WithReadFile(readFile func(path string) ([]byte, error)) Option {
	return func(controller *Controller) {
		controller.readFile = readFile
	}
}

// WithRotateDegrees sets the rotation applied per Rotate command.
func WithRotateDegrees(degrees int) Option {
	return func(controller *Controller) {
		controller.rotateDegrees = degrees
	}
}

// WithFrameInterval sets how often Run steps when idle.
func WithFrameInterval(interval time.Duration) Option {
	return func(controller *Controller) {
		controller.frameInterval = interval
	}
}

// WithMaxPayload caps the file size FetchBytes will send. Larger files
// get an ErrPayloadTooLarge Response. The default is
// protocol.MaxPayloadSize, and values above it are clamped to it.
func WithMaxPayload(size int) Option {
	return func(controller *Controller) {
		controller.maxPayload = min(size, protocol.MaxPayloadSize)
	}
}

// New returns a Controller over navigator and surface. The pageant
// timer starts disarmed.
func New(navigator *navigate.Navigator, surface display.Display, options ...Option) *Controller {
	controller := &Controller{
		navigator:     navigator,
		display:       surface,
		inbox:         NewInbox(),
		clock:         clock.Real(),
		logger:        slog.Default(),
		readFile:      display.ReadFile,
		rotateDegrees: DefaultRotateDegrees,
		frameInterval: DefaultFrameInterval,
		maxPayload:    protocol.MaxPayloadSize,
	}
	for _, option := range options {
		option(controller)
	}
	controller.pageant = pageant.New(controller.clock)
	return controller
}

// Submit queues envelope for the next loop iteration. Once the loop
// has stopped the envelope is answered with ErrShuttingDown at once.
func (c *Controller) Submit(envelope Envelope) {
	if err := c.inbox.Submit(envelope); err != nil {
		c.logger.Warn("response dropped",
			"connection_id", envelope.Connection,
			"command", envelope.Request.Command,
			"error", err,
		)
	}
}

// RequestExit asks the loop to stop after the current iteration.
func (c *Controller) RequestExit() {
	c.exit.Store(true)
}

// Exiting reports whether an exit has been requested.
func (c *Controller) Exiting() bool {
	return c.exit.Load()
}

// PageantArmed reports whether auto-advance is on.
func (c *Controller) PageantArmed() bool {
	return c.pageant.Armed()
}

// Dispatch runs one command and returns its Response. It never
// panics on a bad command; every failure becomes an error Response.
func (c *Controller) Dispatch(command protocol.Command) protocol.Response {
	switch command {
	case protocol.CommandAdvance:
		return c.move(command, c.navigator.Advance)
	case protocol.CommandRetreat:
		return c.move(command, c.navigator.Retreat)
	case protocol.CommandToggleFullscreen:
		path, err := c.displayed()
		if err != nil {
			return protocol.Failure("", err)
		}
		if err := c.display.ToggleFullscreen(path); err != nil {
			return protocol.Failure(path, err)
		}
		return protocol.Success(path)
	case protocol.CommandRotate:
		path, err := c.displayed()
		if err != nil {
			return protocol.Failure("", err)
		}
		if err := c.display.Rotate(path, c.rotateDegrees); err != nil {
			return protocol.Failure(path, err)
		}
		return protocol.Success(path)
	case protocol.CommandTogglePageant:
		path, _ := c.navigator.Displayed()
		state := "off"
		if c.pageant.Toggle() {
			state = "on"
		}
		c.logger.Info("pageant toggled", "state", state)
		return protocol.SuccessWithMessage(path, "pageant "+state)
	case protocol.CommandFetchBytes:
		path, err := c.displayed()
		if err != nil {
			return protocol.Failure("", err)
		}
		if info, err := os.Stat(path); err == nil && info.Size() > int64(c.maxPayload) {
			return protocol.Failure(path, c.tooLarge(info.Size()))
		}
		data, err := c.readFile(path)
		if err != nil {
			return protocol.Failure(path, err)
		}
		if len(data) > c.maxPayload {
			return protocol.Failure(path, c.tooLarge(int64(len(data))))
		}
		return protocol.Payload(path, data)
	default:
		return protocol.Failure("", fmt.Errorf("%w: %s", protocol.ErrUnknownCommand, command))
	}
}

func (c *Controller) tooLarge(size int64) error {
	return fmt.Errorf("%w: %d bytes, limit is %d", protocol.ErrPayloadTooLarge, size, c.maxPayload)
}

// displayed returns the item on screen, or why there is none.
func (c *Controller) displayed() (string, error) {
	if c.navigator.Len() == 0 {
		return "", ErrExhausted
	}
	path, ok := c.navigator.Displayed()
	if !ok {
		return "", ErrNothingDisplayed
	}
	return path, nil
}

// move steps through the set until an item loads, removing every item
// the display rejects on the way. If the loaded item then fails to
// render, the previous item stays recorded as displayed, since it is
// still what the screen shows.
func (c *Controller) move(command protocol.Command, step func() (string, bool)) protocol.Response {
	previous, _ := c.navigator.Displayed()
	for {
		path, ok := step()
		if !ok {
			c.logger.Warn("item set exhausted", "command", command)
			return protocol.Failure("", ErrExhausted)
		}
		if c.display.TryLoad(path) {
			if err := c.display.Render(path); err != nil {
				c.navigator.Revert(previous)
				c.logger.Warn("render failed", "path", path, "error", err)
				return protocol.Failure(path, err)
			}
			return protocol.Success(path)
		}
		c.navigator.DeleteCurrent()
		c.logger.Warn("removed unloadable item", "path", path, "remaining", c.navigator.Len())
	}
}

// Start shows the first loadable item. It fails with ErrExhausted if
// there is none. Run calls Start unless it has already succeeded.
func (c *Controller) Start() error {
	if c.started {
		return nil
	}
	response := c.Dispatch(protocol.CommandAdvance)
	if !response.OK {
		return fmt.Errorf("initial display: %w", ErrExhausted)
	}
	c.started = true
	return nil
}

// Step runs one loop iteration: answer queued requests, handle UI
// events, then fire the pageant timer if it is due.
func (c *Controller) Step() {
	for _, envelope := range c.inbox.Drain() {
		response := c.Dispatch(envelope.Request.Command)
		c.deliver(envelope, response)
	}

	for _, event := range c.display.PollEvents() {
		if event.Kind == display.EventQuit {
			c.logger.Info("quit requested from display", "key", event.Key)
			c.RequestExit()
		}
	}

	if c.pageant.Poll() {
		response := c.Dispatch(protocol.CommandAdvance)
		if !response.OK {
			c.logger.Warn("pageant advance failed", "message", response.Message)
		}
	}
}

func (c *Controller) deliver(envelope Envelope, response protocol.Response) {
	if err := envelope.Deliver(response); err != nil {
		c.logger.Warn("response dropped",
			"connection_id", envelope.Connection,
			"command", envelope.Request.Command,
			"error", err,
		)
	}
}

// Run shows the first item if Start has not, and then steps until ctx
// is cancelled or an exit is requested. Requests still queued when the loop stops are
// answered with ErrShuttingDown. Run returns nil on a requested exit
// and ctx.Err() on cancellation.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Start(); err != nil {
		c.shutdown()
		return err
	}

	ticker := c.clock.NewTicker(c.frameInterval)
	defer ticker.Stop()
	defer c.shutdown()

	for {
		c.Step()
		if c.Exiting() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-c.inbox.Notify():
		}
	}
}

func (c *Controller) shutdown() {
	for _, envelope := range c.inbox.Close() {
		c.deliver(envelope, protocol.Failure("", ErrShuttingDown))
	}
}

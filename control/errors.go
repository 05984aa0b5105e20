// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package control

import "errors"

var (
	// ErrExhausted is returned when no loadable item remains in the set.
	ErrExhausted = errors.New("no loadable item remains")

	// ErrNothingDisplayed is returned by commands that act on the
	// displayed item before anything has been shown.
	ErrNothingDisplayed = errors.New("nothing is displayed")

	// ErrChannelClosed is returned when a Response cannot be delivered
	// because its connection has gone away.
	ErrChannelClosed = errors.New("reply channel closed")

	// ErrShuttingDown is the error carried by Responses to requests
	// that arrive while the control loop is exiting.
	ErrShuttingDown = errors.New("display is shutting down")
)

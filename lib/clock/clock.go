// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for the control loop and the pageant
// timer.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a Ticker delivering ticks every d. Panics if
	// d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers periodic ticks on C, which has capacity 1. Ticks
// that find C full are dropped.
type Ticker struct {
	C <-chan time.Time

	stop func()
}

// Stop turns off the ticker. C is not closed.
func (t *Ticker) Stop() { t.stop() }

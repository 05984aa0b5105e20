// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package pageant

import (
	"time"

	"github.com/viewd/viewd/lib/clock"
)

// DefaultInterval is the time between automatic advances.
const DefaultInterval = 1000 * time.Millisecond

// Timer is the toggleable auto-advance trigger. It is owned by the
// control loop and is not safe for concurrent use.
type Timer struct {
	clock    clock.Clock
	interval time.Duration

	armed       bool
	lastTrigger time.Time
}

// New returns a disarmed Timer firing every DefaultInterval.
func New(c clock.Clock) *Timer {
	return NewWithInterval(c, DefaultInterval)
}

// NewWithInterval returns a disarmed Timer with a custom interval.
// Panics if interval <= 0.
func NewWithInterval(c clock.Clock, interval time.Duration) *Timer {
	if interval <= 0 {
		panic("pageant: non-positive interval")
	}
	return &Timer{clock: c, interval: interval}
}

// Toggle flips the armed state and returns the new state. Arming
// records the current time as the last trigger, so the first advance
// happens one full interval later.
func (t *Timer) Toggle() (armed bool) {
	t.armed = !t.armed
	if t.armed {
		t.lastTrigger = t.clock.Now()
	} else {
		t.lastTrigger = time.Time{}
	}
	return t.armed
}

// Armed reports whether auto-advance is active.
func (t *Timer) Armed() bool {
	return t.armed
}

// Interval returns the configured firing interval.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// ShouldFire reports whether the timer is armed and at least one
// interval has passed since the last trigger.
func (t *Timer) ShouldFire(now time.Time) bool {
	return t.armed && now.Sub(t.lastTrigger) >= t.interval
}

// Fire records now as the last trigger. It is a no-op when disarmed.
func (t *Timer) Fire(now time.Time) {
	if t.armed {
		t.lastTrigger = now
	}
}

// Poll combines ShouldFire and Fire against the timer's clock: it
// returns true, and resets the trigger, when an advance is due.
func (t *Timer) Poll() bool {
	now := t.clock.Now()
	if !t.ShouldFire(now) {
		return false
	}
	t.Fire(now)
	return true
}

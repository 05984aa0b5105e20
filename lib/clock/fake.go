// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock reading initial. It only moves when Advance
// is called. FakeClock is safe for concurrent use.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{now: initial}
}

// FakeClock is a manually driven Clock for tests.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

type fakeTicker struct {
	next     time.Time
	interval time.Duration
	channel  chan time.Time
	stopped  bool
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NewTicker returns a Ticker whose first tick is due d after the
// current fake time. Panics if d <= 0.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ticker := &fakeTicker{next: c.now.Add(d), interval: d, channel: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, ticker)
	return &Ticker{
		C: ticker.channel,
		stop: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			ticker.stopped = true
		},
	}
}

// Advance moves the clock forward by d. Every live ticker with a tick
// due at or before the new time receives one tick, without blocking,
// and is rescheduled to its first deadline after the new time.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	live := c.tickers[:0]
	for _, ticker := range c.tickers {
		if ticker.stopped {
			continue
		}
		live = append(live, ticker)
		if ticker.next.After(c.now) {
			continue
		}
		for !ticker.next.After(c.now) {
			ticker.next = ticker.next.Add(ticker.interval)
		}
		select {
		case ticker.channel <- c.now:
		default:
		}
	}
	c.tickers = live
}

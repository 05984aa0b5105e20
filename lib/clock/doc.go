// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction.
//
// The pageant timer and the control loop's frame pacing never call
// time.Now or time.NewTicker directly. They hold a Clock. In
// production that is Real(); in tests it is Fake(), which only moves
// when Advance is called:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	timer := pageant.New(c)
//	timer.Toggle()
//	c.Advance(time.Second)
//	timer.ShouldFire(c.Now()) // true
package clock

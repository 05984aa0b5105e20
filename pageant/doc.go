// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package pageant implements the auto-advance timer.
//
// A Timer is either disarmed or armed with the time of the last
// trigger. The control loop polls [Timer.ShouldFire] once per
// iteration and, when it reports true, calls [Timer.Fire] and
// dispatches an Advance through the normal command path. The timer
// never fires on its own; nothing happens unless the loop polls it.
package pageant

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// TB is the part of testing.TB the channel helpers use.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive returns the next value from ch, failing the test if
// none arrives within timeout or ch is closed first.
//
//	response := testutil.RequireReceive(t, replies, 5*time.Second, "response to %s", command)
func RequireReceive[T any](t TB, ch <-chan T, timeout time.Duration, context ...any) T {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed while waiting for %s", describe(context))
		}
		return value
	case <-timer.C:
		t.Fatalf("no value after %v waiting for %s", timeout, describe(context))
	}
	panic("unreachable")
}

// RequireClosed fails the test unless ch is closed, or yields a value,
// within timeout.
func RequireClosed(t TB, ch <-chan struct{}, timeout time.Duration, context ...any) {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ch:
	case <-timer.C:
		t.Fatalf("channel still open after %v waiting for %s", timeout, describe(context))
	}
}

// describe renders context as a format string and its arguments, or
// as a bare value.
func describe(context []any) string {
	switch {
	case len(context) == 0:
		return "channel"
	case len(context) == 1:
		return fmt.Sprint(context[0])
	}
	if format, ok := context[0].(string); ok {
		return fmt.Sprintf(format, context[1:]...)
	}
	return fmt.Sprint(context...)
}

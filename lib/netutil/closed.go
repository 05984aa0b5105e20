// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil holds small helpers shared by the network-facing
// packages.
package netutil

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// IsExpectedCloseError reports whether err is a normal connection
// termination: EOF, use of a closed connection, broken pipe, or
// connection reset. A remote client quitting mid-session produces one
// of these on the display side; none of them deserve an error log.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}

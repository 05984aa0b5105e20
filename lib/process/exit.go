// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"os"
)

// Fatal writes "error: err" to stderr and exits. If err carries an
// ExitCode() method its value is used as the exit status, otherwise 1.
func Fatal(err error) {
	code := 1
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		code = coder.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(code)
}

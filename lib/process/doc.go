// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers. Fatal is the
// one place raw output to stderr happens, for errors that surface
// before (or after) the structured logger exists.
package process

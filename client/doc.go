// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package client talks to a display process.
//
// [Dial] opens one framed connection; [Client.Do] sends a command and
// waits for its Response. Do is safe for concurrent use: calls are
// serialized so each Request is followed by its own Response on the
// stream.
package client

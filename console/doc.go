// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package console is the terminal client for a display process.
//
// [Model] is a bubbletea model: key presses map to commands through
// [KeyMap], each command runs as a tea.Cmd against a [Doer] (normally
// a *client.Client), and the Response updates the status line. A
// FetchBytes Response is verified against its digest and saved into
// the download directory under the item's file name.
//
// Quit keys (q, Escape, ctrl+c) are handled locally and never reach
// the display.
//
// [LogHandler] routes warn-and-above slog records into the running
// program's status line so logging never scribbles over the UI.
package console

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package navigate holds the ordered item set the display walks
// through and the position state over it.
//
// A [Cursor] treats the item set as a ring: once populated, Advance
// and Retreat always return an item, wrapping at either end. Items can
// be removed in place while walking. Removal is lazy: after
// RemoveCurrent the cursor has no current item until the caller moves
// again, and the next Advance lands on the item that followed the
// removed one. That lets the control loop run "try this item, prune
// it if unusable, move on" without the cursor having to know what
// "usable" means.
//
// [Import] builds a Cursor from a directory listing, sorted by file
// name. A [Navigator] pairs a Cursor with the item currently shown.
package navigate

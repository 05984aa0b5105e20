// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package navigate

// Navigator owns the Cursor and remembers which item is on screen.
//
// The displayed item only changes on a successful Advance or Retreat.
// DeleteCurrent prunes the cursor but leaves the displayed item alone:
// it is stale until the next move, which is exactly when the control
// loop is about to pick a replacement.
type Navigator struct {
	cursor    *Cursor
	displayed string
}

// NewNavigator wraps cursor. Nothing is displayed until the first
// Advance or Retreat.
func NewNavigator(cursor *Cursor) *Navigator {
	return &Navigator{cursor: cursor}
}

// Advance moves the cursor forward and records the new item as
// displayed. On an empty set it returns ok false and the displayed
// item is unchanged.
func (n *Navigator) Advance() (item string, ok bool) {
	item, ok = n.cursor.Advance()
	if ok {
		n.displayed = item
	}
	return item, ok
}

// Retreat is the backward counterpart of Advance.
func (n *Navigator) Retreat() (item string, ok bool) {
	item, ok = n.cursor.Retreat()
	if ok {
		n.displayed = item
	}
	return item, ok
}

// DeleteCurrent removes the cursor's current item from the set.
func (n *Navigator) DeleteCurrent() (item string, ok bool) {
	return n.cursor.RemoveCurrent()
}

// Revert records item as displayed again, undoing the bookkeeping of
// a move whose item never reached the screen. An empty item means
// nothing is displayed. The cursor position is not changed.
func (n *Navigator) Revert(item string) {
	n.displayed = item
}

// Displayed returns the item recorded by the last successful move. ok
// is false before the first move.
func (n *Navigator) Displayed() (item string, ok bool) {
	return n.displayed, n.displayed != ""
}

// Len returns the number of items left in the set.
func (n *Navigator) Len() int {
	return n.cursor.Len()
}

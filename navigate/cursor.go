// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package navigate

// position is the cursor's relation to the item slice.
type position uint8

const (
	// unset: never navigated. Advance yields the first item, Retreat
	// the last.
	unset position = iota
	// selected: index names the item most recently returned.
	selected
	// removed: the item at index was just removed. index now names its
	// successor (or len(items) if it was the last item).
	removed
)

// Cursor is a mutable, order-preserving ring of item paths. It is not
// safe for concurrent use; the control loop owns it.
type Cursor struct {
	items []string
	index int
	state position
}

// NewCursor returns an unset Cursor over items, in the order given.
// The slice is copied.
func NewCursor(items []string) *Cursor {
	return &Cursor{items: append([]string(nil), items...)}
}

// Len returns the number of items still in the set.
func (c *Cursor) Len() int {
	return len(c.items)
}

// Items returns a copy of the remaining items in traversal order.
func (c *Cursor) Items() []string {
	return append([]string(nil), c.items...)
}

// Current returns the item most recently returned by Advance or
// Retreat. ok is false if the cursor has never moved or the current
// item was removed.
func (c *Cursor) Current() (item string, ok bool) {
	if c.state != selected {
		return "", false
	}
	return c.items[c.index], true
}

// Advance moves to the next item and returns it, wrapping from the
// last item to the first. ok is false only when the set is empty.
func (c *Cursor) Advance() (item string, ok bool) {
	if len(c.items) == 0 {
		return "", false
	}
	switch c.state {
	case unset:
		c.index = 0
	case selected:
		c.index++
	case removed:
		// index already names the successor of the removed item.
	}
	if c.index >= len(c.items) {
		c.index = 0
	}
	c.state = selected
	return c.items[c.index], true
}

// Retreat moves to the previous item and returns it, wrapping from the
// first item to the last. ok is false only when the set is empty.
func (c *Cursor) Retreat() (item string, ok bool) {
	if len(c.items) == 0 {
		return "", false
	}
	switch c.state {
	case unset:
		c.index = len(c.items)
	case selected, removed:
		// From removed, index names the successor, so one step back is
		// the removed item's predecessor.
	}
	c.index--
	if c.index < 0 {
		c.index = len(c.items) - 1
	}
	c.state = selected
	return c.items[c.index], true
}

// RemoveCurrent deletes the current item from the set and returns it.
// ok is false, and nothing changes, when there is no current item
// (never navigated, already removed, or empty set). The cursor does
// not re-point; call Advance or Retreat to obtain the next item.
func (c *Cursor) RemoveCurrent() (item string, ok bool) {
	if c.state != selected || len(c.items) == 0 {
		return "", false
	}
	item = c.items[c.index]
	c.items = append(c.items[:c.index], c.items[c.index+1:]...)
	c.state = removed
	return item, true
}

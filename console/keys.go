// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/viewd/viewd/protocol"
)

// KeyMap defines all key bindings for the console.
type KeyMap struct {
	Advance    key.Binding
	Retreat    key.Binding
	Fullscreen key.Binding
	Rotate     key.Binding
	Pageant    key.Binding
	Fetch      key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Advance: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next"),
	),
	Retreat: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous"),
	),
	Fullscreen: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fullscreen"),
	),
	Rotate: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rotate"),
	),
	Pageant: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p/space", "slideshow"),
	),
	Fetch: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Command returns the display command bound to message, if any. Quit
// is not a display command.
func (keys KeyMap) Command(message tea.KeyMsg) (protocol.Command, bool) {
	switch {
	case key.Matches(message, keys.Advance):
		return protocol.CommandAdvance, true
	case key.Matches(message, keys.Retreat):
		return protocol.CommandRetreat, true
	case key.Matches(message, keys.Fullscreen):
		return protocol.CommandToggleFullscreen, true
	case key.Matches(message, keys.Rotate):
		return protocol.CommandRotate, true
	case key.Matches(message, keys.Pageant):
		return protocol.CommandTogglePageant, true
	case key.Matches(message, keys.Fetch):
		return protocol.CommandFetchBytes, true
	default:
		return 0, false
	}
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Retreat, keys.Advance, keys.Pageant, keys.Rotate, keys.Fullscreen, keys.Fetch, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Retreat, keys.Advance, keys.Pageant},
		{keys.Rotate, keys.Fullscreen, keys.Fetch},
		{keys.Quit},
	}
}

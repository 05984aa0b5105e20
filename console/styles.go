// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles the console renders with.
type Styles struct {
	Title   lipgloss.Style
	Item    lipgloss.Style
	Faint   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles uses ANSI 256-color codes for broad terminal
// compatibility.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		Item:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Faint:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

// PlainStyles renders without color. Bold is kept for the item name.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain.Bold(true),
		Item:    plain.Bold(true),
		Faint:   plain,
		Success: plain,
		Warning: plain,
		Error:   plain.Bold(true),
	}
}

// StylesForEnvironment returns PlainStyles when NO_COLOR is set and
// DefaultStyles otherwise.
func StylesForEnvironment() Styles {
	if termenv.EnvNoColor() {
		return PlainStyles()
	}
	return DefaultStyles()
}

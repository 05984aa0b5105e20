// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the console on the terminal and blocks until the user
// quits, ctx is cancelled, or the connection fails. logs, if non-nil,
// is attached to the program so its records reach the status line.
func Run(ctx context.Context, doer Doer, options Options, logs *LogHandler) error {
	program := tea.NewProgram(NewModel(doer, options), tea.WithContext(ctx))
	if logs != nil {
		logs.SetProgram(program)
	}

	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	if model, ok := final.(Model); ok && model.Err() != nil {
		return model.Err()
	}
	return nil
}

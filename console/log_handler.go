// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status line.
type logRecordMsg struct {
	// Summary is the human-readable one-line message.
	Summary string

	// Level is the slog level for styling (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg clears a log message from the status line. Serial
// matches the record it fades, so a newer record is not cleared early.
type logRecordFadeMsg struct {
	Serial int
}

// logRecordFadeDelay is how long log messages stay visible in the
// status line.
const logRecordFadeDelay = 5 * time.Second

// LogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages. Records below the configured level
// are dropped.
//
// The handler must be created before the program starts. Call
// SetProgram once the tea.Program is created to enable message
// delivery. Records arriving before SetProgram are dropped.
//
// All handlers derived via WithAttrs/WithGroup share the same program
// pointer, so a single SetProgram call propagates to every derived
// handler.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewLogHandler creates a handler that delivers log records at or
// above level to the bubbletea program.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine.
func (handler *LogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and sends it to the bubbletea program.
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}
	program.Send(handler.message(record))
	return nil
}

// message builds the status-line message for record:
// "message (key=value, ...)".
func (handler *LogHandler) message(record slog.Record) logRecordMsg {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}
	return logRecordMsg{Summary: summary, Level: record.Level}
}

// WithAttrs returns a new handler with the given attributes appended.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append(sliceClone(handler.attrs), attrs...),
		groups:  sliceClone(handler.groups),
	}
}

// WithGroup returns a new handler with the given group name appended.
func (handler *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   sliceClone(handler.attrs),
		groups:  append(sliceClone(handler.groups), name),
	}
}

// sliceClone returns a shallow copy of a slice. Avoids aliasing when
// building derived handlers with WithAttrs/WithGroup.
func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}

// TeeHandler fans each record out to several handlers. Run mode uses
// it to send warnings to the status line and everything to a log file.
type TeeHandler []slog.Handler

// Enabled reports whether any handler wants level.
func (handlers TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes record to every handler that wants it and returns the
// first error.
func (handlers TeeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithAttrs applies attrs to every handler.
func (handlers TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(TeeHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

// WithGroup applies name to every handler.
func (handlers TeeHandler) WithGroup(name string) slog.Handler {
	derived := make(TeeHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}

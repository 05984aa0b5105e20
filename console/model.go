// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/viewd/viewd/protocol"
)

// DefaultRequestTimeout bounds one command round trip.
const DefaultRequestTimeout = 30 * time.Second

// Doer sends one command to the display. *client.Client implements it.
type Doer interface {
	Do(ctx context.Context, command protocol.Command) (protocol.Response, error)
}

// Options configures a Model.
type Options struct {
	// Server is the display address, shown in the header.
	Server string

	// DownloadDir receives fetched images. It must exist.
	DownloadDir string

	// RequestTimeout bounds each command. Zero means
	// DefaultRequestTimeout.
	RequestTimeout time.Duration

	// Keys overrides DefaultKeyMap when non-nil.
	Keys *KeyMap

	// Styles overrides StylesForEnvironment() when non-nil.
	Styles *Styles
}

// responseMsg carries the outcome of one command.
type responseMsg struct {
	Command  protocol.Command
	Response protocol.Response
	Err      error
}

// savedMsg reports a finished FetchBytes save.
type savedMsg struct {
	Path string
	Err  error
}

// statusKind selects the status line style.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

// Model is the bubbletea model for the terminal client.
type Model struct {
	doer           Doer
	server         string
	downloadDir    string
	requestTimeout time.Duration
	keys           KeyMap
	styles         Styles
	help           help.Model

	width int

	// current is the display's item as of the last Response that named
	// one.
	current string
	status  string
	kind    statusKind

	// logSummary overrides the status line while a log record is
	// shown. logSerial identifies the record for its fade message.
	logSummary string
	logLevel   slog.Level
	logSerial  int

	inFlight int
	err      error
}

// NewModel returns a Model that sends commands through doer.
func NewModel(doer Doer, options Options) Model {
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}
	styles := StylesForEnvironment()
	if options.Styles != nil {
		styles = *options.Styles
	}
	timeout := options.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}
	downloadDir := options.DownloadDir
	if downloadDir == "" {
		downloadDir = "."
	}
	return Model{
		doer:           doer,
		server:         options.Server,
		downloadDir:    downloadDir,
		requestTimeout: timeout,
		keys:           keys,
		styles:         styles,
		help:           help.New(),
		status:         "connected",
	}
}

// Err returns the transport error that ended the session, if any.
func (model Model) Err() error {
	return model.err
}

// Current returns the display's item as last reported.
func (model Model) Current() string {
	return model.current
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if key.Matches(message, model.keys.Quit) {
			return model, tea.Quit
		}
		command, ok := model.keys.Command(message)
		if !ok {
			return model, nil
		}
		model.inFlight++
		return model, model.send(command)

	case responseMsg:
		model.inFlight--
		if message.Err != nil {
			model.err = message.Err
			model.setStatus(statusError, fmt.Sprintf("connection lost: %v", message.Err))
			return model, tea.Quit
		}
		return model.handleResponse(message)

	case savedMsg:
		if message.Err != nil {
			model.setStatus(statusError, fmt.Sprintf("save failed: %v", message.Err))
		} else {
			model.setStatus(statusSuccess, "saved "+message.Path)
		}
		return model, nil

	case logRecordMsg:
		model.logSerial++
		model.logSummary = message.Summary
		model.logLevel = message.Level
		serial := model.logSerial
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Serial: serial}
		})

	case logRecordFadeMsg:
		if message.Serial == model.logSerial {
			model.logSummary = ""
		}
		return model, nil

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.help.Width = message.Width
		return model, nil
	}
	return model, nil
}

func (model *Model) handleResponse(message responseMsg) (tea.Model, tea.Cmd) {
	response := message.Response
	if response.HasPath() {
		model.current = response.Path
	}
	if !response.OK {
		model.setStatus(statusError, response.Message)
		return *model, nil
	}

	model.setStatus(statusSuccess, fmt.Sprintf("%s: %s", message.Command, response.Message))
	if message.Command == protocol.CommandFetchBytes && response.HasBytes() {
		return *model, save(model.downloadDir, response)
	}
	return *model, nil
}

func (model *Model) setStatus(kind statusKind, status string) {
	model.kind = kind
	model.status = status
}

// send runs command against the display off the UI goroutine.
func (model Model) send(command protocol.Command) tea.Cmd {
	doer := model.doer
	timeout := model.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		response, err := doer.Do(ctx, command)
		return responseMsg{Command: command, Response: response, Err: err}
	}
}

// save writes a verified FetchBytes payload to directory under the
// item's file name.
func save(directory string, response protocol.Response) tea.Cmd {
	return func() tea.Msg {
		if err := response.Verify(); err != nil {
			return savedMsg{Err: err}
		}
		name := filepath.Base(response.Path)
		if name == "." || name == string(filepath.Separator) {
			return savedMsg{Err: fmt.Errorf("response path %q has no file name", response.Path)}
		}
		destination := filepath.Join(directory, name)
		if err := os.WriteFile(destination, response.Bytes, 0o644); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Path: destination}
	}
}

// stem returns the file name of path without its extension.
func stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// View implements tea.Model.
func (model Model) View() string {
	var builder strings.Builder

	builder.WriteString(model.styles.Title.Render("viewd"))
	if model.server != "" {
		builder.WriteString(model.styles.Faint.Render("  " + model.server))
	}
	builder.WriteString("\n\n")

	if model.current == "" {
		builder.WriteString(model.styles.Faint.Render("  (no item yet, press → to start)"))
	} else {
		builder.WriteString("  " + model.styles.Item.Render(stem(model.current)))
	}
	builder.WriteString("\n\n")

	builder.WriteString("  " + model.truncate(model.statusLine()))
	builder.WriteString("\n\n")

	builder.WriteString(model.help.View(model.keys))
	builder.WriteString("\n")
	return builder.String()
}

func (model Model) statusLine() string {
	if model.logSummary != "" {
		if model.logLevel >= slog.LevelError {
			return model.styles.Error.Render(model.logSummary)
		}
		return model.styles.Warning.Render(model.logSummary)
	}

	status := model.status
	if model.inFlight > 0 {
		status += " …"
	}
	switch model.kind {
	case statusSuccess:
		return model.styles.Success.Render(status)
	case statusWarning:
		return model.styles.Warning.Render(status)
	case statusError:
		return model.styles.Error.Render(status)
	default:
		return model.styles.Faint.Render(status)
	}
}

func (model Model) truncate(line string) string {
	if model.width <= 2 {
		return line
	}
	return ansi.Truncate(line, model.width-2, "…")
}

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/viewd/viewd/protocol"
)

// scriptedDoer answers each command from a table and records calls.
type scriptedDoer struct {
	mu        sync.Mutex
	responses map[protocol.Command]protocol.Response
	err       error
	sent      []protocol.Command
}

func (d *scriptedDoer) Do(_ context.Context, command protocol.Command) (protocol.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, command)
	if d.err != nil {
		return protocol.Response{}, d.err
	}
	return d.responses[command], nil
}

func testModel(t *testing.T, doer Doer) Model {
	t.Helper()
	plain := PlainStyles()
	return NewModel(doer, Options{
		Server:      "display:4433",
		DownloadDir: t.TempDir(),
		Styles:      &plain,
	})
}

// press sends message through Update, runs the resulting command
// (if any) and feeds its message back. Returns the final model and
// the message the command produced.
func press(t *testing.T, model Model, message tea.Msg) (Model, tea.Msg) {
	t.Helper()
	updated, command := model.Update(message)
	model = updated.(Model)
	if command == nil {
		return model, nil
	}
	result := command()
	updated, _ = model.Update(result)
	return updated.(Model), result
}

func TestModelAdvanceUpdatesCurrent(t *testing.T) {
	doer := &scriptedDoer{responses: map[protocol.Command]protocol.Response{
		protocol.CommandAdvance: protocol.Success("/srv/images/sunset.jpg"),
	}}
	model := testModel(t, doer)

	model, _ = press(t, model, tea.KeyMsg{Type: tea.KeyRight})

	if model.Current() != "/srv/images/sunset.jpg" {
		t.Errorf("Current = %q", model.Current())
	}
	view := model.View()
	if !strings.Contains(view, "sunset") || strings.Contains(view, "sunset.jpg") {
		t.Errorf("view should show the file stem only:\n%s", view)
	}
	if !strings.Contains(view, "Advance: Success") {
		t.Errorf("view should show the status message:\n%s", view)
	}
	if len(doer.sent) != 1 || doer.sent[0] != protocol.CommandAdvance {
		t.Errorf("sent = %v", doer.sent)
	}
}

func TestModelErrorResponse(t *testing.T) {
	doer := &scriptedDoer{responses: map[protocol.Command]protocol.Response{
		protocol.CommandRotate: protocol.Failure("/srv/a.png", errors.New("no compositor")),
	}}
	model := testModel(t, doer)

	model, _ = press(t, model, runeKey('r'))
	if model.Err() != nil {
		t.Fatalf("error Response ended the session: %v", model.Err())
	}
	if !strings.Contains(model.View(), "Error: no compositor") {
		t.Errorf("view missing error message:\n%s", model.View())
	}
}

func TestModelFetchSavesVerifiedPayload(t *testing.T) {
	payload := []byte("\x89PNG fake")
	doer := &scriptedDoer{responses: map[protocol.Command]protocol.Response{
		protocol.CommandFetchBytes: protocol.Payload("/srv/images/cat.png", payload),
	}}
	model := testModel(t, doer)

	updated, command := model.Update(runeKey('s'))
	model = updated.(Model)
	response := command()
	updated, saveCommand := model.Update(response)
	model = updated.(Model)
	if saveCommand == nil {
		t.Fatal("FetchBytes response did not schedule a save")
	}
	saved := saveCommand().(savedMsg)
	if saved.Err != nil {
		t.Fatalf("save failed: %v", saved.Err)
	}
	updated, _ = model.Update(saved)
	model = updated.(Model)

	data, err := os.ReadFile(filepath.Join(model.downloadDir, "cat.png"))
	if err != nil || string(data) != string(payload) {
		t.Errorf("saved file = %q, %v", data, err)
	}
	if !strings.Contains(model.View(), "saved ") {
		t.Errorf("view missing save confirmation:\n%s", model.View())
	}
}

func TestModelFetchRejectsCorruptPayload(t *testing.T) {
	response := protocol.Payload("/srv/images/cat.png", []byte("original"))
	response.Bytes = []byte("tampered")
	doer := &scriptedDoer{responses: map[protocol.Command]protocol.Response{
		protocol.CommandFetchBytes: response,
	}}
	model := testModel(t, doer)

	updated, command := model.Update(runeKey('s'))
	model = updated.(Model)
	updated, saveCommand := model.Update(command())
	model = updated.(Model)
	saved := saveCommand().(savedMsg)
	if saved.Err == nil {
		t.Fatal("tampered payload saved")
	}
	if _, err := os.Stat(filepath.Join(model.downloadDir, "cat.png")); !os.IsNotExist(err) {
		t.Errorf("file written despite digest mismatch: %v", err)
	}
}

func TestModelQuit(t *testing.T) {
	doer := &scriptedDoer{}
	model := testModel(t, doer)

	for _, message := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, command := model.Update(message)
		if command == nil {
			t.Fatalf("%s should return a command", message)
		}
		if _, isQuit := command().(tea.QuitMsg); !isQuit {
			t.Errorf("%s: expected QuitMsg", message)
		}
	}
	if len(doer.sent) != 0 {
		t.Errorf("quit keys reached the display: %v", doer.sent)
	}
}

func TestModelTransportErrorQuits(t *testing.T) {
	doer := &scriptedDoer{err: errors.New("connection reset")}
	model := testModel(t, doer)

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	model = updated.(Model)
	updated, quit := model.Update(command())
	model = updated.(Model)

	if model.Err() == nil {
		t.Fatal("transport error not recorded")
	}
	if quit == nil {
		t.Fatal("transport error should quit")
	}
	if _, isQuit := quit().(tea.QuitMsg); !isQuit {
		t.Error("expected QuitMsg")
	}
}

func TestModelUnboundKeyIgnored(t *testing.T) {
	doer := &scriptedDoer{}
	model := testModel(t, doer)
	if _, command := model.Update(runeKey('z')); command != nil {
		t.Error("unbound key produced a command")
	}
}

func TestModelLogRecordShowsAndFades(t *testing.T) {
	model := testModel(t, &scriptedDoer{})

	updated, fade := model.Update(logRecordMsg{Summary: "disk almost full", Level: slog.LevelWarn})
	model = updated.(Model)
	if !strings.Contains(model.View(), "disk almost full") {
		t.Fatalf("log record not shown:\n%s", model.View())
	}
	if fade == nil {
		t.Fatal("log record should schedule a fade")
	}

	// A stale fade does not clear a newer record.
	updated, _ = model.Update(logRecordMsg{Summary: "second warning", Level: slog.LevelWarn})
	model = updated.(Model)
	updated, _ = model.Update(logRecordFadeMsg{Serial: 1})
	model = updated.(Model)
	if !strings.Contains(model.View(), "second warning") {
		t.Error("stale fade cleared the newer record")
	}
	updated, _ = model.Update(logRecordFadeMsg{Serial: 2})
	model = updated.(Model)
	if strings.Contains(model.View(), "second warning") {
		t.Error("fade did not clear the record")
	}
}

func TestModelTruncatesToWidth(t *testing.T) {
	doer := &scriptedDoer{responses: map[protocol.Command]protocol.Response{
		protocol.CommandRotate: protocol.Failure("/a.png", errors.New(strings.Repeat("x", 200))),
	}}
	model := testModel(t, doer)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	model = updated.(Model)
	model, _ = press(t, model, runeKey('r'))

	for _, line := range strings.Split(model.View(), "\n") {
		if strings.Contains(line, "xxxx") && len([]rune(line)) > 40 {
			t.Errorf("status line not truncated (%d runes)", len([]rune(line)))
		}
	}
}

func TestRequestTimeoutDefault(t *testing.T) {
	model := NewModel(&scriptedDoer{}, Options{})
	if model.requestTimeout != DefaultRequestTimeout {
		t.Errorf("requestTimeout = %v", model.requestTimeout)
	}
	if model.downloadDir != "." {
		t.Errorf("downloadDir = %q", model.downloadDir)
	}
	model = NewModel(&scriptedDoer{}, Options{RequestTimeout: time.Second})
	if model.requestTimeout != time.Second {
		t.Errorf("requestTimeout = %v", model.requestTimeout)
	}
}

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/viewd/viewd/control"
	"github.com/viewd/viewd/display"
	"github.com/viewd/viewd/lib/clock"
	"github.com/viewd/viewd/lib/testutil"
	"github.com/viewd/viewd/navigate"
	"github.com/viewd/viewd/protocol"
	"github.com/viewd/viewd/transport"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startDisplay runs a headless control loop over files and a bridge in
// front of it. Both stop when the test completes.
func startDisplay(t *testing.T, files map[string][]byte, options ...control.Option) (*Bridge, *display.Headless) {
	t.Helper()
	return startDisplayIn(t, testutil.ImageDir(t, files), options...)
}

// startDisplayIn is startDisplay over an existing directory.
func startDisplayIn(t *testing.T, directory string, options ...control.Option) (*Bridge, *display.Headless) {
	t.Helper()
	cursor, err := navigate.Import(directory)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	headless := display.NewHeadless(quietLogger())
	options = append([]control.Option{
		control.WithLogger(quietLogger()),
		control.WithClock(clock.Fake(time.Unix(0, 0))),
	}, options...)
	controller := control.New(navigate.NewNavigator(cursor), headless, options...)

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() { loopDone <- controller.Run(ctx) }()

	bridge := &Bridge{ListenAddr: "127.0.0.1:0", Controller: controller, Logger: quietLogger()}
	if err := bridge.Start(ctx); err != nil {
		cancel()
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		bridge.Stop()
		cancel()
		testutil.RequireReceive(t, loopDone, 5*time.Second, "waiting for control loop")
	})
	return bridge, headless
}

func dial(t *testing.T, bridge *Bridge) *transport.Conn {
	t.Helper()
	dialer := &transport.Dialer{Timeout: 5 * time.Second}
	connection, err := dialer.DialContext(context.Background(), bridge.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { connection.Close() })
	return connection
}

func roundTrip(t *testing.T, connection *transport.Conn, command protocol.Command) protocol.Response {
	t.Helper()
	encoded, err := protocol.EncodeRequest(protocol.Request{Command: command})
	if err != nil {
		t.Fatalf("EncodeRequest: %v", err)
	}
	return roundTripRaw(t, connection, encoded)
}

func roundTripRaw(t *testing.T, connection *transport.Conn, frame []byte) protocol.Response {
	t.Helper()
	connection.SetDeadline(time.Now().Add(5 * time.Second))
	if err := connection.Send(frame); err != nil {
		t.Fatalf("Send: %v", err)
	}
	reply, err := connection.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	response, err := protocol.DecodeResponse(reply)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	return response
}

func TestAdvanceOverTheWire(t *testing.T) {
	bridge, headless := startDisplay(t, map[string][]byte{"a.png": nil, "b.png": nil})
	connection := dial(t, bridge)

	response := roundTrip(t, connection, protocol.CommandAdvance)
	if !response.OK || filepath.Base(response.Path) != "b.png" {
		t.Fatalf("Advance = %+v, want b.png after the initial a.png", response)
	}
	if headless.Current() != response.Path {
		t.Errorf("display shows %q, response says %q", headless.Current(), response.Path)
	}

	response = roundTrip(t, connection, protocol.CommandRetreat)
	if !response.OK || filepath.Base(response.Path) != "a.png" {
		t.Errorf("Retreat = %+v, want a.png", response)
	}
}

func TestFetchBytesOverTheWire(t *testing.T) {
	bridge, _ := startDisplay(t, map[string][]byte{"a.png": nil})
	connection := dial(t, bridge)

	response := roundTrip(t, connection, protocol.CommandFetchBytes)
	if !response.OK || !response.HasBytes() {
		t.Fatalf("FetchBytes = %+v", response)
	}
	if err := response.Verify(); err != nil {
		t.Errorf("Verify: %v", err)
	}
	if !strings.HasPrefix(string(response.Bytes), "\x89PNG") {
		t.Errorf("payload is not the png file: % x", response.Bytes[:8])
	}
}

func TestOversizeFetchBytesIsAnErrorResponse(t *testing.T) {
	bridge, _ := startDisplay(t, map[string][]byte{"a.png": nil}, control.WithMaxPayload(16))
	connection := dial(t, bridge)

	response := roundTrip(t, connection, protocol.CommandFetchBytes)
	if response.OK || response.HasBytes() {
		t.Fatalf("FetchBytes = OK %v with %d bytes, want an error Response", response.OK, len(response.Bytes))
	}
	if filepath.Base(response.Path) != "a.png" || !strings.Contains(response.Message, protocol.ErrPayloadTooLarge.Error()) {
		t.Errorf("FetchBytes = %+v, want ErrPayloadTooLarge naming a.png", response)
	}
	if response := roundTrip(t, connection, protocol.CommandRotate); !response.OK {
		t.Errorf("connection unusable after oversize fetch: %+v", response)
	}
}

// replyingSubmitter answers every envelope with response.
type replyingSubmitter struct {
	response protocol.Response
}

func (r *replyingSubmitter) Submit(envelope control.Envelope) {
	envelope.Deliver(r.response)
}

func TestResponseLargerThanFrameIsReplaced(t *testing.T) {
	if protocol.MaxPayloadSize >= transport.MaxFrameSize {
		t.Fatalf("MaxPayloadSize %d leaves no room in a %d byte frame", protocol.MaxPayloadSize, transport.MaxFrameSize)
	}
	submitter := &replyingSubmitter{response: protocol.Payload("/images/huge.png", make([]byte, transport.MaxFrameSize))}
	bridge := &Bridge{ListenAddr: "127.0.0.1:0", Controller: submitter, Logger: quietLogger()}
	if err := bridge.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(bridge.Stop)
	connection := dial(t, bridge)

	response := roundTrip(t, connection, protocol.CommandFetchBytes)
	if response.OK || response.Path != "/images/huge.png" {
		t.Fatalf("response = OK %v path %q, want a failure naming the item", response.OK, response.Path)
	}
	if !strings.Contains(response.Message, protocol.ErrPayloadTooLarge.Error()) {
		t.Errorf("message = %q, want ErrPayloadTooLarge", response.Message)
	}
}

func TestNonUTF8FileNameOverTheWire(t *testing.T) {
	directory := t.TempDir()
	name := "a\xff.png"
	if err := os.WriteFile(filepath.Join(directory, name), testutil.PNG(t, 2, 2), 0o644); err != nil {
		t.Skipf("filesystem rejects non-UTF-8 names: %v", err)
	}
	if err := os.WriteFile(filepath.Join(directory, "b.png"), testutil.PNG(t, 1, 1), 0o644); err != nil {
		t.Fatal(err)
	}
	bridge, _ := startDisplayIn(t, directory)
	connection := dial(t, bridge)

	// The initial display shows the non-UTF-8 name; every command
	// against it must still decode.
	for _, command := range []protocol.Command{protocol.CommandRotate, protocol.CommandFetchBytes} {
		response := roundTrip(t, connection, command)
		if !response.OK || filepath.Base(response.Path) != name {
			t.Errorf("%v = %+v, want success naming %q", command, response, name)
		}
	}
	response := roundTrip(t, connection, protocol.CommandAdvance)
	if !response.OK || filepath.Base(response.Path) != "b.png" {
		t.Errorf("Advance = %+v, want b.png", response)
	}
}

func TestInvalidFrameKeepsConnection(t *testing.T) {
	bridge, _ := startDisplay(t, map[string][]byte{"a.png": nil})
	connection := dial(t, bridge)

	response := roundTripRaw(t, connection, []byte{0xff, 0x00, 0x13})
	if response.OK || !strings.HasPrefix(response.Message, "Error: invalid request") {
		t.Fatalf("garbage frame = %+v, want invalid request error", response)
	}

	response = roundTrip(t, connection, protocol.CommandRotate)
	if !response.OK {
		t.Errorf("connection unusable after invalid frame: %+v", response)
	}
}

// TestConcurrentConnectionsGetTheirOwnResponses has two clients send
// different commands at the same time. Every FetchBytes response must
// carry a payload and every TogglePageant response must carry the
// pageant message; a response crossing to the other connection would
// break one of those.
func TestConcurrentConnectionsGetTheirOwnResponses(t *testing.T) {
	bridge, _ := startDisplay(t, map[string][]byte{"a.png": nil, "b.png": nil})
	fetcher := dial(t, bridge)
	toggler := dial(t, bridge)

	const rounds = 50
	var waitGroup sync.WaitGroup
	errs := make(chan string, 2*rounds)

	waitGroup.Add(2)
	go func() {
		defer waitGroup.Done()
		for i := 0; i < rounds; i++ {
			response := roundTrip(t, fetcher, protocol.CommandFetchBytes)
			if !response.HasBytes() || response.Message != protocol.StatusSuccess {
				errs <- "fetcher got " + response.Message
			}
		}
	}()
	go func() {
		defer waitGroup.Done()
		for i := 0; i < rounds; i++ {
			response := roundTrip(t, toggler, protocol.CommandTogglePageant)
			if response.HasBytes() || !strings.HasPrefix(response.Message, "pageant ") {
				errs <- "toggler got " + response.Message
			}
		}
	}()
	waitGroup.Wait()
	close(errs)

	for message := range errs {
		t.Error(message)
	}
}

// holdingSubmitter never answers; it hands envelopes to the test.
type holdingSubmitter struct {
	envelopes chan control.Envelope
}

func (h *holdingSubmitter) Submit(envelope control.Envelope) {
	h.envelopes <- envelope
}

func TestStopWithRequestInFlight(t *testing.T) {
	submitter := &holdingSubmitter{envelopes: make(chan control.Envelope, 1)}
	bridge := &Bridge{ListenAddr: "127.0.0.1:0", Controller: submitter, Logger: quietLogger()}
	if err := bridge.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	connection := dial(t, bridge)
	encoded, _ := protocol.EncodeRequest(protocol.Request{Command: protocol.CommandAdvance})
	if err := connection.Send(encoded); err != nil {
		t.Fatal(err)
	}
	held := testutil.RequireReceive(t, submitter.envelopes, 5*time.Second, "waiting for submission")

	stopped := make(chan struct{})
	go func() {
		bridge.Stop()
		close(stopped)
	}()
	testutil.RequireClosed(t, stopped, 5*time.Second, "Stop blocked on an unanswered request")

	if err := held.Deliver(protocol.Success("late")); !errors.Is(err, control.ErrChannelClosed) {
		t.Errorf("late delivery = %v, want ErrChannelClosed", err)
	}

	connection.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err := connection.Receive(); err == nil {
		t.Error("connection still open after Stop")
	}
}

func TestStartValidation(t *testing.T) {
	if err := (&Bridge{Controller: &holdingSubmitter{}}).Start(context.Background()); err == nil {
		t.Error("Start without ListenAddr succeeded")
	}
	if err := (&Bridge{ListenAddr: "127.0.0.1:0"}).Start(context.Background()); err == nil {
		t.Error("Start without Controller succeeded")
	}
}

func TestAddrBeforeStart(t *testing.T) {
	if addr := (&Bridge{}).Addr(); addr != nil {
		t.Errorf("Addr before Start = %v", addr)
	}
}

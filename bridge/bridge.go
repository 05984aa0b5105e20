// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/viewd/viewd/control"
	"github.com/viewd/viewd/lib/codec"
	"github.com/viewd/viewd/lib/netutil"
	"github.com/viewd/viewd/protocol"
	"github.com/viewd/viewd/transport"
)

// Submitter accepts requests for the control loop. *control.Controller
// implements it.
type Submitter interface {
	Submit(envelope control.Envelope)
}

// Bridge serves remote clients on behalf of one control loop.
type Bridge struct {
	// ListenAddr is the TCP address to listen on (e.g. "0.0.0.0:4433").
	ListenAddr string

	// TLS, when non-nil, wraps every accepted connection in TLS.
	TLS *tls.Config

	// Controller receives every decoded request.
	Controller Submitter

	// Logger receives structured log output. If nil, slog.Default() is
	// used. Per-connection events are logged at Debug level; errors and
	// lifecycle events at Info/Error.
	Logger *slog.Logger

	listener    *transport.Listener
	cancel      context.CancelFunc
	done        chan struct{}
	connections sync.WaitGroup
}

// logger returns the configured logger or the default.
func (b *Bridge) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// Start binds the listener and begins accepting connections in the
// background. It returns once the listener is bound, or an error if
// binding fails. The bridge runs until Stop is called or ctx is
// cancelled.
func (b *Bridge) Start(ctx context.Context) error {
	if b.ListenAddr == "" {
		return fmt.Errorf("bridge: ListenAddr is required")
	}
	if b.Controller == nil {
		return fmt.Errorf("bridge: Controller is required")
	}

	listener, err := transport.Listen(b.ListenAddr, b.TLS)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	b.listener = listener

	ctx, b.cancel = context.WithCancel(ctx)
	b.done = make(chan struct{})

	go func() {
		defer close(b.done)
		b.acceptLoop(ctx)
	}()
	context.AfterFunc(ctx, func() { listener.Close() })

	b.logger().Info("bridge started",
		"listen_addr", listener.Addr().String(),
		"tls", b.TLS != nil,
	)
	return nil
}

// Addr returns the listener's address, useful when binding to port 0.
// Returns nil if the bridge has not been started.
func (b *Bridge) Addr() net.Addr {
	if b.listener == nil {
		return nil
	}
	return b.listener.Addr()
}

// Stop closes the listener and every open connection, then waits for
// the connection goroutines to finish.
func (b *Bridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	if b.listener != nil {
		b.listener.Close()
	}
	if b.done != nil {
		<-b.done
	}
}

// Wait blocks until the bridge has stopped.
func (b *Bridge) Wait() {
	if b.done != nil {
		<-b.done
	}
}

// acceptLoop accepts connections and serves each on its own goroutine.
// It waits for all connection goroutines to finish before returning,
// so that closing the done channel signals full quiescence.
func (b *Bridge) acceptLoop(ctx context.Context) {
	var connectionCount int64

	for {
		connection, err := b.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				b.connections.Wait()
				return
			}
			b.logger().Error("accept failed", "error", err)
			continue
		}

		connectionCount++
		connectionID := connectionCount
		b.connections.Add(1)
		go func() {
			defer b.connections.Done()
			b.handleConnection(ctx, connection, connectionID)
		}()
	}
}

// handleConnection runs the receive/submit/reply cycle for one client.
func (b *Bridge) handleConnection(ctx context.Context, connection *transport.Conn, connectionID int64) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer connection.Close()
	// Unblocks Receive when the bridge stops.
	context.AfterFunc(ctx, func() { connection.Close() })

	logger := b.logger().With("connection_id", connectionID)
	logger.Debug("connection accepted",
		"remote_addr", connection.RemoteAddr(),
	)

	// One request in flight at a time, so one slot is enough.
	reply := make(chan protocol.Response, 1)

	for {
		frame, err := connection.Receive()
		if err != nil {
			if !netutil.IsExpectedCloseError(err) && ctx.Err() == nil {
				logger.Warn("receive failed", "error", err)
			}
			break
		}

		var response protocol.Response
		request, err := protocol.DecodeRequest(frame)
		if err != nil {
			logger.Warn("invalid request", "error", err, "frame_bytes", len(frame))
			if logger.Enabled(ctx, slog.LevelDebug) {
				if notation, diagErr := codec.Diagnose(frame); diagErr == nil {
					logger.Debug("rejected frame", "cbor", notation)
				}
			}
			response = protocol.Failure("", fmt.Errorf("invalid request: %w", err))
		} else {
			logger.Debug("request received", "command", request.Command)
			b.Controller.Submit(control.Envelope{
				Request:    request,
				Reply:      reply,
				Done:       ctx.Done(),
				Connection: connectionID,
			})
			select {
			case response = <-reply:
			case <-ctx.Done():
				logger.Debug("connection cancelled awaiting response", "command", request.Command)
				return
			}
		}

		encoded, err := protocol.EncodeResponse(response)
		if err == nil && len(encoded) > transport.MaxFrameSize {
			logger.Warn("response exceeds frame limit", "path", response.Path, "response_bytes", len(encoded))
			encoded, err = protocol.EncodeResponse(protocol.Failure(response.Path,
				fmt.Errorf("%w: response is %d bytes, frame limit is %d", protocol.ErrPayloadTooLarge, len(encoded), transport.MaxFrameSize)))
		}
		if err != nil {
			logger.Error("encoding response failed", "error", err)
			return
		}
		if err := connection.Send(encoded); err != nil {
			if !netutil.IsExpectedCloseError(err) {
				logger.Warn("send failed", "error", err)
			}
			break
		}
	}

	logger.Debug("connection closed")
}

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// Conn is a framed, reliable, ordered message stream over one network
// connection. Receive and Send may run concurrently with each other,
// but each must have a single caller at a time.
type Conn struct {
	conn   net.Conn
	reader *bufio.Reader

	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps an established network connection.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn, reader: bufio.NewReader(conn)}
}

// Receive reads the next message. Returns io.EOF when the peer closed
// the connection between messages.
func (c *Conn) Receive() ([]byte, error) {
	return ReadFrame(c.reader)
}

// Send writes one message.
func (c *Conn) Send(message []byte) error {
	return WriteFrame(c.conn, message)
}

// SetDeadline sets the read and write deadline on the underlying
// connection. A zero time clears it.
func (c *Conn) SetDeadline(deadline time.Time) error {
	return c.conn.SetDeadline(deadline)
}

// RemoteAddr returns the peer's network address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection. Safe to call more than once; a blocked
// Receive returns an error.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// Listener accepts client connections for the display process.
type Listener struct {
	listener net.Listener
}

// Listen binds address (e.g. "127.0.0.1:4433", or ":0" for an
// ephemeral port). A non-nil tlsConfig wraps every accepted connection
// in TLS.
func Listen(address string, tlsConfig *tls.Config) (*Listener, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", address, err)
	}
	if tlsConfig != nil {
		listener = tls.NewListener(listener, tlsConfig)
	}
	return &Listener{listener: listener}, nil
}

// Accept blocks until a client connects. After Close it returns an
// error matching net.ErrClosed.
func (l *Listener) Accept() (*Conn, error) {
	conn, err := l.listener.Accept()
	if err != nil {
		return nil, err
	}
	return NewConn(conn), nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.listener.Addr()
}

// Close stops accepting connections. Existing connections stay open.
func (l *Listener) Close() error {
	err := l.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Dialer opens client connections to a display process.
type Dialer struct {
	// Timeout bounds connection setup, including the TLS handshake.
	// Zero means only the context deadline applies.
	Timeout time.Duration

	// TLS enables TLS when non-nil.
	TLS *tls.Config
}

// DialContext connects to address (host:port).
func (d *Dialer) DialContext(ctx context.Context, address string) (*Conn, error) {
	netDialer := &net.Dialer{Timeout: d.Timeout}
	if d.TLS == nil {
		conn, err := netDialer.DialContext(ctx, "tcp", address)
		if err != nil {
			return nil, fmt.Errorf("connecting to %s: %w", address, err)
		}
		return NewConn(conn), nil
	}
	tlsDialer := &tls.Dialer{NetDialer: netDialer, Config: d.TLS}
	conn, err := tlsDialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s over tls: %w", address, err)
	}
	return NewConn(conn), nil
}

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/viewd/viewd/protocol"
	"github.com/viewd/viewd/transport"
)

// DefaultDialTimeout bounds connection setup when Options.DialTimeout
// is zero.
const DefaultDialTimeout = 10 * time.Second

// Options configures Dial.
type Options struct {
	// TLS enables TLS when non-nil.
	TLS *tls.Config

	// DialTimeout bounds connection setup. Zero means
	// DefaultDialTimeout.
	DialTimeout time.Duration
}

// Client is a connection to one display process.
type Client struct {
	address    string
	mu         sync.Mutex
	connection *transport.Conn
}

// Dial connects to the display at address (host:port).
func Dial(ctx context.Context, address string, options Options) (*Client, error) {
	timeout := options.DialTimeout
	if timeout == 0 {
		timeout = DefaultDialTimeout
	}
	dialer := &transport.Dialer{Timeout: timeout, TLS: options.TLS}
	connection, err := dialer.DialContext(ctx, address)
	if err != nil {
		return nil, err
	}
	return &Client{address: address, connection: connection}, nil
}

// Address returns the display address this client dialed.
func (c *Client) Address() string {
	return c.address
}

// Do sends command and returns the display's Response. A Response with
// OK false is a successful round trip; the returned error is reserved
// for transport and decoding failures, after which the Client should
// be closed.
//
// If ctx has a deadline it bounds the whole round trip. Cancelling ctx
// without a deadline does not interrupt a round trip in progress.
func (c *Client) Do(ctx context.Context, command protocol.Command) (protocol.Response, error) {
	encoded, err := protocol.EncodeRequest(protocol.Request{Command: command})
	if err != nil {
		return protocol.Response{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return protocol.Response{}, err
	}
	deadline, _ := ctx.Deadline()
	if err := c.connection.SetDeadline(deadline); err != nil {
		return protocol.Response{}, fmt.Errorf("setting deadline: %w", err)
	}

	if err := c.connection.Send(encoded); err != nil {
		return protocol.Response{}, fmt.Errorf("sending %s: %w", command, err)
	}
	reply, err := c.connection.Receive()
	if err != nil {
		return protocol.Response{}, fmt.Errorf("receiving %s response: %w", command, err)
	}
	response, err := protocol.DecodeResponse(reply)
	if err != nil {
		return protocol.Response{}, err
	}
	return response, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.connection.Close()
}

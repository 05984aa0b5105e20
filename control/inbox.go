// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"fmt"
	"sync"

	"github.com/viewd/viewd/protocol"
)

// Envelope is one Request in flight from a connection to the control
// loop.
type Envelope struct {
	Request protocol.Request

	// Reply receives exactly one Response. It must have capacity for
	// at least one value so delivery never blocks the control loop.
	Reply chan<- protocol.Response

	// Done is closed when the originating connection goes away. A nil
	// Done means the submitter is always listening.
	Done <-chan struct{}

	// Connection identifies the originating connection in logs.
	Connection int64
}

// Deliver hands response to the envelope's connection without
// blocking. It returns ErrChannelClosed if the connection is gone or
// cannot accept the response.
func (e Envelope) Deliver(response protocol.Response) error {
	select {
	case <-e.Done:
		return ErrChannelClosed
	default:
	}
	select {
	case e.Reply <- response:
		return nil
	default:
		return fmt.Errorf("%w: reply buffer full for connection %d", ErrChannelClosed, e.Connection)
	}
}

// Inbox is the unbounded request queue between connections and the
// control loop. It is safe for any number of concurrent submitters
// and one consumer.
type Inbox struct {
	mu      sync.Mutex
	pending []Envelope
	closed  bool
	notify  chan struct{}
}

// NewInbox returns an empty, open Inbox.
func NewInbox() *Inbox {
	return &Inbox{notify: make(chan struct{}, 1)}
}

// Submit queues envelope for the control loop. After Close, Submit
// answers the envelope immediately with an ErrShuttingDown Response
// and returns the delivery error, if any.
func (i *Inbox) Submit(envelope Envelope) error {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return envelope.Deliver(protocol.Failure("", ErrShuttingDown))
	}
	i.pending = append(i.pending, envelope)
	i.mu.Unlock()

	select {
	case i.notify <- struct{}{}:
	default:
	}
	return nil
}

// Drain returns every queued envelope in submission order and empties
// the queue. It never blocks.
func (i *Inbox) Drain() []Envelope {
	i.mu.Lock()
	defer i.mu.Unlock()
	pending := i.pending
	i.pending = nil
	return pending
}

// Notify returns a channel that receives after Submit queues an
// envelope. Several submissions may coalesce into one notification.
func (i *Inbox) Notify() <-chan struct{} {
	return i.notify
}

// Close stops accepting envelopes and returns those still queued.
func (i *Inbox) Close() []Envelope {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.closed = true
	pending := i.pending
	i.pending = nil
	return pending
}

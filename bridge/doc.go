// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge connects remote clients to the control loop.
//
// [Bridge] listens for client connections (TCP, optionally TLS) and
// runs one goroutine per connection. Each goroutine reads one frame,
// decodes it into a [protocol.Request], submits it to the control
// loop together with a reply channel owned by that connection, waits
// for exactly one Response, and writes it back before reading the next
// frame. A connection therefore has at most one request in flight,
// and a Response can only ever reach the connection whose Request
// produced it.
//
// A frame that fails to decode is answered with an error Response on
// the same connection; the connection stays open. Start binds the
// listener and returns; Stop closes the listener and every open
// connection, then waits for the connection goroutines to drain. Addr
// returns the bound address, which may use an ephemeral port if port
// 0 was requested.
package bridge

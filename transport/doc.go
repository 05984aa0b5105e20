// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package transport carries viewd protocol messages between a client
// and the display process.
//
// The display side calls [Listen] and accepts one [Conn] per client;
// the client side uses a [Dialer]. A Conn exchanges whole messages:
// each Send writes one frame, each Receive reads one. Frames are a
// 4-byte big-endian payload length followed by the payload, capped at
// [MaxFrameSize] so a hostile peer cannot make the receiver allocate
// without bound.
//
// TLS is optional. [ServerTLS] and [ClientTLS] load PEM material from
// files; a nil *tls.Config means plain TCP (suitable for loopback or a
// trusted LAN).
package transport

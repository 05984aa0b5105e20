// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package protocol defines the remote-control messages exchanged
// between a viewd client and the display process, and their binary
// encoding.
//
// A [Request] carries exactly one [Command]. Every Request that
// reaches the display's control loop produces exactly one [Response]:
// the path of the item now displayed, a status message, and for
// [CommandFetchBytes] the item's bytes plus a BLAKE3 digest of them.
//
// Messages are CBOR maps with small integer keys, encoded with
// lib/codec's deterministic mode. Each message occupies one transport
// frame (see package transport). The layout is an internal contract
// between the two halves of viewd; there is no version negotiation.
// Decoding fails with a *[DecodeError] on truncated or malformed
// input, unknown fields, or an unknown command discriminant.
package protocol

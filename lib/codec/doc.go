// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides viewd's standard CBOR encoding configuration.
//
// Both ends of the remote-control protocol are built from this module,
// so the wire format is an internal contract: there is no schema
// negotiation and no version field. Determinism is what keeps the two
// ends honest. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2) and the decoder refuses duplicate keys and indefinite-length
// items, so a logical message has exactly one byte representation.
//
// Each transport frame carries exactly one message:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types that only ever cross the wire use `cbor` struct tags. Integer
// map keys (`cbor:"1,keyasint"`) keep messages compact; the image
// payload dominates every Response anyway.
package codec

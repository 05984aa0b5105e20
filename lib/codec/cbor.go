// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "github.com/fxamacker/cbor/v2"

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

// decMode rejects duplicate map keys, indefinite-length items and
// unknown struct fields so a message has exactly one valid encoding on
// the wire.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		// Both ends are built from the same tree. A field the decoder
		// does not know is a malformed message, not a newer peer.
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		// Protocol messages are flat maps. Deep nesting is never
		// legitimate and only costs stack.
		MaxNestedLevels: 16,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. Trailing bytes after the first
// data item are an error.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for
// data. The bridge logs it at debug level for frames it rejects.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

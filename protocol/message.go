// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

// StatusSuccess is the message carried by every successful Response.
const StatusSuccess = "Success"

// MaxPayloadSize is the largest FetchBytes payload a Response may
// carry. It leaves 64 KiB of a 64 MiB transport frame for the rest of
// the Response.
const MaxPayloadSize = 64<<20 - 64<<10

// ErrPayloadTooLarge reports a Response that cannot fit in one frame.
var ErrPayloadTooLarge = errors.New("payload too large")

// Request asks the display to perform one command.
type Request struct {
	Command Command
}

// Response is the outcome of one Request.
//
// Path is the item displayed after the command ran; empty means the
// display had nothing to name (for example the item set is
// exhausted). Bytes is non-nil only for a successful FetchBytes, and
// may be empty-but-present for an empty file. Digest is the BLAKE3-256
// hash of Bytes whenever Bytes is present.
//
// Path is any byte sequence the filesystem allows, not necessarily
// valid UTF-8, and crosses the wire unchanged. Bytes and Digest keep
// the difference between nil and empty.
type Response struct {
	OK      bool
	Path    string
	Message string
	Bytes   []byte
	Digest  []byte
}

// Success builds a successful Response naming path.
func Success(path string) Response {
	return Response{OK: true, Path: path, Message: StatusSuccess}
}

// SuccessWithMessage builds a successful Response carrying a
// command-specific message instead of StatusSuccess.
func SuccessWithMessage(path, message string) Response {
	return Response{OK: true, Path: path, Message: validText(message)}
}

// Payload builds a successful FetchBytes Response. data must be
// non-nil; pass []byte{} for an empty file.
func Payload(path string, data []byte) Response {
	if data == nil {
		data = []byte{}
	}
	return Response{OK: true, Path: path, Message: StatusSuccess, Bytes: data, Digest: Digest(data)}
}

// Failure builds an error Response. It never carries a payload. Bytes
// of the error text that are not UTF-8, typically from a file name,
// are replaced with U+FFFD.
func Failure(path string, err error) Response {
	return Response{OK: false, Path: path, Message: validText(fmt.Sprintf("Error: %v", err))}
}

// HasPath reports whether the Response names an item.
func (r Response) HasPath() bool { return r.Path != "" }

// HasBytes reports whether the Response carries a payload.
func (r Response) HasBytes() bool { return r.Bytes != nil }

// Verify checks Bytes against Digest. A Response without a payload
// always verifies.
func (r Response) Verify() error {
	if r.Bytes == nil {
		return nil
	}
	if !bytes.Equal(Digest(r.Bytes), r.Digest) {
		return fmt.Errorf("payload digest mismatch for %s (%d bytes)", r.Path, len(r.Bytes))
	}
	return nil
}

// Digest returns the BLAKE3-256 hash of data.
func Digest(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

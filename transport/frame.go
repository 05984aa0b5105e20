// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"encoding/binary"
	"fmt"
	"io"
)

// frameHeaderLength is the size of the big-endian uint32 length
// prefix.
const frameHeaderLength = 4

// MaxFrameSize is the largest payload a frame may carry. FetchBytes
// responses hold a whole image file, so this is sized for large
// photographs rather than for control messages.
const MaxFrameSize = 64 * 1024 * 1024

// WriteFrame writes payload to w as a single length-prefixed frame.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("frame payload length %d exceeds maximum %d", len(payload), MaxFrameSize)
	}
	frame := make([]byte, frameHeaderLength+len(payload))
	binary.BigEndian.PutUint32(frame[:frameHeaderLength], uint32(len(payload)))
	copy(frame[frameHeaderLength:], payload)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadFrame reads one frame from r and returns its payload. A clean
// end of stream before the header returns io.EOF unwrapped so callers
// can tell a closed peer from a broken one.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [frameHeaderLength]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame header: %w", err)
	}
	length := binary.BigEndian.Uint32(header[:])
	if length > MaxFrameSize {
		return nil, fmt.Errorf("frame payload length %d exceeds maximum %d", length, MaxFrameSize)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read frame payload: %w", err)
	}
	return payload, nil
}

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/viewd/viewd/lib/codec"
)

// DecodeError reports wire bytes that are not a valid message.
type DecodeError struct {
	// Message names the message type being decoded ("request" or
	// "response").
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Message, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrUnknownCommand is wrapped by DecodeError and returned by
// EncodeRequest when the command discriminant is not defined.
var ErrUnknownCommand = errors.New("unknown command")

// wireRequest is the encoded layout of Request.
type wireRequest struct {
	Command Command `cbor:"1,keyasint"`
}

// wireResponse is the encoded layout of Response. Optional fields are
// pointers so absence and emptiness stay distinguishable across the
// wire. Path is a byte string: file names need not be UTF-8, and a
// CBOR text string must be.
type wireResponse struct {
	OK      bool    `cbor:"1,keyasint"`
	Path    *[]byte `cbor:"2,keyasint,omitempty"`
	Message string  `cbor:"3,keyasint"`
	Bytes   *[]byte `cbor:"4,keyasint,omitempty"`
	Digest  *[]byte `cbor:"5,keyasint,omitempty"`
}

// EncodeRequest serializes a Request. Fails if the command is not
// defined, so an invalid request never reaches the wire.
func EncodeRequest(request Request) ([]byte, error) {
	if !request.Command.Valid() {
		return nil, fmt.Errorf("encode request: %w %d", ErrUnknownCommand, uint8(request.Command))
	}
	return codec.Marshal(wireRequest{Command: request.Command})
}

// DecodeRequest parses bytes produced by EncodeRequest.
func DecodeRequest(data []byte) (Request, error) {
	if len(data) == 0 {
		return Request{}, &DecodeError{Message: "request", Err: errors.New("empty message")}
	}
	var wire wireRequest
	if err := codec.Unmarshal(data, &wire); err != nil {
		return Request{}, &DecodeError{Message: "request", Err: err}
	}
	if !wire.Command.Valid() {
		return Request{}, &DecodeError{
			Message: "request",
			Err:     fmt.Errorf("%w %d", ErrUnknownCommand, uint8(wire.Command)),
		}
	}
	return Request{Command: wire.Command}, nil
}

// EncodeResponse serializes a Response.
func EncodeResponse(response Response) ([]byte, error) {
	wire := wireResponse{
		OK:      response.OK,
		Message: validText(response.Message),
	}
	if response.Path != "" {
		path := []byte(response.Path)
		wire.Path = &path
	}
	if response.Bytes != nil {
		payload := response.Bytes
		wire.Bytes = &payload
	}
	if response.Digest != nil {
		digest := response.Digest
		wire.Digest = &digest
	}
	return codec.Marshal(wire)
}

// DecodeResponse parses bytes produced by EncodeResponse.
func DecodeResponse(data []byte) (Response, error) {
	if len(data) == 0 {
		return Response{}, &DecodeError{Message: "response", Err: errors.New("empty message")}
	}
	var wire wireResponse
	if err := codec.Unmarshal(data, &wire); err != nil {
		return Response{}, &DecodeError{Message: "response", Err: err}
	}
	response := Response{
		OK:      wire.OK,
		Message: wire.Message,
	}
	if wire.Path != nil {
		if len(*wire.Path) == 0 {
			return Response{}, &DecodeError{Message: "response", Err: errors.New("present path is empty")}
		}
		response.Path = string(*wire.Path)
	}
	if wire.Bytes != nil {
		response.Bytes = nonNil(*wire.Bytes)
	}
	if wire.Digest != nil {
		response.Digest = nonNil(*wire.Digest)
	}
	return response, nil
}

// nonNil keeps a present-but-empty byte string present.
func nonNil(data []byte) []byte {
	if data == nil {
		return []byte{}
	}
	return data
}

// validText replaces invalid UTF-8 in text, which a CBOR text string
// cannot carry.
func validText(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "\uFFFD")
}

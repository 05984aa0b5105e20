// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package display

import (
	"fmt"
	"image"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads and fully decodes the image at path. It returns the
// registered format name alongside the image.
func Decode(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", &Error{Operation: "open", Path: path, Err: err}
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", &Error{Operation: "decode", Path: path, Err: err}
	}
	return img, format, nil
}

// Probe reports why path cannot be shown, or nil if it can.
func Probe(path string) error {
	_, _, err := Decode(path)
	return err
}

// ReadFile returns the raw bytes of path. This is the loader behind
// FetchBytes; it does not decode.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Operation: "read", Path: path, Err: err}
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// RotateImage returns src turned clockwise by degrees, which must be a
// multiple of 90. A zero rotation returns src unchanged.
func RotateImage(src image.Image, degrees int) (image.Image, error) {
	if !ValidRotation(degrees) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRotation, degrees)
	}
	quarterTurns := NormalizeDegrees(degrees) / 90
	if quarterTurns == 0 {
		return src, nil
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	var out *image.RGBA
	if quarterTurns == 2 {
		out = image.NewRGBA(image.Rect(0, 0, width, height))
	} else {
		out = image.NewRGBA(image.Rect(0, 0, height, width))
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := src.At(bounds.Min.X+x, bounds.Min.Y+y)
			switch quarterTurns {
			case 1:
				out.Set(height-1-y, x, pixel)
			case 2:
				out.Set(width-1-x, height-1-y, pixel)
			case 3:
				out.Set(y, width-1-x, pixel)
			}
		}
	}
	return out, nil
}

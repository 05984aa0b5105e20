// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// PNG returns the encoding of a width x height image filled with a
// single color. Distinct sizes give distinct bytes, which tests use to
// tell fetched payloads apart.
func PNG(t testing.TB, width, height int) []byte {
	t.Helper()
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			canvas.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, canvas); err != nil {
		t.Fatalf("encoding fixture png: %v", err)
	}
	return buffer.Bytes()
}

// ImageDir creates a temporary directory containing one file per
// entry of files. A nil value writes a small valid PNG whose width is
// derived from the entry's position; a non-nil value is written
// verbatim (use it for corrupt or non-image content). Returns the
// directory path. The directory is removed when the test completes.
func ImageDir(t testing.TB, files map[string][]byte) string {
	t.Helper()
	directory := t.TempDir()
	width := 1
	for name, content := range files {
		if content == nil {
			content = PNG(t, width, 1)
			width++
		}
		path := filepath.Join(directory, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", path, err)
		}
	}
	return directory
}

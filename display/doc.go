// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package display defines the contract between the control loop and
// whatever puts images on a screen.
//
// [Display] is the collaborator interface. Two implementations ship:
//
//   - [Headless] keeps display state in memory and decodes images to
//     decide loadability. It backs the --headless run mode and doubles
//     as a test display.
//   - [Window] is a fyne window. It is compiled out by the nogui build
//     tag, in which case [NewWindow] returns [ErrUnavailable].
//
// Image probing understands PNG, JPEG and GIF from the standard
// library plus BMP, TIFF and WebP from golang.org/x/image.
//
// All Display methods are called from the control loop goroutine only.
package display

// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the viewd
// binary. Values are injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/viewd/viewd/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/viewd
package version

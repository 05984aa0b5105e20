// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for viewd packages.
//
// [RequireReceive] and [RequireClosed] bound every channel wait so a
// broken handoff fails the test instead of hanging it. They are the
// only place in the test suite where real wall-clock timeouts are used.
//
// [ImageDir] builds a directory of fixture files: small valid PNG
// images and deliberately undecodable files, for tests of the import,
// probe, and skip-and-delete paths.
//
// All helpers call t.Fatalf on failure.
package testutil

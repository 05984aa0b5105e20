// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for viewd.
//
// Configuration is loaded from a single file specified by either the
// VIEWD_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. Commands that
// are given neither start from [Default] and apply their flags on top.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Display, Client and Log sections
//   - [Default] -- returns a Config with working defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other viewd packages.
package config

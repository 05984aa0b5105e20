// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags -X at build time.
var (
	// Version is the release version.
	Version = "0.1.0-dev"

	// GitCommit is the short commit hash. When left unset it is read
	// from the module build info, if the toolchain recorded one.
	GitCommit = ""

	// GitDirty is "true" for builds from a modified tree.
	GitDirty = ""

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Info returns "version (commit[-dirty], build time)".
func Info() string {
	commit, dirty := GitCommit, GitDirty == "true"
	if commit == "" {
		commit, dirty = vcsRevision()
	}
	if dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}

// Full is Info followed by the Go toolchain and target platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Print writes the binary name and Full to stdout.
func Print(binary string) {
	fmt.Fprintf(os.Stdout, "%s %s\n", binary, Full())
}

func vcsRevision() (revision string, modified bool) {
	revision = "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return revision, false
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	return revision, modified
}

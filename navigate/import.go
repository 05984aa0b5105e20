// Copyright 2026 The Viewd Authors
// SPDX-License-Identifier: Apache-2.0

package navigate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrEmpty is wrapped by ImportError when a directory yields no
// usable entries.
var ErrEmpty = errors.New("no files found in image directory")

// ImportError reports why a directory could not seed an item set. Use
// errors.Is(err, ErrEmpty) to distinguish an empty directory from a
// listing failure.
type ImportError struct {
	Directory string
	Err       error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("importing %s: %v", e.Directory, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Import lists directory and returns an unset Cursor over its entries,
// sorted lexicographically by file name. Entries whose names cannot be
// resolved are discarded, as are subdirectories (an image viewer has
// nothing to render for them). Items are paths joined onto directory.
// Names are kept byte for byte, including ones that are not valid
// UTF-8. Whether each file is actually an image is left to the display
// probe.
func Import(directory string) (*Cursor, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, &ImportError{Directory: directory, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if name == "" || name == "." || name == ".." {
			continue
		}
		if entry.IsDir() {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, &ImportError{Directory: directory, Err: ErrEmpty}
	}

	sort.Strings(names)
	items := make([]string, len(names))
	for i, name := range names {
		items[i] = filepath.Join(directory, name)
	}
	return NewCursor(items), nil
}

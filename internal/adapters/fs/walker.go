// Package fs provides file system adapters for walking, enumerating, and fingerprinting source files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// skipDirectories are directory names never traversed or watched.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// Walker provides source tree walking.
type Walker struct {
	extensions []string
}

// NewWalker creates a walker that yields files matching the given
// extensions. An empty list yields every file.
func NewWalker(extensions []string) *Walker {
	return &Walker{extensions: extensions}
}

// SkippedDir reports whether a directory name is always excluded from
// walking and watching.
func SkippedDir(name string) bool {
	return skipDirectories[name]
}

// WalkFiles yields matching files under root. Unreadable directories are
// skipped rather than aborting the walk.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip unreadable entries, keep walking
			}
			if d.IsDir() {
				if SkippedDir(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if !w.matches(path) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// WalkDirs yields every traversable directory under root, root included.
func (w *Walker) WalkDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip unreadable entries, keep walking
			}
			if !d.IsDir() {
				return nil
			}
			if SkippedDir(d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) matches(path string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	for _, ext := range w.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

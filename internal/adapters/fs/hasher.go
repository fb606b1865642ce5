package fs

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Hasher computes content fingerprints for build batches.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the dependency graph
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}

// ComputeBatchFingerprint hashes a route batch together with the content
// of its source closure, in deterministic order. Missing files contribute
// their path only, so a deleted import still changes the fingerprint.
func (h *Hasher) ComputeBatchFingerprint(routes []string, files []string) string {
	hasher := xxhash.New()

	sortedRoutes := append([]string(nil), routes...)
	sort.Strings(sortedRoutes)
	for _, route := range sortedRoutes {
		_, _ = hasher.WriteString(route)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	sortedFiles := append([]string(nil), files...)
	sort.Strings(sortedFiles)
	for _, path := range sortedFiles {
		_, _ = hasher.WriteString(path)
		_, _ = hasher.Write([]byte{0})
		if sum, err := h.ComputeFileHash(path); err == nil {
			_, _ = fmt.Fprintf(hasher, "%016x", sum)
		}
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}

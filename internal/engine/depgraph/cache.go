package depgraph

import (
	"os"
	"sync"
)

type signature struct {
	modTime int64 // unix nanoseconds
	size    int64
}

type cacheEntry struct {
	sig  signature
	text string
}

// sourceCache holds file contents keyed by modification signature, so
// a full graph rebuild only re-reads files that actually changed.
// Stale entries for deleted files are harmless, just unused.
type sourceCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newSourceCache() *sourceCache {
	return &sourceCache{entries: make(map[string]cacheEntry)}
}

// read returns the file's text. Unreadable files read as empty.
func (c *sourceCache) read(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	sig := signature{modTime: info.ModTime().UnixNano(), size: info.Size()}

	c.mu.Lock()
	entry, ok := c.entries[path]
	c.mu.Unlock()
	if ok && entry.sig == sig {
		return entry.text
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	text := string(data)

	c.mu.Lock()
	c.entries[path] = cacheEntry{sig: sig, text: text}
	c.mu.Unlock()
	return text
}

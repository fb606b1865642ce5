package watcher

import (
	"sync"
	"time"
)

// dedupe collapses repeated events for the same path within a short
// window. Some platforms fire several native events for one logical
// write, and the poller may re-report a path the native watcher already
// delivered.
type dedupe struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
}

func newDedupe(window time.Duration) *dedupe {
	return &dedupe{
		window: window,
		last:   make(map[string]time.Time),
	}
}

// allow reports whether an event for path at the given time should pass.
func (d *dedupe) allow(path string, at time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.last[path]; ok && at.Sub(prev) < d.window {
		return false
	}
	d.last[path] = at

	// Drop stale entries opportunistically so the map stays bounded.
	if len(d.last) > 4096 {
		cutoff := at.Add(-d.window)
		for p, t := range d.last {
			if t.Before(cutoff) {
				delete(d.last, p)
			}
		}
	}
	return true
}

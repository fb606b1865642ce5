package fs

import (
	"sort"

	"go.trai.ch/regen/internal/core/domain"
)

// Enumerator lists the static route entries under the routes root.
type Enumerator struct {
	resolver *domain.RouteResolver
	walker   *Walker
}

// NewEnumerator creates an Enumerator for the resolver's routes root.
func NewEnumerator(resolver *domain.RouteResolver, walker *Walker) *Enumerator {
	return &Enumerator{resolver: resolver, walker: walker}
}

// Entries walks the routes root and returns one entry per canonical
// route, sorted by route. When several files map to the same route the
// directory index file wins and the other candidates are discarded.
func (e *Enumerator) Entries() []domain.RouteEntry {
	byRoute := make(map[string]string)

	for path := range e.walker.WalkFiles(e.resolver.RoutesRoot()) {
		route, ok := e.resolver.Resolve(path)
		if !ok {
			continue
		}
		existing, seen := byRoute[route]
		if !seen {
			byRoute[route] = path
			continue
		}
		if e.resolver.IsIndexEntry(path) && !e.resolver.IsIndexEntry(existing) {
			byRoute[route] = path
		}
	}

	entries := make([]domain.RouteEntry, 0, len(byRoute))
	for route, file := range byRoute {
		entries = append(entries, domain.RouteEntry{Route: route, File: file})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Route < entries[j].Route })
	return entries
}

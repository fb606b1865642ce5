package domain

import (
	"iter"
	"sort"
)

// DependencyGraph maps each route to the set of project-local files
// transitively reachable from its entry file's imports.
//
// A graph is built wholesale by the depgraph builder and treated as
// immutable afterwards; consumers swap whole snapshots rather than
// patching edges.
type DependencyGraph struct {
	entries map[string]string              // route -> entry file
	files   map[string]map[string]struct{} // route -> file set
}

// NewDependencyGraph creates an empty DependencyGraph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		entries: make(map[string]string),
		files:   make(map[string]map[string]struct{}),
	}
}

// AddRoute registers a route with its entry file.
// Re-adding an existing route resets its file set.
func (g *DependencyGraph) AddRoute(route, entryFile string) {
	g.entries[route] = entryFile
	g.files[route] = make(map[string]struct{})
}

// AddFile records that the route's traversal reached the given file.
func (g *DependencyGraph) AddFile(route, path string) {
	set, ok := g.files[route]
	if !ok {
		set = make(map[string]struct{})
		g.files[route] = set
	}
	set[path] = struct{}{}
}

// EntryFile returns the entry file registered for a route.
func (g *DependencyGraph) EntryFile(route string) (string, bool) {
	f, ok := g.entries[route]
	return f, ok
}

// Contains reports whether the route's file set includes the path.
func (g *DependencyGraph) Contains(route, path string) bool {
	_, ok := g.files[route][path]
	return ok
}

// Routes returns all routes in sorted order.
func (g *DependencyGraph) Routes() []string {
	routes := make([]string, 0, len(g.entries))
	for route := range g.entries {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// RoutesDependingOn reverse-scans the graph for every route whose file
// set contains the given path, in sorted order.
func (g *DependencyGraph) RoutesDependingOn(path string) []string {
	var routes []string
	for route, set := range g.files {
		if _, ok := set[path]; ok {
			routes = append(routes, route)
		}
	}
	sort.Strings(routes)
	return routes
}

// Files returns an iterator over the file set of a route.
func (g *DependencyGraph) Files(route string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range g.files[route] {
			if !yield(path) {
				return
			}
		}
	}
}

// RouteCount returns the number of routes in the graph.
func (g *DependencyGraph) RouteCount() int {
	return len(g.entries)
}

// FileCount returns the number of files tracked for a route.
func (g *DependencyGraph) FileCount(route string) int {
	return len(g.files[route])
}

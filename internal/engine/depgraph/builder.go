// Package depgraph builds the route dependency graph from import scans.
package depgraph

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
)

// Builder recomputes the dependency graph wholesale. One file read and
// one regex scan per node keeps a full rebuild cheap enough that
// incremental patching is not worth its complexity.
type Builder struct {
	enumerator ports.RouteEnumerator
	sourceRoot string
	aliases    []string
	extensions []string
	maxDepth   int
	cache      *sourceCache
}

func NewBuilder(enumerator ports.RouteEnumerator, sourceRoot string, aliases, extensions []string, maxDepth int) *Builder {
	return &Builder{
		enumerator: enumerator,
		sourceRoot: sourceRoot,
		aliases:    aliases,
		extensions: extensions,
		maxDepth:   maxDepth,
		cache:      newSourceCache(),
	}
}

// Build traverses every route entry depth-first and returns the fresh
// graph. Traversal is depth-bounded and keeps a per-route visited set,
// so import cycles terminate.
func (b *Builder) Build(ctx context.Context) *domain.DependencyGraph {
	graph := domain.NewDependencyGraph()
	for _, entry := range b.enumerator.Entries() {
		if ctx.Err() != nil {
			return graph
		}
		graph.AddRoute(entry.Route, entry.File)
		visited := make(map[string]struct{})
		b.walk(graph, entry.Route, entry.File, 0, visited)
	}
	return graph
}

func (b *Builder) walk(graph *domain.DependencyGraph, route, path string, depth int, visited map[string]struct{}) {
	if depth >= b.maxDepth {
		return
	}
	if _, seen := visited[path]; seen {
		return
	}
	visited[path] = struct{}{}
	graph.AddFile(route, path)

	for _, specifier := range extractSpecifiers(b.cache.read(path)) {
		resolved, ok := b.resolve(path, specifier)
		if !ok {
			continue
		}
		if !b.underSourceRoot(resolved) {
			continue
		}
		b.walk(graph, route, resolved, depth+1, visited)
	}
}

// resolve maps an import specifier to an absolute file path. Bare
// package specifiers are opaque leaves and are not resolved.
func (b *Builder) resolve(importer, specifier string) (string, bool) {
	var base string
	switch {
	case b.aliasRest(specifier) != "":
		base = filepath.Join(b.sourceRoot, b.aliasRest(specifier))
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"),
		specifier == ".", specifier == "..":
		base = filepath.Join(filepath.Dir(importer), specifier)
	default:
		return "", false
	}
	return b.probe(base)
}

// aliasRest strips a configured alias prefix, or returns empty.
func (b *Builder) aliasRest(specifier string) string {
	for _, alias := range b.aliases {
		if rest, ok := strings.CutPrefix(specifier, alias); ok {
			return rest
		}
	}
	return ""
}

// probe tries the literal path, the literal path with each recognized
// extension appended, then an index file inside a directory.
func (b *Builder) probe(base string) (string, bool) {
	if info, err := os.Stat(base); err == nil && !info.IsDir() {
		return base, true
	}
	for _, ext := range b.extensions {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	if info, err := os.Stat(base); err == nil && info.IsDir() {
		for _, ext := range b.extensions {
			candidate := filepath.Join(base, "index"+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}

func (b *Builder) underSourceRoot(path string) bool {
	root := strings.TrimSuffix(b.sourceRoot, string(filepath.Separator))
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

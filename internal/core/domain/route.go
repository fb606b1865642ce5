// Package domain contains the core domain models and business logic for the rebuild orchestrator.
package domain

import (
	"path/filepath"
	"strings"
)

// DefaultRouteExtensions are the file extensions recognized as route sources.
var DefaultRouteExtensions = []string{".tsx", ".ts", ".jsx", ".js"}

// indexBase is the basename (without extension) that collapses a folder to its own route.
const indexBase = "index"

// RouteEntry pairs a canonical route with the source file chosen as its entry point.
type RouteEntry struct {
	Route string
	File  string
}

// RouteResolver maps source file paths to canonical route strings.
// It is a pure value; all methods are side-effect free.
type RouteResolver struct {
	routesRoot string
	extensions []string
}

// NewRouteResolver creates a resolver rooted at the given routes directory.
// An empty extension list falls back to DefaultRouteExtensions.
func NewRouteResolver(routesRoot string, extensions []string) *RouteResolver {
	if len(extensions) == 0 {
		extensions = DefaultRouteExtensions
	}
	return &RouteResolver{
		routesRoot: filepath.Clean(routesRoot),
		extensions: extensions,
	}
}

// RoutesRoot returns the directory the resolver is rooted at.
func (r *RouteResolver) RoutesRoot() string {
	return r.routesRoot
}

// Extensions returns the recognized route-source extensions.
func (r *RouteResolver) Extensions() []string {
	return r.extensions
}

// Resolve maps an absolute file path to its canonical route.
// It returns false when the path is not a static route entry: outside the
// routes root, unrecognized extension, or a dynamic segment in the path.
func (r *RouteResolver) Resolve(path string) (string, bool) {
	rel, err := filepath.Rel(r.routesRoot, filepath.Clean(path))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}

	// Dynamic segments use bracket syntax and are not enumerable as static routes.
	if strings.ContainsAny(rel, "[]") {
		return "", false
	}

	ext := r.matchExtension(rel)
	if ext == "" {
		return "", false
	}
	rel = strings.TrimSuffix(rel, ext)

	// A folder's index file collapses to the folder's own path.
	if rel == indexBase {
		return "/", true
	}
	rel = strings.TrimSuffix(rel, "/"+indexBase)

	return "/" + rel, true
}

// IsIndexEntry reports whether the path is an index file, which wins route
// conflicts against leaf files mapping to the same route.
func (r *RouteResolver) IsIndexEntry(path string) bool {
	base := filepath.Base(path)
	ext := r.matchExtension(base)
	if ext == "" {
		return false
	}
	return strings.TrimSuffix(base, ext) == indexBase
}

func (r *RouteResolver) matchExtension(path string) string {
	for _, ext := range r.extensions {
		if strings.HasSuffix(path, ext) {
			return ext
		}
	}
	return ""
}

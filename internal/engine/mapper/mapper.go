// Package mapper turns changed file paths into impacted route sets.
package mapper

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/engine/depgraph"
)

// Mapper resolves a changed path to the routes whose output it affects.
// A route entry maps to exactly its own route; any other project file
// maps to every route whose dependency closure contains it.
type Mapper struct {
	resolver   *domain.RouteResolver
	refresher  *depgraph.Refresher
	sourceRoot string
}

func NewMapper(resolver *domain.RouteResolver, refresher *depgraph.Refresher, sourceRoot string) *Mapper {
	return &Mapper{
		resolver:   resolver,
		refresher:  refresher,
		sourceRoot: sourceRoot,
	}
}

// Map returns the impacted routes for a changed file. Any project file
// change also schedules a debounced graph refresh, since an edit can
// add or remove import edges that future mappings depend on.
func (m *Mapper) Map(ctx context.Context, path string) []string {
	if !m.underSourceRoot(path) {
		return nil
	}
	m.refresher.Schedule(ctx)

	if route, ok := m.resolver.Resolve(path); ok {
		return []string{route}
	}
	return m.refresher.Graph().RoutesDependingOn(path)
}

func (m *Mapper) underSourceRoot(path string) bool {
	root := strings.TrimSuffix(m.sourceRoot, string(filepath.Separator))
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

package domain_test

import (
	"slices"
	"testing"

	"go.trai.ch/regen/internal/core/domain"
)

func TestDependencyGraph_ReverseLookup(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddRoute("/", "/src/routes/index.tsx")
	g.AddRoute("/about", "/src/routes/about.tsx")

	g.AddFile("/", "/src/routes/index.tsx")
	g.AddFile("/", "/src/components/Header.tsx")
	g.AddFile("/about", "/src/routes/about.tsx")
	g.AddFile("/about", "/src/components/Header.tsx")

	routes := g.RoutesDependingOn("/src/components/Header.tsx")
	want := []string{"/", "/about"}
	if !slices.Equal(routes, want) {
		t.Errorf("RoutesDependingOn = %v, want %v", routes, want)
	}

	if got := g.RoutesDependingOn("/src/components/Footer.tsx"); len(got) != 0 {
		t.Errorf("expected empty result for untracked file, got %v", got)
	}
}

func TestDependencyGraph_AddRouteResetsFiles(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddRoute("/about", "/src/routes/about.tsx")
	g.AddFile("/about", "/src/lib/a.ts")

	g.AddRoute("/about", "/src/routes/about.tsx")
	if g.FileCount("/about") != 0 {
		t.Errorf("expected file set reset on re-add, got %d files", g.FileCount("/about"))
	}
}

func TestDependencyGraph_Routes(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddRoute("/b", "/src/routes/b.tsx")
	g.AddRoute("/a", "/src/routes/a.tsx")

	if got := g.Routes(); !slices.Equal(got, []string{"/a", "/b"}) {
		t.Errorf("Routes = %v, want sorted [/a /b]", got)
	}
	if g.RouteCount() != 2 {
		t.Errorf("RouteCount = %d, want 2", g.RouteCount())
	}
}

func TestDependencyGraph_Contains(t *testing.T) {
	g := domain.NewDependencyGraph()
	g.AddRoute("/a", "/src/routes/a.tsx")
	g.AddFile("/a", "/src/lib/util.ts")

	if !g.Contains("/a", "/src/lib/util.ts") {
		t.Error("expected Contains to report tracked file")
	}
	if g.Contains("/a", "/src/lib/other.ts") {
		t.Error("expected Contains to be false for untracked file")
	}
}

package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	regenfs "go.trai.ch/regen/internal/adapters/fs"
	"go.trai.ch/regen/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.tsx"), "")
	writeFile(t, filepath.Join(root, "styles.css"), "")
	writeFile(t, filepath.Join(root, "sub", "page.ts"), "")
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "x.ts"), "")
	writeFile(t, filepath.Join(root, ".git", "objects", "y.ts"), "")

	w := regenfs.NewWalker(domain.DefaultRouteExtensions)
	var got []string
	for path := range w.WalkFiles(root) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	slices.Sort(got)

	assert.Equal(t, []string{"index.tsx", "sub/page.ts"}, got)
}

func TestWalker_WalkDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "x.ts"), "")
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "x.ts"), "")

	w := regenfs.NewWalker(nil)
	var dirs []string
	for dir := range w.WalkDirs(root) {
		rel, _ := filepath.Rel(root, dir)
		dirs = append(dirs, filepath.ToSlash(rel))
	}
	slices.Sort(dirs)

	assert.Equal(t, []string{".", "a"}, dirs)
}

func TestEnumerator_IndexWins(t *testing.T) {
	root := t.TempDir()
	routes := filepath.Join(root, "routes")
	writeFile(t, filepath.Join(routes, "index.tsx"), "")
	writeFile(t, filepath.Join(routes, "about.tsx"), "")
	writeFile(t, filepath.Join(routes, "about", "index.tsx"), "")
	writeFile(t, filepath.Join(routes, "posts", "[slug].tsx"), "")

	resolver := domain.NewRouteResolver(routes, nil)
	e := regenfs.NewEnumerator(resolver, regenfs.NewWalker(domain.DefaultRouteExtensions))

	entries := e.Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, "/", entries[0].Route)
	assert.Equal(t, "/about", entries[1].Route)
	// Index file beats the leaf candidate for the same route.
	assert.Equal(t, filepath.Join(routes, "about", "index.tsx"), entries[1].File)
}

func TestHasher_BatchFingerprint(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.ts")
	b := filepath.Join(root, "b.ts")
	writeFile(t, a, "export const a = 1\n")
	writeFile(t, b, "export const b = 2\n")

	h := regenfs.NewHasher()

	fp1 := h.ComputeBatchFingerprint([]string{"/x"}, []string{a, b})
	// Order of inputs must not matter.
	fp2 := h.ComputeBatchFingerprint([]string{"/x"}, []string{b, a})
	assert.Equal(t, fp1, fp2)

	// Content change must change the fingerprint.
	writeFile(t, a, "export const a = 99\n")
	fp3 := h.ComputeBatchFingerprint([]string{"/x"}, []string{a, b})
	assert.NotEqual(t, fp1, fp3)

	// A different batch must fingerprint differently.
	fp4 := h.ComputeBatchFingerprint([]string{"/y"}, []string{a, b})
	assert.NotEqual(t, fp3, fp4)
}

func TestHasher_MissingFile(t *testing.T) {
	h := regenfs.NewHasher()
	_, err := h.ComputeFileHash(filepath.Join(t.TempDir(), "absent.ts"))
	require.Error(t, err)
}

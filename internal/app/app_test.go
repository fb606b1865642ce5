package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/adapters/fs"
	"go.trai.ch/regen/internal/adapters/logger"
	"go.trai.ch/regen/internal/adapters/metrics"
	"go.trai.ch/regen/internal/adapters/telemetry"
	"go.trai.ch/regen/internal/adapters/watcher"
	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports/mocks"
	"go.trai.ch/regen/internal/engine/depgraph"
	"go.trai.ch/regen/internal/engine/mapper"
	"go.trai.ch/regen/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newTestApp wires a poll-only app over a temp project with a mocked
// build runner:
//
//	src/routes/index.tsx -> imports src/lib/shared.ts
func newTestApp(t *testing.T) (*App, *mocks.MockBuildRunner, string) {
	t.Helper()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "routes", "index.tsx"), `import "../lib/shared";`)
	writeFile(t, filepath.Join(root, "src", "lib", "shared.ts"), `export const shared = 1;`)
	writeFile(t, filepath.Join(root, "dist", "manifest.json"), `{}`)

	cfg, err := config.Load(filepath.Join(root, "regen.yaml"))
	require.NoError(t, err)
	cfg.Root = root
	cfg.Watch.PollInterval = 20 * time.Millisecond
	cfg.Watch.DedupeWindow = 10 * time.Millisecond
	cfg.Build.Debounce = 30 * time.Millisecond
	cfg.Graph.RefreshDebounce = 50 * time.Millisecond

	quiet := logger.NewWithHandler(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.Noop{}

	resolver := domain.NewRouteResolver(cfg.RoutesRoot(), cfg.Extensions)
	enumerator := fs.NewEnumerator(resolver, fs.NewWalker(cfg.Extensions))
	builder := depgraph.NewBuilder(enumerator, cfg.SourceRoot(), cfg.Aliases, cfg.Extensions, cfg.Graph.MaxDepth)
	refresher := depgraph.NewRefresher(builder, cfg.Graph.RefreshDebounce, quiet, recorder)
	routeMapper := mapper.NewMapper(resolver, refresher, cfg.SourceRoot())

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockBuildRunner(ctrl)

	sched := scheduler.New(runner, nil, refresher, scheduler.Options{
		Debounce:     cfg.Build.Debounce,
		ManifestPath: cfg.ManifestPath(),
	}, quiet, recorder)

	poller := watcher.NewPoller(cfg.Extensions, cfg.Watch.PollInterval, quiet)
	detector := watcher.NewDetector(nil, poller, cfg.Watch.DedupeWindow, quiet, recorder)

	a := New(cfg, quiet, detector, enumerator, resolver, refresher, routeMapper, sched, runner, telemetry.Noop{}, metrics.NewServer("", nil, quiet))
	return a, runner, root
}

func TestAppWatch(t *testing.T) {
	a, runner, root := newTestApp(t)

	built := make(chan []string, 4)
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, routes []string) error {
			built <- routes
			return nil
		}).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	// give the poller time to seed and start
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(root, "src", "lib", "shared.ts"), `export const shared = 2; // edited`)

	select {
	case routes := <-built:
		assert.Equal(t, []string{"/"}, routes)
	case <-time.After(10 * time.Second):
		t.Fatal("no build triggered by the change")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not shut down")
	}
}

func TestAppBuild(t *testing.T) {
	t.Run("empty argument builds every static route", func(t *testing.T) {
		a, runner, _ := newTestApp(t)
		runner.EXPECT().Run(gomock.Any(), []string{"/"}).Return(nil).Times(1)

		require.NoError(t, a.Build(context.Background(), nil))
	})

	t.Run("explicit routes pass through", func(t *testing.T) {
		a, runner, _ := newTestApp(t)
		runner.EXPECT().Run(gomock.Any(), []string{"/about"}).Return(nil).Times(1)

		require.NoError(t, a.Build(context.Background(), []string{"/about"}))
	})

	t.Run("no enumerable routes is an error", func(t *testing.T) {
		a, _, root := newTestApp(t)
		require.NoError(t, os.RemoveAll(filepath.Join(root, "src", "routes")))

		assert.ErrorIs(t, a.Build(context.Background(), nil), domain.ErrNoRoutes)
	})
}

func TestAppResolve(t *testing.T) {
	a, _, root := newTestApp(t)

	route, ok := a.Resolve(filepath.Join(root, "src", "routes", "index.tsx"))
	require.True(t, ok)
	assert.Equal(t, "/", route)

	_, ok = a.Resolve(filepath.Join(root, "src", "lib", "shared.ts"))
	assert.False(t, ok)

	entries := a.Routes()
	require.Len(t, entries, 1)
	assert.Equal(t, "/", entries[0].Route)
}

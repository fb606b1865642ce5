// Package app implements the application layer for regen.
package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/adapters/metrics"
	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/regen/internal/engine/depgraph"
	"go.trai.ch/regen/internal/engine/mapper"
	"go.trai.ch/regen/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App wires the change detector, mapper and scheduler into the rebuild
// loop and exposes the one-shot operations the CLI needs.
type App struct {
	cfg        *config.Settings
	logger     ports.Logger
	detector   ports.Watcher
	enumerator ports.RouteEnumerator
	resolver   *domain.RouteResolver
	refresher  *depgraph.Refresher
	mapper     *mapper.Mapper
	scheduler  *scheduler.Scheduler
	runner     ports.BuildRunner
	telemetry  ports.Telemetry
	metricsSrv *metrics.Server
}

// New creates a new App instance.
func New(
	cfg *config.Settings,
	logger ports.Logger,
	detector ports.Watcher,
	enumerator ports.RouteEnumerator,
	resolver *domain.RouteResolver,
	refresher *depgraph.Refresher,
	routeMapper *mapper.Mapper,
	sched *scheduler.Scheduler,
	runner ports.BuildRunner,
	telemetry ports.Telemetry,
	metricsSrv *metrics.Server,
) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		detector:   detector,
		enumerator: enumerator,
		resolver:   resolver,
		refresher:  refresher,
		mapper:     routeMapper,
		scheduler:  sched,
		runner:     runner,
		telemetry:  telemetry,
		metricsSrv: metricsSrv,
	}
}

// Watch runs the rebuild loop until ctx is cancelled. Shutdown flushes
// the pending debounce windows and waits for an in-flight build to
// finish or hit its timeout; there is no mid-build cancellation.
func (a *App) Watch(ctx context.Context) error {
	a.refresher.Rebuild(ctx)

	if err := a.detector.Start(ctx, a.cfg.SourceRoot()); err != nil {
		return zerr.Wrap(err, "failed to start change detection")
	}
	a.logger.Info("watching " + a.cfg.SourceRoot())

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		for event := range a.detector.Events() {
			routes := a.mapper.Map(ctx, event.Path)
			a.scheduler.Enqueue(ctx, routes)
		}
		return nil
	})

	group.Go(func() error {
		return a.metricsSrv.Serve(ctx)
	})

	group.Go(func() error {
		<-ctx.Done()
		if err := a.detector.Stop(); err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to stop change detection"))
		}
		a.refresher.Stop()
		// Routes queued before the signal still build; the flush context
		// must outlive the cancelled watch context.
		a.scheduler.Flush(context.WithoutCancel(ctx))
		return nil
	})

	err := group.Wait()
	if cerr := a.telemetry.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Build runs a one-shot build. An empty route list means every
// enumerable static route.
func (a *App) Build(ctx context.Context, routes []string) error {
	if len(routes) == 0 {
		for _, entry := range a.enumerator.Entries() {
			routes = append(routes, entry.Route)
		}
	}
	if len(routes) == 0 {
		return domain.ErrNoRoutes
	}

	err := a.runner.Run(ctx, routes)
	if cerr := a.telemetry.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Resolve classifies a path as a static route.
func (a *App) Resolve(path string) (string, bool) {
	return a.resolver.Resolve(path)
}

// Routes enumerates the current static routes.
func (a *App) Routes() []domain.RouteEntry {
	return a.enumerator.Entries()
}

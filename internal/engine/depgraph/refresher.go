package depgraph

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
)

// Refresher owns the current graph snapshot and schedules debounced
// rebuilds. Every Schedule call resets the clock, so a burst of edits
// produces a single rebuild after the window of quiet.
type Refresher struct {
	builder *Builder
	window  time.Duration
	logger  ports.Logger
	metrics ports.Recorder

	graph atomic.Pointer[domain.DependencyGraph]

	mu    sync.Mutex
	timer *time.Timer
}

func NewRefresher(builder *Builder, window time.Duration, logger ports.Logger, metrics ports.Recorder) *Refresher {
	r := &Refresher{
		builder: builder,
		window:  window,
		logger:  logger,
		metrics: metrics,
	}
	r.graph.Store(domain.NewDependencyGraph())
	return r
}

// Graph returns the current snapshot. Never nil.
func (r *Refresher) Graph() *domain.DependencyGraph {
	return r.graph.Load()
}

// Rebuild recomputes the graph immediately and swaps the snapshot.
func (r *Refresher) Rebuild(ctx context.Context) *domain.DependencyGraph {
	graph := r.builder.Build(ctx)
	r.graph.Store(graph)
	r.metrics.GraphRefreshed()
	r.logger.Info("dependency graph rebuilt for " + strconv.Itoa(graph.RouteCount()) + " routes")
	return graph
}

// Schedule arms (or re-arms) the debounced rebuild.
func (r *Refresher) Schedule(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.window, func() {
		if ctx.Err() != nil {
			return
		}
		r.Rebuild(ctx)
	})
}

// Flush runs a pending rebuild now instead of waiting out the window.
func (r *Refresher) Flush(ctx context.Context) {
	r.mu.Lock()
	timer := r.timer
	r.timer = nil
	r.mu.Unlock()

	if timer != nil && timer.Stop() {
		r.Rebuild(ctx)
	}
}

// Stop cancels any pending rebuild.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

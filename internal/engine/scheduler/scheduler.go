// Package scheduler debounces impacted-route sets and serializes builds.
package scheduler

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/zerr"
)

// State identifies where the scheduler is in its build cycle.
type State int

const (
	// StateIdle means no routes are pending and no build is running.
	StateIdle State = iota
	// StateDebouncing means routes are pending and the debounce timer is armed.
	StateDebouncing
	// StateBuilding means a build is in flight; new routes only queue.
	StateBuilding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// BatchFingerprinter condenses a batch's source closure into a
// comparable fingerprint.
type BatchFingerprinter interface {
	ComputeBatchFingerprint(routes, files []string) string
}

// GraphSource exposes the current dependency graph snapshot.
type GraphSource interface {
	Graph() *domain.DependencyGraph
}

// Options configures a Scheduler.
type Options struct {
	// Debounce is the quiet window before a pending batch builds.
	Debounce time.Duration
	// ManifestPath, when set, names the upstream artifact that must
	// exist before a route-scoped build; a missing manifest triggers a
	// one-off full build first.
	ManifestPath string
	// SkipUnchanged skips spawning a build when the batch's source
	// closure matches the last successful build of the same batch.
	SkipUnchanged bool
}

// Scheduler owns the pending route queue. All mutation happens behind
// one mutex; builds themselves run on a single drain goroutine, so at
// most one build process is ever in flight.
type Scheduler struct {
	runner      ports.BuildRunner
	logger      ports.Logger
	metrics     ports.Recorder
	fingerprint BatchFingerprinter
	graphs      GraphSource
	opts        Options

	mu      sync.Mutex
	state   State
	pending map[string]struct{}
	timer   *time.Timer

	// timerGen invalidates AfterFunc callbacks that fired concurrently
	// with a Stop; only the latest armed window may start a build.
	timerGen uint64

	// fingerprints of the last successful build per batch key
	built map[string]string

	wg sync.WaitGroup
}

func New(runner ports.BuildRunner, fingerprint BatchFingerprinter, graphs GraphSource, opts Options, logger ports.Logger, metrics ports.Recorder) *Scheduler {
	return &Scheduler{
		runner:      runner,
		logger:      logger,
		metrics:     metrics,
		fingerprint: fingerprint,
		graphs:      graphs,
		opts:        opts,
		state:       StateIdle,
		pending:     make(map[string]struct{}),
		built:       make(map[string]string),
	}
}

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Enqueue merges an impacted-route set into the pending queue.
// Insertion is idempotent. While idle or debouncing every call re-arms
// the debounce timer; during a build the routes only accumulate and the
// drain loop picks them up when the process exits.
func (s *Scheduler) Enqueue(ctx context.Context, routes []string) {
	if len(routes) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, route := range routes {
		s.pending[route] = struct{}{}
	}
	s.metrics.SetPendingRoutes(len(s.pending))

	switch s.state {
	case StateIdle:
		s.state = StateDebouncing
		s.armTimer(ctx)
	case StateDebouncing:
		s.armTimer(ctx)
	case StateBuilding:
		// drained on build exit
	}
}

// armTimer (re)arms the debounce timer. Callers hold s.mu.
func (s *Scheduler) armTimer(ctx context.Context) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerGen++
	gen := s.timerGen
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		s.fire(ctx, gen)
	})
}

// fire moves from debouncing to building and starts the drain loop.
// A timer that had already fired when Stop was called still runs this
// callback; the generation check keeps such a stale window from
// starting a build early.
func (s *Scheduler) fire(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	if s.state != StateDebouncing || len(s.pending) == 0 {
		if s.state == StateDebouncing {
			s.state = StateIdle
		}
		s.mu.Unlock()
		return
	}
	s.state = StateBuilding
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.drain(ctx)
	}()
}

// Flush skips the rest of a pending debounce window and builds now.
// It blocks until the queue is drained and any in-flight build has
// finished. Queued routes build even after the watch context ends, so
// shutdown callers pass a non-cancelled context.
func (s *Scheduler) Flush(ctx context.Context) {
	for {
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
			s.timerGen++
		}
		if s.state == StateBuilding {
			s.mu.Unlock()
			s.Wait()
			continue
		}
		if len(s.pending) == 0 || ctx.Err() != nil {
			s.mu.Unlock()
			s.Wait()
			return
		}
		s.state = StateBuilding
		s.mu.Unlock()

		s.drain(ctx)
	}
}

// Wait blocks until any in-flight build finishes.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// drain builds snapshot after snapshot until the queue is empty, then
// returns to idle. Builds are strictly serialized; a snapshot always
// runs to completion before the next one starts.
func (s *Scheduler) drain(ctx context.Context) {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 || ctx.Err() != nil {
			s.state = StateIdle
			s.mu.Unlock()
			return
		}
		batch := make([]string, 0, len(s.pending))
		for route := range s.pending {
			batch = append(batch, route)
		}
		sort.Strings(batch)
		clear(s.pending)
		s.metrics.SetPendingRoutes(0)
		s.mu.Unlock()

		s.build(ctx, batch)
	}
}

// build runs one batch and records its outcome.
func (s *Scheduler) build(ctx context.Context, batch []string) {
	if err := s.ensureManifest(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error(zerr.Wrap(err, "precondition build failed, dropping batch"))
		s.metrics.BuildFinished(ports.OutcomeFailure, 0)
		return
	}

	key := strings.Join(batch, ",")
	fingerprint := s.batchFingerprint(batch)
	if s.opts.SkipUnchanged && fingerprint != "" && fingerprint == s.built[key] {
		s.logger.Info("sources unchanged, skipping build for " + key)
		s.metrics.BuildFinished(ports.OutcomeSkipped, 0)
		return
	}

	// A build always runs to completion or its timeout; cancellation
	// only stops further batches from starting.
	started := time.Now()
	err := s.runner.Run(context.WithoutCancel(ctx), batch)
	elapsed := time.Since(started)

	switch {
	case err == nil:
		if fingerprint != "" {
			s.built[key] = fingerprint
		}
		s.metrics.BuildFinished(ports.OutcomeSuccess, elapsed)
	case errors.Is(err, domain.ErrBuildTimeout):
		s.logger.Error(err)
		s.metrics.BuildFinished(ports.OutcomeTimeout, elapsed)
	default:
		s.logger.Error(err)
		s.metrics.BuildFinished(ports.OutcomeFailure, elapsed)
	}
}

// ensureManifest runs the one-off full build when the upstream client
// artifact is missing.
func (s *Scheduler) ensureManifest(ctx context.Context) error {
	if s.opts.ManifestPath == "" {
		return nil
	}
	if _, err := os.Stat(s.opts.ManifestPath); err == nil {
		return nil
	}
	s.logger.Warn("client manifest missing, running full build first")
	return s.runner.RunFull(ctx)
}

// batchFingerprint hashes the batch's source closure. Empty when the
// optimization is disabled or no collaborators are wired.
func (s *Scheduler) batchFingerprint(batch []string) string {
	if !s.opts.SkipUnchanged || s.fingerprint == nil || s.graphs == nil {
		return ""
	}
	graph := s.graphs.Graph()
	fileSet := make(map[string]struct{})
	for _, route := range batch {
		if entry, ok := graph.EntryFile(route); ok {
			fileSet[entry] = struct{}{}
		}
		for file := range graph.Files(route) {
			fileSet[file] = struct{}{}
		}
	}
	files := make([]string, 0, len(fileSet))
	for file := range fileSet {
		files = append(files, file)
	}
	return s.fingerprint.ComputeBatchFingerprint(batch, files)
}

package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	regenfs "go.trai.ch/regen/internal/adapters/fs"
	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/zerr"
)

// signature is the change detection key for one file.
type signature struct {
	modTime int64 // unix nanoseconds
	size    int64
}

// Poller is the polling fallback for filesystems that drop native
// events. It scans the source tree on a fixed interval and emits a
// synthetic change event whenever a file's mtime or size differs from
// the last snapshot.
type Poller struct {
	root       string
	extensions []string
	interval   time.Duration
	logger     ports.Logger

	scheduler gocron.Scheduler

	mu       sync.Mutex
	snapshot map[string]signature

	stopOnce sync.Once
	events   chan domain.ChangeEvent
}

// NewPoller creates a poller matching files with the given extensions.
func NewPoller(extensions []string, interval time.Duration, logger ports.Logger) *Poller {
	return &Poller{
		extensions: extensions,
		interval:   interval,
		logger:     logger,
		snapshot:   make(map[string]signature),
		events:     make(chan domain.ChangeEvent, eventChannelBuffer),
	}
}

// Start seeds the baseline snapshot and schedules the periodic scan.
// Seeding first keeps the initial pass from flagging every file as changed.
func (p *Poller) Start(ctx context.Context, root string) error {
	p.root = root
	p.scan(ctx, false)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return zerr.Wrap(err, "failed to create poll scheduler")
	}
	p.scheduler = scheduler

	_, err = scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() { p.scan(ctx, true) }),
		gocron.WithName("poll-scan"),
	)
	if err != nil {
		return zerr.Wrap(err, "failed to schedule poll scan")
	}

	scheduler.Start()
	return nil
}

// Stop shuts down the poll scheduler and closes the event stream.
// Shutdown waits for a running scan, so closing afterwards is safe.
func (p *Poller) Stop() error {
	var err error
	p.stopOnce.Do(func() {
		if p.scheduler != nil {
			err = p.scheduler.Shutdown()
		}
		close(p.events)
	})
	return err
}

// Events returns an iterator of synthetic change events.
func (p *Poller) Events() iter.Seq[domain.ChangeEvent] {
	return func(yield func(domain.ChangeEvent) bool) {
		for event := range p.events {
			if !yield(event) {
				return
			}
		}
	}
}

// scan walks the tree once, updating the snapshot. When emit is set,
// every signature difference produces a change event.
func (p *Poller) scan(ctx context.Context, emit bool) {
	seen := make(map[string]struct{})

	_ = filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			if regenfs.SkippedDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !p.matches(path) {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil //nolint:nilerr // file vanished between walk and stat
		}
		seen[path] = struct{}{}

		sig := signature{modTime: info.ModTime().UnixNano(), size: info.Size()}
		p.mu.Lock()
		prev, known := p.snapshot[path]
		changed := !known || prev != sig
		if changed {
			p.snapshot[path] = sig
		}
		p.mu.Unlock()

		if emit && changed {
			p.send(ctx, path)
		}
		return nil
	})

	// Files present in the snapshot but gone from disk changed too.
	p.mu.Lock()
	var removed []string
	for path := range p.snapshot {
		if _, ok := seen[path]; !ok {
			removed = append(removed, path)
			delete(p.snapshot, path)
		}
	}
	p.mu.Unlock()

	if emit {
		for _, path := range removed {
			p.send(ctx, path)
		}
	}
}

func (p *Poller) send(ctx context.Context, path string) {
	select {
	case p.events <- domain.ChangeEvent{Path: path, At: time.Now(), Source: domain.SourcePoll}:
	case <-ctx.Done():
	}
}

func (p *Poller) matches(path string) bool {
	if len(p.extensions) == 0 {
		return true
	}
	for _, ext := range p.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

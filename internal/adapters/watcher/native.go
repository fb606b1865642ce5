// Package watcher implements change detection for the source tree: a
// native filesystem event watcher and a polling fallback, merged into a
// single de-duplicated event stream.
package watcher

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	regenfs "go.trai.ch/regen/internal/adapters/fs"
	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/zerr"
)

const eventChannelBuffer = 100

// Native watches the source tree using fsnotify. It registers every
// directory under the root at startup and self-extends when new
// directories appear.
type Native struct {
	fsWatcher *fsnotify.Watcher
	walker    *regenfs.Walker
	logger    ports.Logger
	events    chan domain.ChangeEvent
}

// NewNative creates a native filesystem watcher.
func NewNative(logger ports.Logger) (*Native, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create fsnotify watcher")
	}
	return &Native{
		fsWatcher: fsw,
		walker:    regenfs.NewWalker(nil),
		logger:    logger,
		events:    make(chan domain.ChangeEvent, eventChannelBuffer),
	}, nil
}

// Start registers the directory tree and begins processing events.
// A directory that cannot be watched is logged and skipped; the polling
// fallback covers it.
func (n *Native) Start(ctx context.Context, root string) error {
	for dir := range n.walker.WalkDirs(root) {
		if err := n.fsWatcher.Add(dir); err != nil {
			n.logger.Warn("cannot watch directory " + dir + ": " + err.Error())
		}
	}

	go n.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases its resources.
func (n *Native) Stop() error {
	return n.fsWatcher.Close()
}

// Events returns an iterator of change events.
func (n *Native) Events() iter.Seq[domain.ChangeEvent] {
	return func(yield func(domain.ChangeEvent) bool) {
		for event := range n.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (n *Native) processEvents(ctx context.Context) {
	defer close(n.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-n.fsWatcher.Events:
			if !ok {
				return
			}
			n.handleEvent(ctx, event)
		case err, ok := <-n.fsWatcher.Errors:
			if !ok {
				return
			}
			n.logger.Error(zerr.Wrap(err, "filesystem watch error"))
		}
	}
}

func (n *Native) handleEvent(ctx context.Context, event fsnotify.Event) {
	// A freshly created directory extends the watch tree; directories
	// themselves are not change events.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !regenfs.SkippedDir(filepath.Base(event.Name)) {
				for dir := range n.walker.WalkDirs(event.Name) {
					if err := n.fsWatcher.Add(dir); err != nil {
						n.logger.Warn("cannot watch directory " + dir + ": " + err.Error())
					}
				}
			}
			return
		}
	}

	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	select {
	case n.events <- domain.ChangeEvent{Path: event.Name, At: time.Now(), Source: domain.SourceNative}:
	case <-ctx.Done():
	}
}

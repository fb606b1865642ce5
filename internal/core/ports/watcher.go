package ports

import (
	"context"
	"iter"

	"go.trai.ch/regen/internal/core/domain"
)

// Watcher delivers file change events for a directory tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directory recursively.
	Start(ctx context.Context, root string) error

	// Stop releases all watch resources.
	Stop() error

	// Events returns an iterator of change events. The iterator ends when
	// the watcher is stopped or its context is canceled.
	Events() iter.Seq[domain.ChangeEvent]
}

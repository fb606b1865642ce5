package ports

import "go.trai.ch/regen/internal/core/domain"

// GenerationStore persists the build generation marker consumed by the
// serving layer's live-reload notifier.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type GenerationStore interface {
	// Current returns the last persisted generation, or the zero
	// generation when the marker is absent or unparsable.
	Current() domain.Generation

	// Bump increments the generation and persists it. It is called only
	// after a successful build.
	Bump() (domain.Generation, error)
}

package ports

import "go.trai.ch/regen/internal/core/domain"

// RouteEnumerator lists the current static route entries under the
// routes root.
type RouteEnumerator interface {
	Entries() []domain.RouteEntry
}

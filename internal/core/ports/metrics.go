package ports

import "time"

// Build outcome labels reported to the metrics recorder.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeTimeout = "timeout"
	OutcomeSkipped = "skipped"
)

// Recorder records orchestrator metrics. Implementations must be safe
// for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Recorder interface {
	// ChangeDetected counts one change event by source ("native" or "poll").
	ChangeDetected(source string)

	// BuildFinished counts one build by outcome and observes its duration.
	BuildFinished(outcome string, d time.Duration)

	// GraphRefreshed counts one wholesale dependency graph rebuild.
	GraphRefreshed()

	// SetPendingRoutes reports the current size of the pending route queue.
	SetPendingRoutes(n int)
}

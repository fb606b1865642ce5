package ports

import "context"

// BuildRunner supervises a single invocation of the external build pipeline.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type BuildRunner interface {
	// Run spawns the build pipeline for the given route batch and blocks
	// until it exits or hits its timeout. A nil return means the pipeline
	// exited with status zero and new output artifacts exist.
	Run(ctx context.Context, routes []string) error

	// RunFull spawns an unscoped full build. Used once as a precondition
	// when the upstream client artifact is missing.
	RunFull(ctx context.Context) error
}

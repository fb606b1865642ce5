package domain

import "go.trai.ch/zerr"

var (
	// ErrBuildFailed is returned when the external build pipeline exits non-zero.
	ErrBuildFailed = zerr.New("build failed")

	// ErrBuildTimeout is returned when a build exceeds its hard timeout.
	ErrBuildTimeout = zerr.New("build timed out")

	// ErrNoBuildCommand is returned when no build pipeline command is configured.
	ErrNoBuildCommand = zerr.New("no build command configured")

	// ErrNoRoutes is returned when a build is requested with an empty route batch.
	ErrNoRoutes = zerr.New("no routes to build")
)

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/regen/internal/adapters/config"
	_ "go.trai.ch/regen/internal/adapters/fs"
	_ "go.trai.ch/regen/internal/adapters/logger"
	_ "go.trai.ch/regen/internal/adapters/marker"
	_ "go.trai.ch/regen/internal/adapters/metrics"
	_ "go.trai.ch/regen/internal/adapters/shell"
	_ "go.trai.ch/regen/internal/adapters/telemetry"
	_ "go.trai.ch/regen/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/regen/internal/app"
	_ "go.trai.ch/regen/internal/engine/depgraph"
	_ "go.trai.ch/regen/internal/engine/mapper"
	_ "go.trai.ch/regen/internal/engine/scheduler"
)

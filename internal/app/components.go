package app

import (
	"go.trai.ch/regen/internal/adapters/config"
	"go.trai.ch/regen/internal/core/ports"
)

// Components contains the initialized application components the CLI
// layer needs.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings *config.Settings
}
